package services

import (
	"io"
	"log/slog"
	"testing"

	"homechef-api/events"
	"homechef-api/models"
	"homechef-api/payment"
	"homechef-api/testutil"

	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	svc    *Services
	events *events.Recorder
}

func newFixture(t *testing.T, provider payment.Provider, chefIDs ...string) *fixture {
	t.Helper()
	return newFixtureOn(t, testutil.NewDB(t), provider, chefIDs...)
}

func newFixtureOn(t *testing.T, db *gorm.DB, provider payment.Provider, chefIDs ...string) *fixture {
	t.Helper()
	rec := &events.Recorder{}
	deps := Deps{
		Publisher:   rec,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Provider:    provider,
		FrontendURL: "http://front.test/",
	}
	if len(chefIDs) > 0 {
		deps.ChefIDGen = sequence(chefIDs...)
	}
	return &fixture{db: db, svc: New(db, deps), events: rec}
}

// sequence hands out ids in order and repeats the last one
func sequence(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[min(i, len(ids)-1)]
		i++
		return id
	}
}

func (f *fixture) user(t *testing.T, email string, role models.UserRole, chefID string) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email, Role: role}
	if chefID != "" {
		u.ChefID = &chefID
	}
	if err := f.db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func (f *fixture) meal(t *testing.T, chef *models.User, name string, price float64) *models.Meal {
	t.Helper()
	m := &models.Meal{Name: name, Price: price, OwnerEmail: chef.Email, ChefName: chef.Name}
	if chef.ChefID != nil {
		m.ChefID = *chef.ChefID
	}
	if err := f.db.Create(m).Error; err != nil {
		t.Fatalf("create meal %s: %v", name, err)
	}
	return m
}

func (f *fixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
