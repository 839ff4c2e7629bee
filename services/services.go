// Package services holds the business rules behind every HTTP operation.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"homechef-api/events"
	"homechef-api/payment"

	"gorm.io/gorm"
)

// Deps are the collaborators shared by the services
type Deps struct {
	Publisher   events.Publisher
	Logger      *slog.Logger
	Provider    payment.Provider
	Currency    string
	FrontendURL string
	ChefIDGen   func() string
}

// Services groups every service over one database handle
type Services struct {
	Users     *UserService
	Roles     *RoleService
	Meals     *MealService
	Orders    *OrderService
	Payments  *PaymentService
	Reviews   *ReviewService
	Favorites *FavoriteService
	Stats     *StatsService
}

func New(db *gorm.DB, deps Deps) *Services {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NewLogPublisher(deps.Logger)
	}
	if deps.ChefIDGen == nil {
		deps.ChefIDGen = RandomChefID
	}
	if deps.Currency == "" {
		deps.Currency = "usd"
	}
	n := notifier{publisher: deps.Publisher, logger: deps.Logger}

	return &Services{
		Users:     &UserService{db: db},
		Roles:     &RoleService{db: db, n: n, genChefID: deps.ChefIDGen},
		Meals:     &MealService{db: db},
		Orders:    &OrderService{db: db, n: n},
		Payments: &PaymentService{
			db:          db,
			n:           n,
			provider:    deps.Provider,
			currency:    deps.Currency,
			frontendURL: strings.TrimRight(deps.FrontendURL, "/"),
		},
		Reviews:   &ReviewService{db: db},
		Favorites: &FavoriteService{db: db},
		Stats:     &StatsService{db: db},
	}
}

// RandomChefID returns an id of the form chef-NNNN
func RandomChefID() string {
	return fmt.Sprintf("chef-%04d", 1000+rand.Intn(9000))
}

type notifier struct {
	publisher events.Publisher
	logger    *slog.Logger
}

// publish runs after commit; a failed publish never fails the request
func (n notifier) publish(ctx context.Context, typ, subject, actor string, data map[string]any) {
	e := events.Event{
		Type:       typ,
		Subject:    subject,
		Actor:      actor,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
	if err := n.publisher.Publish(ctx, e); err != nil {
		n.logger.WarnContext(ctx, "failed to publish event", "type", typ, "subject", subject, "error", err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positiveAmount(v float64) bool {
	return finite(v) && v > 0
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
