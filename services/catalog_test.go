package services

import (
	"context"
	"math"
	"testing"
	"time"

	"homechef-api/apperr"
	"homechef-api/models"
)

func ptr[T any](v T) *T { return &v }

func TestMealCRUD(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	chef := f.user(t, "chef@x.com", models.RoleChef, "chef-1234")
	other := f.user(t, "other@x.com", models.RoleChef, "chef-5678")

	meal, err := f.svc.Meals.Create(ctx, chef, MealInput{
		Name:        ptr("Biryani"),
		Price:       ptr(12.499),
		Ingredients: []string{"rice", "chicken"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if meal.ChefID != "chef-1234" || meal.OwnerEmail != "chef@x.com" || meal.Status != models.MealAvailable || meal.Price != 12.5 {
		t.Errorf("meal = %+v", meal)
	}
	if _, err := f.svc.Meals.Create(ctx, chef, MealInput{Name: ptr("Free lunch"), Price: ptr(0.0)}); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Errorf("zero price err = %v", err)
	}

	if _, err := f.svc.Meals.Update(ctx, meal.ID, other.Email, MealInput{Price: ptr(1.0)}); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("foreign update err = %v", err)
	}
	updated, err := f.svc.Meals.Update(ctx, meal.ID, "CHEF@x.com", MealInput{Price: ptr(14.0), Status: ptr("Sold out")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 14 || updated.Name != "Biryani" || updated.Status != "Sold out" {
		t.Errorf("updated = %+v", updated)
	}
	got, _ := f.svc.Meals.Get(ctx, meal.ID)
	if len(got.Ingredients) != 2 || got.Ingredients[1] != "chicken" {
		t.Errorf("ingredients = %v", got.Ingredients)
	}

	if err := f.svc.Meals.Delete(ctx, meal.ID, other.Email); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("foreign delete err = %v", err)
	}
	if err := f.svc.Meals.Delete(ctx, meal.ID, chef.Email); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.svc.Meals.Get(ctx, meal.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("get deleted err = %v", err)
	}
}

func TestMealListing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	chef := f.user(t, "chef@x.com", models.RoleChef, "chef-1234")

	base := time.Now().Add(-time.Hour)
	for i, spec := range []struct {
		name   string
		price  float64
		status string
	}{
		{"Soup", 5, "Available"},
		{"Steak", 30, "available"},
		{"Salad", 8, "Unavailable"},
	} {
		m := &models.Meal{Name: spec.name, Price: spec.price, Status: spec.status, OwnerEmail: chef.Email, ChefID: "chef-1234", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := f.db.Create(m).Error; err != nil {
			t.Fatal(err)
		}
	}

	available, err := f.svc.Meals.List(ctx, MealFilter{Status: "AVAILABLE", Sort: "desc"})
	if err != nil {
		t.Fatal(err)
	}
	if len(available) != 2 || available[0].Name != "Steak" || available[1].Name != "Soup" {
		t.Errorf("available desc = %v", names(available))
	}

	asc, _ := f.svc.Meals.List(ctx, MealFilter{Sort: "asc"})
	if len(asc) != 3 || asc[0].Name != "Soup" || asc[2].Name != "Steak" {
		t.Errorf("asc = %v", names(asc))
	}

	latest, _ := f.svc.Meals.Latest(ctx)
	if len(latest) != 3 || latest[0].Name != "Salad" {
		t.Errorf("latest = %v", names(latest))
	}

	owned, _ := f.svc.Meals.ListByOwner(ctx, "Chef@X.com")
	if len(owned) != 3 {
		t.Errorf("owned = %d", len(owned))
	}

	id, err := f.svc.Meals.ChefIDByEmail(ctx, chef.Email)
	if err != nil || id != "chef-1234" {
		t.Errorf("ChefIDByEmail = %q, %v", id, err)
	}
	id, err = f.svc.Meals.ChefIDByEmail(ctx, "nobody@x.com")
	if err != nil || id != "" {
		t.Errorf("ChefIDByEmail(nobody) = %q, %v", id, err)
	}
}

func names(meals []models.Meal) []string {
	out := make([]string, len(meals))
	for i, m := range meals {
		out[i] = m.Name
	}
	return out
}

func TestRejectsNonFiniteNumbers(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	chef := f.user(t, "chef@x.com", models.RoleChef, "chef-1234")

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if _, err := f.svc.Meals.Create(ctx, chef, MealInput{Name: ptr("Soup"), Price: ptr(v)}); !apperr.Is(err, apperr.KindInvalidInput) {
			t.Errorf("create price %v err = %v", v, err)
		}
		if _, err := f.svc.Meals.Create(ctx, chef, MealInput{Name: ptr("Soup"), Price: ptr(5.0), Rating: ptr(v)}); !apperr.Is(err, apperr.KindInvalidInput) {
			t.Errorf("create rating %v err = %v", v, err)
		}
		if _, err := f.svc.Reviews.Create(ctx, "a@x.com", ReviewInput{FoodID: "m1", Rating: v, Comment: "x"}); !apperr.Is(err, apperr.KindInvalidInput) {
			t.Errorf("review rating %v err = %v", v, err)
		}
		if _, _, err := f.svc.Favorites.Add(ctx, "a@x.com", FavoriteInput{MealID: "m1", MealName: "Soup", Price: v}); !apperr.Is(err, apperr.KindInvalidInput) {
			t.Errorf("favorite price %v err = %v", v, err)
		}
	}

	meal, err := f.svc.Meals.Create(ctx, chef, MealInput{Name: ptr("Soup"), Price: ptr(5.0)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Meals.Update(ctx, meal.ID, chef.Email, MealInput{Price: ptr(math.Inf(1))}); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Errorf("update price err = %v", err)
	}
	got, _ := f.svc.Meals.Get(ctx, meal.ID)
	if got.Price != 5 {
		t.Errorf("price = %v, want unchanged 5", got.Price)
	}

	r, err := f.svc.Reviews.Create(ctx, "a@x.com", ReviewInput{FoodID: "m1", Rating: 4, Comment: "ok"})
	if err != nil {
		t.Fatalf("review Create: %v", err)
	}
	if _, err := f.svc.Reviews.Update(ctx, r.ID, "a@x.com", ptr(math.NaN()), nil); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Errorf("review update err = %v", err)
	}
}

func TestReviews(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	if _, err := f.svc.Reviews.Create(ctx, "a@x.com", ReviewInput{FoodID: "m1", Rating: 5}); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Errorf("missing comment err = %v", err)
	}
	r, err := f.svc.Reviews.Create(ctx, "A@x.com", ReviewInput{FoodID: "m1", Rating: 4, Comment: "tasty"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.ReviewerName != "Anonymous" || r.ReviewerEmail != "a@x.com" {
		t.Errorf("review = %+v", r)
	}

	if _, err := f.svc.Reviews.Update(ctx, r.ID, "b@x.com", ptr(1.0), nil); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("foreign update err = %v", err)
	}
	updated, err := f.svc.Reviews.Update(ctx, r.ID, "a@x.com", ptr(5.0), ptr("great"))
	if err != nil || updated.Rating != 5 || updated.Comment != "great" {
		t.Errorf("Update = %+v, %v", updated, err)
	}

	byFood, _ := f.svc.Reviews.ListByFood(ctx, "m1")
	mine, _ := f.svc.Reviews.ListByReviewer(ctx, "a@x.com")
	if len(byFood) != 1 || len(mine) != 1 {
		t.Errorf("byFood=%d mine=%d", len(byFood), len(mine))
	}

	if err := f.svc.Reviews.Delete(ctx, "missing", "a@x.com"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("delete missing err = %v", err)
	}
	if err := f.svc.Reviews.Delete(ctx, r.ID, "a@x.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if latest, _ := f.svc.Reviews.Latest(ctx); len(latest) != 0 {
		t.Errorf("latest after delete = %d", len(latest))
	}
}

func TestFavoriteDuplicate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	in := FavoriteInput{MealID: "m1", MealName: "Soup", Price: 5}

	first, created, err := f.svc.Favorites.Add(ctx, "u@x.com", in)
	if err != nil || !created || first == nil {
		t.Fatalf("first Add = %v, %v, %v", first, created, err)
	}
	_, created, err = f.svc.Favorites.Add(ctx, "U@x.com", in)
	if err != nil || created {
		t.Fatalf("second Add created=%v err=%v", created, err)
	}
	if n := f.count(t, &models.Favorite{}, "user_email = ? AND meal_id = ?", "u@x.com", "m1"); n != 1 {
		t.Errorf("favorites = %d, want 1", n)
	}

	if _, _, err := f.svc.Favorites.Add(ctx, "u@x.com", FavoriteInput{MealID: "m2"}); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Errorf("missing name err = %v", err)
	}
	if err := f.svc.Favorites.Delete(ctx, first.ID, "x@x.com"); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("foreign delete err = %v", err)
	}
	if err := f.svc.Favorites.Delete(ctx, first.ID, "u@x.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if list, _ := f.svc.Favorites.List(ctx, "u@x.com"); len(list) != 0 {
		t.Errorf("favorites after delete = %d", len(list))
	}
}

func TestStats(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	paid := pf.acceptedOrder(t)
	if _, err := pf.svc.Payments.MarkPaid(ctx, paid.ID, "u@x.com", "tx", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := pf.svc.Orders.Deliver(ctx, paid.ID, pf.admin); err != nil {
		t.Fatal(err)
	}
	pf.place(t)

	users, _ := pf.svc.Stats.UserCount(ctx)
	delivered, _ := pf.svc.Stats.DeliveredCount(ctx)
	pending, _ := pf.svc.Stats.PendingPaymentCount(ctx)
	total, err := pf.svc.Stats.PaidTotal(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if users != 3 || delivered != 1 || pending != 1 {
		t.Errorf("users=%d delivered=%d pending=%d", users, delivered, pending)
	}
	if total.TotalPaidAmount != 20 || total.TotalOrders != 1 {
		t.Errorf("paid total = %+v", total)
	}

	catalog, err := pf.svc.Stats.Catalog(ctx)
	if err != nil || catalog.MealsCount != 1 || catalog.ReviewsCount != 0 {
		t.Errorf("catalog = %+v, %v", catalog, err)
	}
}
