package services

import (
	"context"
	"testing"

	"homechef-api/apperr"
	"homechef-api/events"
	"homechef-api/models"
)

type orderFixture struct {
	*fixture
	buyer, chef, otherChef, admin *models.User
	meal                          *models.Meal
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := newFixture(t, nil)
	of := &orderFixture{fixture: f}
	of.buyer = f.user(t, "u@x.com", models.RoleUser, "")
	of.chef = f.user(t, "chef@x.com", models.RoleChef, "chef-1234")
	of.otherChef = f.user(t, "other@x.com", models.RoleChef, "chef-9999")
	of.admin = f.user(t, "admin@x.com", models.RoleAdmin, "")
	of.meal = f.meal(t, of.chef, "Pad Thai", 10)
	return of
}

func (of *orderFixture) place(t *testing.T) *models.Order {
	t.Helper()
	o, err := of.svc.Orders.Create(context.Background(), of.buyer.Email, CreateOrderInput{MealID: of.meal.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return o
}

func TestCreateOrder(t *testing.T) {
	of := newOrderFixture(t)
	o := of.place(t)

	if o.OrderStatus != models.OrderPending || o.PaymentStatus != models.PaymentPending {
		t.Errorf("statuses = %s/%s", o.OrderStatus, o.PaymentStatus)
	}
	if o.TotalPrice != 20 || o.Price != 10 || o.ChefID != "chef-1234" || o.MealName != "Pad Thai" {
		t.Errorf("order = %+v", o)
	}
	if o.OrderTime.IsZero() {
		t.Error("orderTime must be stamped")
	}
	if n := of.count(t, &models.OrderStatusHistory{}, "order_id = ?", o.ID); n != 1 {
		t.Errorf("history rows = %d, want 1", n)
	}
	if got := of.events.Types(); len(got) != 1 || got[0] != events.OrderCreated {
		t.Errorf("events = %v", got)
	}
}

func TestCreateOrderRejects(t *testing.T) {
	of := newOrderFixture(t)
	ctx := context.Background()

	fraud := of.user(t, "fraud@x.com", models.RoleUser, "")
	of.db.Model(fraud).Update("status", models.UserFraud)

	tests := []struct {
		name  string
		email string
		in    CreateOrderInput
		kind  apperr.Kind
	}{
		{"missing meal id", of.buyer.Email, CreateOrderInput{}, apperr.KindInvalidInput},
		{"negative quantity", of.buyer.Email, CreateOrderInput{MealID: of.meal.ID, Quantity: -1}, apperr.KindInvalidInput},
		{"unknown meal", of.buyer.Email, CreateOrderInput{MealID: "nope"}, apperr.KindNotFound},
		{"fraud buyer", fraud.Email, CreateOrderInput{MealID: of.meal.ID}, apperr.KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := of.svc.Orders.Create(ctx, tt.email, tt.in); !apperr.Is(err, tt.kind) {
				t.Errorf("err = %v, want %s", err, tt.kind)
			}
		})
	}
	if n := of.count(t, &models.Order{}, ""); n != 0 {
		t.Errorf("orders created = %d", n)
	}
}

func TestOrderLifecycle(t *testing.T) {
	of := newOrderFixture(t)
	ctx := context.Background()
	o := of.place(t)

	if _, err := of.svc.Orders.Deliver(ctx, o.ID, of.chef); !apperr.Is(err, apperr.KindInvalidState) {
		t.Errorf("deliver pending err = %v, want invalid state", err)
	}
	if _, err := of.svc.Orders.Accept(ctx, o.ID, of.otherChef); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("foreign chef err = %v, want forbidden", err)
	}
	if _, err := of.svc.Orders.Accept(ctx, o.ID, of.buyer); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("buyer accept err = %v, want forbidden", err)
	}

	accepted, err := of.svc.Orders.Accept(ctx, o.ID, of.chef)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if accepted.OrderStatus != models.OrderAccepted || accepted.PaymentStatus != models.PaymentPending {
		t.Errorf("accepted = %s/%s", accepted.OrderStatus, accepted.PaymentStatus)
	}

	delivered, err := of.svc.Orders.Deliver(ctx, o.ID, of.admin)
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if delivered.OrderStatus != models.OrderDelivered {
		t.Errorf("status = %s", delivered.OrderStatus)
	}
	if _, err := of.svc.Orders.Cancel(ctx, o.ID, of.admin); !apperr.Is(err, apperr.KindInvalidState) {
		t.Errorf("cancel delivered err = %v, want invalid state", err)
	}

	history, err := of.svc.Orders.History(ctx, o.ID, "U@x.com")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	want := []models.OrderStatus{models.OrderPending, models.OrderAccepted, models.OrderDelivered}
	if len(history) != len(want) {
		t.Fatalf("history = %+v", history)
	}
	for i, h := range history {
		if h.ToStatus != want[i] {
			t.Errorf("history[%d].to = %s, want %s", i, h.ToStatus, want[i])
		}
	}
	if history[2].ChangedBy != "admin@x.com" {
		t.Errorf("changedBy = %s", history[2].ChangedBy)
	}

	if _, err := of.svc.Orders.History(ctx, o.ID, of.otherChef.Email); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("foreign chef history err = %v", err)
	}
	if _, err := of.svc.Orders.History(ctx, o.ID, of.chef.Email); err != nil {
		t.Errorf("owning chef history: %v", err)
	}
}

func TestCancelFromAccepted(t *testing.T) {
	of := newOrderFixture(t)
	ctx := context.Background()
	o := of.place(t)

	if _, err := of.svc.Orders.Accept(ctx, o.ID, of.chef); err != nil {
		t.Fatal(err)
	}
	got, err := of.svc.Orders.Cancel(ctx, o.ID, of.chef)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.OrderStatus != models.OrderCancelled {
		t.Errorf("status = %s", got.OrderStatus)
	}
	if _, err := of.svc.Orders.Accept(ctx, o.ID, of.admin); !apperr.Is(err, apperr.KindInvalidState) {
		t.Errorf("accept cancelled err = %v", err)
	}
}

func TestForceStatus(t *testing.T) {
	of := newOrderFixture(t)
	ctx := context.Background()
	o := of.place(t)

	if _, err := of.svc.Orders.ForceStatus(ctx, o.ID, "shipped", of.admin); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Errorf("shipped err = %v, want invalid input", err)
	}
	unchanged, _ := of.svc.Orders.Get(ctx, o.ID)
	if unchanged.OrderStatus != models.OrderPending || unchanged.PaymentStatus != models.PaymentPending {
		t.Errorf("order changed: %s/%s", unchanged.OrderStatus, unchanged.PaymentStatus)
	}

	if _, err := of.svc.Orders.ForceStatus(ctx, o.ID, "delivered", of.admin); !apperr.Is(err, apperr.KindInvalidState) {
		t.Errorf("pending->delivered err = %v, want invalid state", err)
	}
	if _, err := of.svc.Orders.ForceStatus(ctx, o.ID, "accepted", of.chef); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("chef force err = %v, want forbidden", err)
	}

	got, err := of.svc.Orders.ForceStatus(ctx, o.ID, "accepted", of.admin)
	if err != nil {
		t.Fatalf("ForceStatus: %v", err)
	}
	if got.OrderStatus != models.OrderAccepted || got.PaymentStatus != models.PaymentPending {
		t.Errorf("forced = %s/%s", got.OrderStatus, got.PaymentStatus)
	}
}

func TestOrderListings(t *testing.T) {
	of := newOrderFixture(t)
	ctx := context.Background()
	of.place(t)
	of.place(t)

	mine, err := of.svc.Orders.ListByUser(ctx, "U@X.com")
	if err != nil || len(mine) != 2 {
		t.Errorf("ListByUser = %d, %v", len(mine), err)
	}
	byChef, _ := of.svc.Orders.ListByChef(ctx, "chef-1234")
	if len(byChef) != 2 {
		t.Errorf("ListByChef = %d", len(byChef))
	}
	forOwner, _ := of.svc.Orders.ListForMealOwner(ctx, of.chef.Email)
	if len(forOwner) != 2 {
		t.Errorf("ListForMealOwner = %d", len(forOwner))
	}
	none, err := of.svc.Orders.ListForMealOwner(ctx, of.buyer.Email)
	if err != nil || len(none) != 0 {
		t.Errorf("ListForMealOwner(buyer) = %v, %v", none, err)
	}
}
