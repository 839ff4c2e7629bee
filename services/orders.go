package services

import (
	"context"
	"fmt"
	"strings"

	"homechef-api/apperr"
	"homechef-api/events"
	"homechef-api/models"
	"homechef-api/statemachine"

	"gorm.io/gorm"
)

// OrderService drives the order lifecycle
type OrderService struct {
	db *gorm.DB
	n  notifier
}

// CreateOrderInput is what a buyer supplies; price and chef come from the meal
type CreateOrderInput struct {
	MealID          string
	Quantity        int
	DeliveryAddress string
}

var transitionEvents = map[models.OrderStatus]string{
	models.OrderAccepted:  events.OrderAccepted,
	models.OrderCancelled: events.OrderCancelled,
	models.OrderDelivered: events.OrderDelivered,
}

// Create places a pending order for buyerEmail
func (s *OrderService) Create(ctx context.Context, buyerEmail string, in CreateOrderInput) (*models.Order, error) {
	buyerEmail = models.NormalizeEmail(buyerEmail)
	if in.MealID == "" {
		return nil, apperr.InvalidInput("mealId required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return nil, apperr.InvalidInput("Quantity must be at least 1")
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var buyer models.User
		err := tx.Where("email = ?", buyerEmail).First(&buyer).Error
		switch {
		case err == nil:
			if buyer.Status == models.UserFraud {
				return apperr.Forbidden("Fraud users cannot place orders")
			}
			if in.DeliveryAddress == "" {
				in.DeliveryAddress = buyer.Address
			}
		case !isNotFound(err):
			return apperr.Internal("Server error", err)
		}

		var meal models.Meal
		if err := tx.First(&meal, "id = ?", in.MealID).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound("Meal not found")
			}
			return apperr.Internal("Server error", err)
		}
		if !strings.EqualFold(meal.Status, models.MealAvailable) {
			return apperr.InvalidState("Meal is not available")
		}

		order = models.Order{
			UserEmail:       buyerEmail,
			ChefID:          meal.ChefID,
			MealID:          meal.ID,
			MealName:        meal.Name,
			Price:           meal.Price,
			Quantity:        in.Quantity,
			TotalPrice:      roundMoney(meal.Price * float64(in.Quantity)),
			DeliveryAddress: in.DeliveryAddress,
			OrderStatus:     models.OrderPending,
			PaymentStatus:   models.PaymentPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperr.Internal("Failed to place order", err)
		}
		return recordHistory(tx, &order, "", buyerEmail, "order placed")
	})
	if err != nil {
		return nil, err
	}

	s.n.publish(ctx, events.OrderCreated, order.ID, buyerEmail, map[string]any{
		"chefId":     order.ChefID,
		"mealId":     order.MealID,
		"totalPrice": order.TotalPrice,
	})
	return &order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return findOrder(s.db.WithContext(ctx), id)
}

// ListByUser returns a buyer's orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, email string) ([]models.Order, error) {
	return s.list(ctx, "user_email = ?", models.NormalizeEmail(email))
}

// ListByChef returns the orders addressed to chefID, newest first
func (s *OrderService) ListByChef(ctx context.Context, chefID string) ([]models.Order, error) {
	return s.list(ctx, "chef_id = ?", chefID)
}

// ListForMealOwner returns orders for every chef id found on the owner's meals
func (s *OrderService) ListForMealOwner(ctx context.Context, email string) ([]models.Order, error) {
	var chefIDs []string
	err := s.db.WithContext(ctx).Model(&models.Meal{}).
		Where("owner_email = ? AND chef_id <> ''", models.NormalizeEmail(email)).
		Distinct().
		Pluck("chef_id", &chefIDs).Error
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	if len(chefIDs) == 0 {
		return []models.Order{}, nil
	}
	return s.list(ctx, "chef_id IN ?", chefIDs)
}

func (s *OrderService) Accept(ctx context.Context, id string, caller *models.User) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderAccepted, caller, "order accepted")
}

func (s *OrderService) Cancel(ctx context.Context, id string, caller *models.User) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderCancelled, caller, "order cancelled")
}

func (s *OrderService) Deliver(ctx context.Context, id string, caller *models.User) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderDelivered, caller, "order delivered")
}

// ForceStatus is the admin's generic status update. The destination must be a
// known status and reachable from the current one.
func (s *OrderService) ForceStatus(ctx context.Context, id, status string, admin *models.User) (*models.Order, error) {
	to := models.OrderStatus(status)
	if !statemachine.IsKnownStatus(to) {
		return nil, apperr.InvalidInput("Invalid order status")
	}
	if admin == nil || admin.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("Forbidden access")
	}
	return s.transition(ctx, id, to, admin, "status set by admin")
}

// History returns the audit trail; visible to the buyer, the order's chef and admins
func (s *OrderService) History(ctx context.Context, id, callerEmail string) ([]models.OrderStatusHistory, error) {
	db := s.db.WithContext(ctx)
	order, err := findOrder(db, id)
	if err != nil {
		return nil, err
	}

	callerEmail = models.NormalizeEmail(callerEmail)
	if order.UserEmail != callerEmail {
		var caller models.User
		if err := db.Where("email = ?", callerEmail).First(&caller).Error; err != nil {
			if isNotFound(err) {
				return nil, apperr.Forbidden("Forbidden access")
			}
			return nil, apperr.Internal("Server error", err)
		}
		if _, err := actorFor(&caller, order); err != nil {
			return nil, err
		}
	}

	var history []models.OrderStatusHistory
	if err := db.Where("order_id = ?", id).Order("id ASC").Find(&history).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return history, nil
}

func (s *OrderService) transition(ctx context.Context, id string, to models.OrderStatus, caller *models.User, note string) (*models.Order, error) {
	if caller == nil {
		return nil, apperr.Forbidden("Forbidden access")
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = findOrder(tx, id)
		if err != nil {
			return err
		}
		actor, err := actorFor(caller, order)
		if err != nil {
			return err
		}

		from := order.OrderStatus
		if err := statemachine.CanTransition(from, to, actor); err != nil {
			return apperr.InvalidState(fmt.Sprintf("Cannot change order from %s to %s", from, to))
		}

		updates := map[string]any{"order_status": to}
		if to == models.OrderAccepted {
			updates["payment_status"] = models.PaymentPending
		}
		res := tx.Model(&models.Order{}).
			Where("id = ? AND order_status = ? AND payment_status = ?", id, from, order.PaymentStatus).
			Updates(updates)
		if res.Error != nil {
			return apperr.Internal("Server error", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("Order was changed by another request")
		}

		order, err = findOrder(tx, id)
		if err != nil {
			return err
		}
		return recordHistory(tx, order, from, caller.Email, note)
	})
	if err != nil {
		return nil, err
	}

	s.n.publish(ctx, transitionEvents[to], order.ID, caller.Email, map[string]any{
		"chefId":        order.ChefID,
		"userEmail":     order.UserEmail,
		"paymentStatus": order.PaymentStatus,
	})
	return order, nil
}

func (s *OrderService) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Where(query, args...).Order("order_time DESC").Find(&orders).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return orders, nil
}

// actorFor decides in which capacity caller may move order
func actorFor(caller *models.User, order *models.Order) (statemachine.Actor, error) {
	switch {
	case caller.Role == models.RoleAdmin:
		return statemachine.ActorAdmin, nil
	case caller.IsChef() && *caller.ChefID == order.ChefID:
		return statemachine.ActorChef, nil
	}
	return "", apperr.Forbidden("Forbidden access")
}

func findOrder(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, apperr.Internal("Server error", err)
	}
	return &order, nil
}

func recordHistory(tx *gorm.DB, order *models.Order, from models.OrderStatus, by, note string) error {
	entry := models.OrderStatusHistory{
		OrderID:       order.ID,
		FromStatus:    from,
		ToStatus:      order.OrderStatus,
		PaymentStatus: order.PaymentStatus,
		ChangedBy:     models.NormalizeEmail(by),
		Note:          note,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return apperr.Internal("failed to record order history", err)
	}
	return nil
}

// sameEmail compares two emails in canonical form
func sameEmail(a, b string) bool {
	a = models.NormalizeEmail(a)
	return a != "" && a == models.NormalizeEmail(b)
}
