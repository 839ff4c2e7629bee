package services

import (
	"context"
	"encoding/json"
	"math"

	"homechef-api/apperr"
	"homechef-api/events"
	"homechef-api/models"
	"homechef-api/payment"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultProductName = "Food Order"

// PaymentService reconciles checkout sessions with orders and the ledger
type PaymentService struct {
	db          *gorm.DB
	n           notifier
	provider    payment.Provider
	currency    string
	frontendURL string
}

type settlement struct {
	TransactionID string
	Amount        float64
	Raw           json.RawMessage
	By            string
	Note          string
}

// CreateCheckout opens a hosted checkout for an accepted, unpaid order and
// returns the redirect URL
func (s *PaymentService) CreateCheckout(ctx context.Context, orderID, callerEmail string) (string, error) {
	if s.provider == nil {
		return "", apperr.Internal("Stripe not configured", payment.ErrNotConfigured)
	}
	if orderID == "" {
		return "", apperr.InvalidInput("orderId required")
	}

	order, err := findOrder(s.db.WithContext(ctx), orderID)
	if err != nil {
		return "", err
	}
	if !sameEmail(callerEmail, order.UserEmail) {
		return "", apperr.Forbidden("Forbidden")
	}
	if !order.Payable() {
		return "", apperr.InvalidState("Payment not allowed for this order")
	}
	amount := order.TotalPrice
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return "", apperr.InvalidInput("Invalid order amount")
	}

	name := order.MealName
	if name == "" {
		name = defaultProductName
	}
	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		OrderID:       order.ID,
		CustomerEmail: models.NormalizeEmail(callerEmail),
		ProductName:   name,
		Currency:      s.currency,
		UnitAmount:    payment.MinorUnits(amount),
		SuccessURL:    s.frontendURL + "/dashbord/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.frontendURL + "/dashbord/payment-cancel",
	})
	if err != nil {
		return "", apperr.Internal("Stripe session error", err)
	}
	return session.URL, nil
}

// VerifyPayment polls the provider and settles the order once the session is
// paid. It returns false without side effects while payment is outstanding.
func (s *PaymentService) VerifyPayment(ctx context.Context, sessionID, callerEmail string) (bool, error) {
	if s.provider == nil {
		return false, apperr.Internal("Stripe not configured", payment.ErrNotConfigured)
	}

	session, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return false, apperr.Internal("Server error", err)
	}
	if !session.Paid() {
		return false, nil
	}

	orderID := session.OrderID()
	if orderID == "" {
		return false, apperr.InvalidInput("Missing orderId")
	}
	order, err := findOrder(s.db.WithContext(ctx), orderID)
	if err != nil {
		return false, err
	}
	if !sameEmail(callerEmail, order.UserEmail) {
		return false, apperr.Forbidden("Forbidden")
	}

	if _, err := s.settle(ctx, order, settlement{
		TransactionID: session.TransactionID(),
		Amount:        session.Amount(),
		Raw:           session.Raw,
		By:            callerEmail,
		Note:          "checkout session " + session.ID,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// MarkPaid settles an order directly with a caller supplied transaction id.
// Paying an already paid order is a no-op.
func (s *PaymentService) MarkPaid(ctx context.Context, orderID, callerEmail, transactionID string, info json.RawMessage) (*models.Order, error) {
	db := s.db.WithContext(ctx)
	order, err := findOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if !sameEmail(callerEmail, order.UserEmail) {
		return nil, apperr.Forbidden("Forbidden")
	}
	if order.PaymentStatus == models.PaymentPaid {
		return order, nil
	}
	if !order.Payable() {
		return nil, apperr.InvalidState("Payment not allowed for this order")
	}

	if transactionID == "" {
		transactionID = "manual-" + uuid.NewString()
	}
	if _, err := s.settle(ctx, order, settlement{
		TransactionID: transactionID,
		Amount:        order.TotalPrice,
		Raw:           info,
		By:            callerEmail,
		Note:          "payment recorded",
	}); err != nil {
		return nil, err
	}
	return findOrder(db, order.ID)
}

// ListByUser returns the caller's ledger entries, newest first
func (s *PaymentService) ListByUser(ctx context.Context, email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("user_email = ?", models.NormalizeEmail(email)).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return payments, nil
}

// settle flips payment_status to paid and appends the ledger entry in one
// transaction. The flip is conditional on the order still being unpaid, so
// only one caller ever writes the ledger row.
func (s *PaymentService) settle(ctx context.Context, order *models.Order, st settlement) (bool, error) {
	settled := false
	var settledStatus models.OrderStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"payment_status": models.PaymentPaid,
			"transaction_id": st.TransactionID,
		}
		if len(st.Raw) > 0 && json.Valid(st.Raw) {
			updates["payment_info"] = datatypes.JSON(st.Raw)
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status = ?", order.ID, models.PaymentPending).
			Updates(updates)
		if res.Error != nil {
			return apperr.Internal("Server error", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		ledger := models.Payment{
			OrderID:       order.ID,
			UserEmail:     order.UserEmail,
			TransactionID: st.TransactionID,
			Amount:        roundMoney(st.Amount),
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return apperr.Internal("failed to record payment", err)
		}

		var paid models.Order
		if err := tx.First(&paid, "id = ?", order.ID).Error; err != nil {
			return apperr.Internal("Server error", err)
		}
		if err := recordHistory(tx, &paid, paid.OrderStatus, st.By, st.Note); err != nil {
			return err
		}
		settledStatus = paid.OrderStatus
		settled = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if settled {
		s.n.publish(ctx, events.PaymentSettled, order.ID, models.NormalizeEmail(st.By), map[string]any{
			"transactionId": st.TransactionID,
			"amount":        roundMoney(st.Amount),
		})
		// money captured for an order nobody will deliver
		if settledStatus == models.OrderCancelled {
			s.n.logger.WarnContext(ctx, "payment settled for cancelled order",
				"order_id", order.ID, "transaction_id", st.TransactionID, "amount", roundMoney(st.Amount))
			s.n.publish(ctx, events.RefundDue, order.ID, models.NormalizeEmail(st.By), map[string]any{
				"transactionId": st.TransactionID,
				"amount":        roundMoney(st.Amount),
				"orderStatus":   settledStatus,
			})
		}
	}
	return settled, nil
}
