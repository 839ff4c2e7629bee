// Package payment talks to the hosted checkout provider.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"math"
)

//go:generate mockgen -destination=mocks/provider.go -package=mocks homechef-api/payment Provider

const (
	// MetadataOrderID links a checkout session back to its order
	MetadataOrderID = "orderId"
	StatusPaid      = "paid"
)

// ErrNotConfigured is returned when no provider key was supplied
var ErrNotConfigured = errors.New("payment provider not configured")

// CheckoutRequest describes a one-line hosted checkout
type CheckoutRequest struct {
	OrderID       string
	CustomerEmail string
	ProductName   string
	Currency      string
	UnitAmount    int64 // minor units
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the provider's view of a checkout
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	PaymentIntentID string
	AmountTotal     int64 // minor units
	Metadata        map[string]string
	Raw             json.RawMessage
}

// Paid reports whether the provider has captured the payment
func (s *CheckoutSession) Paid() bool {
	return s != nil && s.PaymentStatus == StatusPaid
}

// OrderID returns the order the session was created for
func (s *CheckoutSession) OrderID() string {
	if s == nil || s.Metadata == nil {
		return ""
	}
	return s.Metadata[MetadataOrderID]
}

// TransactionID prefers the payment intent and falls back to the session id
func (s *CheckoutSession) TransactionID() string {
	if s.PaymentIntentID != "" {
		return s.PaymentIntentID
	}
	return s.ID
}

// Amount converts AmountTotal back to major units
func (s *CheckoutSession) Amount() float64 {
	return float64(s.AmountTotal) / 100
}

// Provider creates and retrieves hosted checkout sessions
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// MinorUnits converts a major-unit amount into the provider's integer representation
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
