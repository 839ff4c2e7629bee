package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderCancelled OrderStatus = "cancelled"
	OrderDelivered OrderStatus = "delivered"
)

// PaymentStatus is orthogonal to OrderStatus and only ever moves pending -> paid
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type Order struct {
	ID              string         `json:"id" gorm:"primaryKey;size:36"`
	UserEmail       string         `json:"userEmail" gorm:"index;not null"`
	ChefID          string         `json:"chefId" gorm:"index"`
	MealID          string         `json:"mealId" gorm:"index"`
	MealName        string         `json:"mealName"`
	Price           float64        `json:"price"` // snapshot of the meal price at order time
	Quantity        int            `json:"quantity"`
	TotalPrice      float64        `json:"totalPrice"`
	DeliveryAddress string         `json:"deliveryAddress"`
	OrderStatus     OrderStatus    `json:"orderStatus" gorm:"index;not null;default:'pending'"`
	PaymentStatus   PaymentStatus  `json:"paymentStatus" gorm:"index;not null;default:'pending'"`
	PaymentInfo     datatypes.JSON `json:"paymentInfo,omitempty"`
	TransactionID   string         `json:"transactionId,omitempty"`
	OrderTime       time.Time      `json:"orderTime" gorm:"index"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.UserEmail = NormalizeEmail(o.UserEmail)
	if o.OrderStatus == "" {
		o.OrderStatus = OrderPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	if o.OrderTime.IsZero() {
		o.OrderTime = time.Now().UTC()
	}
	return nil
}

// Payable reports whether a checkout may be started for the order
func (o *Order) Payable() bool {
	return o.OrderStatus == OrderAccepted && o.PaymentStatus == PaymentPending
}

// OrderStatusHistory tracks every status change and settlement
type OrderStatusHistory struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	OrderID       string        `json:"orderId" gorm:"index;not null"`
	FromStatus    OrderStatus   `json:"fromStatus"`
	ToStatus      OrderStatus   `json:"toStatus" gorm:"not null"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	ChangedBy     string        `json:"changedBy"` // email of the identity that triggered it
	Note          string        `json:"note"`
	CreatedAt     time.Time     `json:"createdAt"`
}
