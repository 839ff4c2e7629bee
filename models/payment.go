package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is an append-only ledger entry, one per settled order
type Payment struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	OrderID       string    `json:"orderId" gorm:"uniqueIndex;not null"`
	UserEmail     string    `json:"userEmail" gorm:"index;not null"`
	TransactionID string    `json:"transactionId" gorm:"not null"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.UserEmail = NormalizeEmail(p.UserEmail)
	return nil
}
