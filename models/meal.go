package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const MealAvailable = "Available"

// Meal is a sellable item owned by the chef whose email matches OwnerEmail
type Meal struct {
	ID                    string                      `json:"id" gorm:"primaryKey;size:36"`
	ChefID                string                      `json:"chefId" gorm:"index"`
	OwnerEmail            string                      `json:"userEmail" gorm:"index;not null"`
	ChefName              string                      `json:"chefName"`
	ChefLocation          string                      `json:"chefLocation"`
	Name                  string                      `json:"name" gorm:"not null"`
	Image                 string                      `json:"image"`
	Category              string                      `json:"category"`
	Description           string                      `json:"description"`
	Ingredients           datatypes.JSONSlice[string] `json:"ingredients"`
	Price                 float64                     `json:"price" gorm:"not null"`
	Rating                float64                     `json:"rating"`
	EstimatedDeliveryTime int                         `json:"estimatedDeliveryTime"`
	Status                string                      `json:"status" gorm:"not null;default:'Available'"`
	CreatedAt             time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt             time.Time                   `json:"updatedAt"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.OwnerEmail = NormalizeEmail(m.OwnerEmail)
	if m.Status == "" {
		m.Status = MealAvailable
	}
	return nil
}
