package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	FoodID        string    `json:"foodId" gorm:"index;not null"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerImage string    `json:"reviewerImage"`
	ReviewerEmail string    `json:"reviewerEmail" gorm:"index;not null"`
	Rating        float64   `json:"rating"`
	Comment       string    `json:"comment"`
	Date          time.Time `json:"date" gorm:"index"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.ReviewerEmail = NormalizeEmail(r.ReviewerEmail)
	if r.Date.IsZero() {
		r.Date = time.Now().UTC()
	}
	return nil
}

// Favorite is unique per (UserEmail, MealID)
type Favorite struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserEmail string    `json:"userEmail" gorm:"not null;uniqueIndex:idx_favorite_user_meal"`
	MealID    string    `json:"mealId" gorm:"not null;uniqueIndex:idx_favorite_user_meal"`
	MealName  string    `json:"mealName"`
	ChefID    string    `json:"chefId"`
	ChefName  string    `json:"chefName"`
	Price     float64   `json:"price"`
	AddedTime time.Time `json:"addedTime" gorm:"index"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.UserEmail = NormalizeEmail(f.UserEmail)
	if f.AddedTime.IsZero() {
		f.AddedTime = time.Now().UTC()
	}
	return nil
}
