package services

import (
	"context"

	"homechef-api/apperr"
	"homechef-api/models"

	"gorm.io/gorm"
)

type FavoriteService struct {
	db *gorm.DB
}

type FavoriteInput struct {
	MealID   string
	MealName string
	ChefID   string
	ChefName string
	Price    float64
}

// Add saves a favorite. An existing (user, meal) pair is returned with
// created=false instead of an error.
func (s *FavoriteService) Add(ctx context.Context, email string, in FavoriteInput) (*models.Favorite, bool, error) {
	if in.MealID == "" || in.MealName == "" {
		return nil, false, apperr.InvalidInput("mealId & mealName required")
	}
	if !finite(in.Price) || in.Price < 0 {
		return nil, false, apperr.InvalidInput("Invalid price")
	}
	email = models.NormalizeEmail(email)
	db := s.db.WithContext(ctx)

	var existing models.Favorite
	err := db.Where("user_email = ? AND meal_id = ?", email, in.MealID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, apperr.Internal("Server error", err)
	}

	fav := &models.Favorite{
		UserEmail: email,
		MealID:    in.MealID,
		MealName:  in.MealName,
		ChefID:    in.ChefID,
		ChefName:  in.ChefName,
		Price:     in.Price,
	}
	if err := db.Create(fav).Error; err != nil {
		if isDuplicate(err) {
			return nil, false, nil
		}
		return nil, false, apperr.Internal("Server error", err)
	}
	return fav, true, nil
}

// List returns the user's favorites, most recent first
func (s *FavoriteService) List(ctx context.Context, email string) ([]models.Favorite, error) {
	var favs []models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_email = ?", models.NormalizeEmail(email)).
		Order("added_time DESC").
		Find(&favs).Error
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return favs, nil
}

// Delete removes a favorite owned by email
func (s *FavoriteService) Delete(ctx context.Context, id, email string) error {
	db := s.db.WithContext(ctx)

	var fav models.Favorite
	if err := db.First(&fav, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return apperr.NotFound("Not found")
		}
		return apperr.Internal("Server error", err)
	}
	if !sameEmail(email, fav.UserEmail) {
		return apperr.Forbidden("Forbidden")
	}
	if err := db.Delete(&models.Favorite{}, "id = ?", id).Error; err != nil {
		return apperr.Internal("Server error", err)
	}
	return nil
}
