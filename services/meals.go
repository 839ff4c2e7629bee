package services

import (
	"context"
	"strings"

	"homechef-api/apperr"
	"homechef-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const latestLimit = 6

// MealService manages the catalog
type MealService struct {
	db *gorm.DB
}

// MealInput carries meal fields; nil means not supplied
type MealInput struct {
	Name                  *string
	Image                 *string
	Category              *string
	Description           *string
	ChefName              *string
	ChefLocation          *string
	Ingredients           []string
	Price                 *float64
	Rating                *float64
	EstimatedDeliveryTime *int
	Status                *string
}

// MealFilter narrows and orders a catalog listing
type MealFilter struct {
	Status string // matched case-insensitively
	Sort   string // asc or desc by price
}

func (s *MealService) List(ctx context.Context, f MealFilter) ([]models.Meal, error) {
	q := s.db.WithContext(ctx)
	if f.Status != "" {
		q = q.Where("LOWER(status) = ?", strings.ToLower(f.Status))
	}
	switch strings.ToLower(f.Sort) {
	case "asc":
		q = q.Order("price ASC")
	case "desc":
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var meals []models.Meal
	if err := q.Find(&meals).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return meals, nil
}

// Latest returns the most recently added meals
func (s *MealService) Latest(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(latestLimit).Find(&meals).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return meals, nil
}

func (s *MealService) Get(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Meal not found")
		}
		return nil, apperr.Internal("Server error", err)
	}
	return &meal, nil
}

// Create adds a meal owned by chef
func (s *MealService) Create(ctx context.Context, chef *models.User, in MealInput) (*models.Meal, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Price == nil || !positiveAmount(*in.Price) {
		return nil, apperr.InvalidInput("Meal name and a positive price are required")
	}
	if in.Rating != nil && !finite(*in.Rating) {
		return nil, apperr.InvalidInput("Invalid rating")
	}

	meal := &models.Meal{
		OwnerEmail: chef.Email,
		ChefName:   chef.Name,
	}
	if chef.ChefID != nil {
		meal.ChefID = *chef.ChefID
	}
	applyMealInput(meal, in)

	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return meal, nil
}

// Update edits a meal; only its owner may do so
func (s *MealService) Update(ctx context.Context, id, ownerEmail string, in MealInput) (*models.Meal, error) {
	meal, err := s.owned(ctx, id, ownerEmail)
	if err != nil {
		return nil, err
	}
	if in.Price != nil && !positiveAmount(*in.Price) {
		return nil, apperr.InvalidInput("Price must be positive")
	}
	if in.Rating != nil && !finite(*in.Rating) {
		return nil, apperr.InvalidInput("Invalid rating")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.InvalidInput("Meal name is required")
	}

	applyMealInput(meal, in)
	if err := s.db.WithContext(ctx).Save(meal).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return meal, nil
}

// Delete removes a meal; only its owner may do so
func (s *MealService) Delete(ctx context.Context, id, ownerEmail string) error {
	meal, err := s.owned(ctx, id, ownerEmail)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Meal{}, "id = ?", meal.ID).Error; err != nil {
		return apperr.Internal("Server error", err)
	}
	return nil
}

// ListByOwner returns the meals a chef has published
func (s *MealService) ListByOwner(ctx context.Context, email string) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("owner_email = ?", models.NormalizeEmail(email)).
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return meals, nil
}

// ChefIDByEmail resolves a chef id from the identity, falling back to the owner's meals
func (s *MealService) ChefIDByEmail(ctx context.Context, email string) (string, error) {
	email = models.NormalizeEmail(email)

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil && user.ChefID != nil && *user.ChefID != "" {
		return *user.ChefID, nil
	}
	if err != nil && !isNotFound(err) {
		return "", apperr.Internal("Server error", err)
	}

	var meal models.Meal
	err = s.db.WithContext(ctx).Where("owner_email = ? AND chef_id <> ''", email).Order("created_at ASC").First(&meal).Error
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", apperr.Internal("Server error", err)
	}
	return meal.ChefID, nil
}

func (s *MealService) owned(ctx context.Context, id, ownerEmail string) (*models.Meal, error) {
	meal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if meal.OwnerEmail != models.NormalizeEmail(ownerEmail) {
		return nil, apperr.Forbidden("Forbidden access")
	}
	return meal, nil
}

func applyMealInput(meal *models.Meal, in MealInput) {
	if in.Name != nil {
		meal.Name = strings.TrimSpace(*in.Name)
	}
	if in.Image != nil {
		meal.Image = *in.Image
	}
	if in.Category != nil {
		meal.Category = *in.Category
	}
	if in.Description != nil {
		meal.Description = *in.Description
	}
	if in.ChefName != nil {
		meal.ChefName = *in.ChefName
	}
	if in.ChefLocation != nil {
		meal.ChefLocation = *in.ChefLocation
	}
	if in.Ingredients != nil {
		meal.Ingredients = datatypes.JSONSlice[string](in.Ingredients)
	}
	if in.Price != nil {
		meal.Price = roundMoney(*in.Price)
	}
	if in.Rating != nil {
		meal.Rating = *in.Rating
	}
	if in.EstimatedDeliveryTime != nil {
		meal.EstimatedDeliveryTime = *in.EstimatedDeliveryTime
	}
	if in.Status != nil {
		meal.Status = *in.Status
	}
}
