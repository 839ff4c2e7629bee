package services

import (
	"context"
	"strings"
	"time"

	"homechef-api/apperr"
	"homechef-api/models"

	"gorm.io/gorm"
)

type ReviewService struct {
	db *gorm.DB
}

type ReviewInput struct {
	FoodID        string
	ReviewerName  string
	ReviewerImage string
	Rating        float64
	Comment       string
}

// Create stores a review written by reviewerEmail
func (s *ReviewService) Create(ctx context.Context, reviewerEmail string, in ReviewInput) (*models.Review, error) {
	if in.FoodID == "" || in.Rating == 0 || !finite(in.Rating) || strings.TrimSpace(in.Comment) == "" {
		return nil, apperr.InvalidInput("foodId, rating, comment required")
	}
	name := strings.TrimSpace(in.ReviewerName)
	if name == "" {
		name = "Anonymous"
	}

	review := &models.Review{
		FoodID:        in.FoodID,
		ReviewerName:  name,
		ReviewerImage: in.ReviewerImage,
		ReviewerEmail: reviewerEmail,
		Rating:        in.Rating,
		Comment:       in.Comment,
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return review, nil
}

// Update lets a reviewer change their own rating and comment
func (s *ReviewService) Update(ctx context.Context, id, email string, rating *float64, comment *string) (*models.Review, error) {
	review, err := s.owned(ctx, id, email)
	if err != nil {
		return nil, err
	}
	if rating != nil {
		if !finite(*rating) {
			return nil, apperr.InvalidInput("Invalid rating")
		}
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = *comment
	}
	review.Date = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id, email string) error {
	review, err := s.owned(ctx, id, email)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", review.ID).Error; err != nil {
		return apperr.Internal("Server error", err)
	}
	return nil
}

// ListByFood returns reviews for one meal, newest first
func (s *ReviewService) ListByFood(ctx context.Context, foodID string) ([]models.Review, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("food_id = ?", foodID))
}

// ListByReviewer returns the reviews written by email
func (s *ReviewService) ListByReviewer(ctx context.Context, email string) ([]models.Review, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("reviewer_email = ?", models.NormalizeEmail(email)))
}

func (s *ReviewService) Latest(ctx context.Context) ([]models.Review, error) {
	return s.list(ctx, s.db.WithContext(ctx).Limit(latestLimit))
}

func (s *ReviewService) list(_ context.Context, q *gorm.DB) ([]models.Review, error) {
	var reviews []models.Review
	if err := q.Order("date DESC").Find(&reviews).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return reviews, nil
}

func (s *ReviewService) owned(ctx context.Context, id, email string) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Not found")
		}
		return nil, apperr.Internal("Server error", err)
	}
	if !sameEmail(email, review.ReviewerEmail) {
		return nil, apperr.Forbidden("Forbidden")
	}
	return &review, nil
}
