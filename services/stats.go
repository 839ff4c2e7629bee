package services

import (
	"context"

	"homechef-api/apperr"
	"homechef-api/models"

	"gorm.io/gorm"
)

// StatsService answers the public dashboard counters
type StatsService struct {
	db *gorm.DB
}

type PaidTotal struct {
	TotalPaidAmount float64 `json:"totalPaidAmount"`
	TotalOrders     int64   `json:"totalOrders"`
}

type CatalogCounts struct {
	MealsCount     int64 `json:"mealsCount"`
	ReviewsCount   int64 `json:"reviewsCount"`
	FavoritesCount int64 `json:"favoritesCount"`
}

func (s *StatsService) UserCount(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.User{}, "")
}

func (s *StatsService) DeliveredCount(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.Order{}, "LOWER(order_status) = ?", string(models.OrderDelivered))
}

func (s *StatsService) PendingPaymentCount(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.Order{}, "LOWER(payment_status) = ?", string(models.PaymentPending))
}

// PaidTotal sums totalPrice over paid orders
func (s *StatsService) PaidTotal(ctx context.Context) (*PaidTotal, error) {
	var out PaidTotal
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0) AS total_paid_amount, COUNT(*) AS total_orders").
		Where("payment_status = ?", models.PaymentPaid).
		Scan(&out).Error
	if err != nil {
		return nil, apperr.Internal("Server Error", err)
	}
	out.TotalPaidAmount = roundMoney(out.TotalPaidAmount)
	return &out, nil
}

func (s *StatsService) Catalog(ctx context.Context) (*CatalogCounts, error) {
	var out CatalogCounts
	var err error
	if out.MealsCount, err = s.count(ctx, &models.Meal{}, ""); err != nil {
		return nil, err
	}
	if out.ReviewsCount, err = s.count(ctx, &models.Review{}, ""); err != nil {
		return nil, err
	}
	if out.FavoritesCount, err = s.count(ctx, &models.Favorite{}, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *StatsService) count(ctx context.Context, model any, query string, args ...any) (int64, error) {
	q := s.db.WithContext(ctx).Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, apperr.Internal("Server error", err)
	}
	return n, nil
}

// Ping checks that the database answers
func (s *StatsService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperr.Internal("database unavailable", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.Internal("database unavailable", err)
	}
	return nil
}
