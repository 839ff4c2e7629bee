package services

import (
	"context"

	"homechef-api/apperr"
	"homechef-api/events"
	"homechef-api/models"

	"gorm.io/gorm"
)

const chefIDAttempts = 20

// RoleService runs the role request workflow
type RoleService struct {
	db        *gorm.DB
	n         notifier
	genChefID func() string
}

// Submit records a pending request, replacing any earlier one
func (s *RoleService) Submit(ctx context.Context, email string, role models.UserRole) (*models.User, error) {
	if !role.Requestable() {
		return nil, apperr.InvalidInput("Invalid role")
	}
	email = models.NormalizeEmail(email)

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("role_request", role)
	if res.Error != nil {
		return nil, apperr.Internal("Server error", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("User not found")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	s.n.publish(ctx, events.RoleRequested, user.ID, email, map[string]any{"requestedRole": role})
	return &user, nil
}

// Pending lists identities with an open request
func (s *RoleService) Pending(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("role_request IS NOT NULL").Order("updated_at ASC").Find(&users).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return users, nil
}

// Approve grants the requested role. A chef id is assigned on the first chef
// approval and never replaced afterwards.
func (s *RoleService) Approve(ctx context.Context, id, adminEmail string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound("No pending request")
			}
			return apperr.Internal("Server error", err)
		}
		if user.RoleRequest == nil {
			return apperr.NotFound("No pending request")
		}
		requested := *user.RoleRequest

		updates := map[string]any{
			"role":         requested,
			"role_request": nil,
		}
		if requested == models.RoleChef && (user.ChefID == nil || *user.ChefID == "") {
			chefID, err := s.uniqueChefID(tx)
			if err != nil {
				return err
			}
			updates["chef_id"] = gorm.Expr("COALESCE(chef_id, ?)", chefID)
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND role_request = ?", id, requested).
			Updates(updates)
		if res.Error != nil {
			return apperr.Internal("Server error", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("No pending request")
		}
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return apperr.Internal("Server error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	data := map[string]any{"role": user.Role}
	if user.ChefID != nil {
		data["chefId"] = *user.ChefID
	}
	s.n.publish(ctx, events.RoleApproved, user.ID, adminEmail, data)
	return &user, nil
}

// Decline clears an open request without touching the role
func (s *RoleService) Decline(ctx context.Context, id, adminEmail string) (*models.User, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND role_request IS NOT NULL", id).
		Update("role_request", nil)
	if res.Error != nil {
		return nil, apperr.Internal("Server error", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("No pending request")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	s.n.publish(ctx, events.RoleDeclined, user.ID, adminEmail, nil)
	return &user, nil
}

func (s *RoleService) uniqueChefID(tx *gorm.DB) (string, error) {
	for i := 0; i < chefIDAttempts; i++ {
		candidate := s.genChefID()
		var count int64
		if err := tx.Model(&models.User{}).Where("chef_id = ?", candidate).Count(&count).Error; err != nil {
			return "", apperr.Internal("Server error", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", apperr.Conflict("Could not allocate a chef id")
}
