package services

import (
	"context"
	"strings"

	"homechef-api/apperr"
	"homechef-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

// RegisterInput is the public registration payload
type RegisterInput struct {
	Name     string
	Email    string
	Image    string
	Address  string
	Password string
}

// ProfileInput holds the self-editable profile fields; nil means unchanged
type ProfileInput struct {
	Name    *string
	Image   *string
	Address *string
}

// Register creates an identity with the user role
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := models.NormalizeEmail(in.Email)
	if email == "" {
		return nil, apperr.InvalidInput("Email is required")
	}

	user := &models.User{
		Name:    strings.TrimSpace(in.Name),
		Email:   email,
		Image:   in.Image,
		Address: in.Address,
		Role:    models.RoleUser,
		Status:  models.UserActive,
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal("failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, apperr.Internal("failed to create user", err)
	}
	return user, nil
}

// Authenticate checks a password login
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.find(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	return user, nil
}

// GetByEmail returns the identity for email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.find(ctx, email)
}

// RequireRole loads the caller and checks their persisted role
func (s *UserService) RequireRole(ctx context.Context, email string, roles ...models.UserRole) (*models.User, error) {
	user, err := s.find(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Forbidden("Forbidden access")
		}
		return nil, err
	}
	for _, r := range roles {
		if user.Role == r {
			return user, nil
		}
	}
	return nil, apperr.Forbidden("Forbidden access")
}

// List returns every identity, or only those holding role when it is set
func (s *UserService) List(ctx context.Context, role models.UserRole) ([]models.User, error) {
	var users []models.User
	q := s.db.WithContext(ctx).Order("created_at ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return users, nil
}

// SetStatus flags an identity; fraud is the only status an admin may set
func (s *UserService) SetStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error) {
	if status != models.UserFraud {
		return nil, apperr.InvalidInput("Invalid status")
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, apperr.Internal("Server error", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("User not found")
	}
	return s.findByID(ctx, id)
}

// UpdateProfile applies the caller's own profile edits
func (s *UserService) UpdateProfile(ctx context.Context, email string, in ProfileInput) (*models.User, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Image != nil {
		updates["image"] = *in.Image
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if len(updates) == 0 {
		return nil, apperr.InvalidInput("Nothing to update")
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Updates(updates)
	if res.Error != nil {
		return nil, apperr.Internal("Server error", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("User not found")
	}
	return s.find(ctx, email)
}

func (s *UserService) find(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Server error", err)
	}
	return &user, nil
}

func (s *UserService) findByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Server error", err)
	}
	return &user, nil
}
