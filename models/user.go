package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleChef  UserRole = "chef"
	RoleAdmin UserRole = "admin"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleChef, RoleAdmin:
		return true
	}
	return false
}

// Requestable reports whether r may be asked for through a role request
func (r UserRole) Requestable() bool {
	return r == RoleChef || r == RoleAdmin
}

// UserStatus marks an account as trusted or flagged by an admin
type UserStatus string

const (
	UserActive UserStatus = "active"
	UserFraud  UserStatus = "fraud"
)

type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	Name         string     `json:"name"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Image        string     `json:"image"`
	Address      string     `json:"address"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role" gorm:"not null;default:'user'"`
	Status       UserStatus `json:"status" gorm:"not null;default:'active'"`
	ChefID       *string    `json:"chefId,omitempty" gorm:"uniqueIndex"`
	RoleRequest  *UserRole  `json:"roleRequest,omitempty" gorm:"index"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Status == "" {
		u.Status = UserActive
	}
	return nil
}

// IsChef reports whether the user holds the chef role with an assigned chef id
func (u *User) IsChef() bool {
	return u.Role == RoleChef && u.ChefID != nil && *u.ChefID != ""
}

// NormalizeEmail is the canonical form used for every email lookup and comparison
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
