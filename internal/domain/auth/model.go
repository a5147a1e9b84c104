package auth

import (
	"context"
	"strings"
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
)

// Role names used by route guards.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleStorekeep = "storekeeper"
	RoleCourier   = "courier"
)

// User is an operator account.
type User struct {
	entity.BaseEntity

	Email        string   `db:"email" json:"email"`
	PasswordHash string   `db:"password_hash" json:"-"`
	FullName     string   `db:"full_name" json:"fullName"`
	Roles        []string `db:"roles" json:"roles"`
	Permissions  []string `db:"permissions" json:"permissions"`
	IsAdmin      bool     `db:"is_admin" json:"isAdmin"`
	IsActive     bool     `db:"is_active" json:"isActive"`

	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	LastLoginAt *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
}

// NewUser creates an active user account without credentials set.
func NewUser(email, fullName string) *User {
	return &User{
		BaseEntity: entity.NewBaseEntity(),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		FullName:   fullName,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate implements entity.Validatable interface.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return apperror.NewValidation("valid email is required").
			WithDetail("field", "email")
	}
	if u.FullName == "" {
		return apperror.NewValidation("full name is required").
			WithDetail("field", "fullName")
	}
	return nil
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
