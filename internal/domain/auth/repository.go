package auth

import (
	"context"
	"time"

	"stockyard/internal/core/id"
)

// Repository defines data access for user accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error

	// GetByID returns pgx.ErrNoRows when not found.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail returns pgx.ErrNoRows when not found.
	GetByEmail(ctx context.Context, email string) (*User, error)

	Update(ctx context.Context, u *User) error

	SetLastLogin(ctx context.Context, userID id.ID, at time.Time) error
}
