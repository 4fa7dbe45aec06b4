package ports

import (
	"context"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

// UserRepository defines persistence operations for identities.
type UserRepository interface {
	// FindByUsername looks up an identity by exact username.
	// Returns domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts a new identity. Returns domain.ErrUserExists when the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
