package ports

import (
	"context"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

// AuthService defines authentication use cases.
type AuthService interface {
	// Login verifies credentials and returns a signed token plus the identity.
	// Fails with domain.ErrUserNotFound or domain.ErrInvalidCredentials; both
	// are surfaced to callers as a generic authentication failure.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Register creates a new identity with the default USER role.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
}
