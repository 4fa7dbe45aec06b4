package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetclinic/clinic-system/internal/core/domain"
	"github.com/vetclinic/clinic-system/internal/core/ports"
	"github.com/vetclinic/clinic-system/pkg/token"
)

// AuthService implements credential verification, registration and login.
type AuthService struct {
	repo   ports.UserRepository
	issuer *token.Issuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, log: log}
}

// Login verifies the username/password pair and issues a token carrying the
// identity's role set. The specific failure cause is logged here and never
// returned beyond the error handler, which collapses both causes to 401.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Info().Str("username", username).Msg("login failed: unknown user")
		} else {
			s.log.Error().Err(err).Str("username", username).Msg("login failed: user lookup error")
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Info().Str("username", username).Msg("login failed: password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user.Username, user.Roles)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", username).Strs("roles", user.Roles).Msg("login succeeded")
	return signed, user, nil
}

// Register creates a new identity with the default USER role.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", username).Msg("user registered")
	return created, nil
}

// EnsureAdmin creates the bootstrap ADMIN identity when it does not exist.
// Called once at startup; a no-op when the user is already present.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleAdmin},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		// lost a startup race with another instance
		return nil
	}
	if err == nil {
		s.log.Info().Str("username", username).Msg("admin user created")
	}
	return err
}
