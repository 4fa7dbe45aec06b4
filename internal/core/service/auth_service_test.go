package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rs/zerolog"

	"github.com/vetclinic/clinic-system/internal/core/domain"
	"github.com/vetclinic/clinic-system/pkg/token"
)

func newAuthService(repo *stubUserRepo) (*AuthService, *token.Issuer) {
	issuer := token.NewIssuer("secret", time.Hour)
	return NewAuthService(repo, issuer, zerolog.Nop()), issuer
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, roles ...string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, issuer := newAuthService(repo)
	seedUser(t, repo, "drsmith", "correctpass", domain.RoleVet)

	signed, user, err := svc.Login(context.Background(), "drsmith", "correctpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Username != "drsmith" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := issuer.Validate(signed)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != "drsmith" {
		t.Fatalf("subject = %q, want drsmith", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleVet {
		t.Fatalf("roles = %v, want [VET]", claims.Roles)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)
	seedUser(t, repo, "drsmith", "correctpass", domain.RoleVet)

	if _, _, err := svc.Login(context.Background(), "drsmith", "wrongpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// failingUserRepo simulates a user store that is down.
type failingUserRepo struct {
	*stubUserRepo
	err error
}

func (r *failingUserRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, r.err
}

func TestAuthService_Login_StoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("connection timed out")
	svc, _ := newAuthService(newStubUserRepo())
	svc.repo = &failingUserRepo{stubUserRepo: newStubUserRepo(), err: storeErr}

	_, _, err := svc.Login(context.Background(), "drsmith", "correctpass")
	if !errors.Is(err, storeErr) {
		t.Fatalf("store error not propagated, got %v", err)
	}
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store outage misreported as a credential failure: %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)

	if _, _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("expected default USER role, got %v", user.Roles)
	}

	if _, err := svc.Register(context.Background(), "alice", "other@example.com", "pass456"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)

	if err := svc.EnsureAdmin(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	admin, err := repo.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if !admin.HasRole(domain.RoleAdmin) {
		t.Fatalf("expected ADMIN role, got %v", admin.Roles)
	}

	// second call is a no-op
	if err := svc.EnsureAdmin(context.Background(), "admin", "other"); err != nil {
		t.Fatalf("ensure admin repeat: %v", err)
	}
}
