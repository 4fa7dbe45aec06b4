package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, *domain.User, error) {
			if username != "drsmith" || password != "correctpass" {
				t.Fatalf("unexpected credentials: %s/%s", username, password)
			}
			return "signed.jwt.token", &domain.User{Username: "drsmith", Roles: []string{domain.RoleVet}}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"drsmith","password":"correctpass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.AccessToken != "signed.jwt.token" {
		t.Errorf("accessToken = %q", resp.AccessToken)
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("tokenType = %q, want Bearer", resp.TokenType)
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != domain.RoleVet {
		t.Errorf("roles = %v, want [%s]", resp.Roles, domain.RoleVet)
	}
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"drsmith","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthHandlerLoginMissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			t.Fatal("service must not be called on invalid input")
			return "", nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"username":"drsmith"}`)
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("Login() error = %v, want 400", err)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(_ context.Context, username, email, password string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Username: username, Email: email, Roles: []string{domain.RoleUser}}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"newuser","email":"new@clinic.test","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Username != "newuser" {
		t.Errorf("username = %q", resp.Username)
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != domain.RoleUser {
		t.Errorf("roles = %v, want [%s]", resp.Roles, domain.RoleUser)
	}
}

func TestAuthHandlerRegisterDuplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"newuser","password":"secret1"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("Register() error = %v, want ErrUserExists", err)
	}
}

func TestAuthHandlerRegisterShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"newuser","password":"abc"}`)
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("Register() error = %v, want 400", err)
	}
}
