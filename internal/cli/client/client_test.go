package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["username"] != "drsmith" {
			t.Errorf("username = %q", body["username"])
		}
		json.NewEncoder(w).Encode(LoginResult{
			AccessToken: "tok123",
			TokenType:   "Bearer",
			Roles:       []string{"VET"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Login(context.Background(), "drsmith", "pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.AccessToken != "tok123" {
		t.Errorf("accessToken = %q", res.AccessToken)
	}
	if c.token != "tok123" {
		t.Errorf("client token = %q, want tok123", c.token)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode([]Appointment{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok123")
	if _, err := c.Appointments(context.Background()); err != nil {
		t.Fatalf("Appointments() error = %v", err)
	}
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "vet is not available at the requested time"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateAppointment(context.Background(), CreateAppointmentInput{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Errorf("status = %d, want 409", apiErr.Status)
	}
	if apiErr.Message != "vet is not available at the requested time" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestClientAPIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Stats(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", apiErr.Status)
	}
}

func TestClientCancelAppointment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/appointments/appt-1" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.CancelAppointment(context.Background(), "appt-1"); err != nil {
		t.Fatalf("CancelAppointment() error = %v", err)
	}
}
