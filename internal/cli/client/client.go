// Package client is a thin HTTP client for the clinic API, used by the
// terminal frontend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError carries the status code and server-provided message of a failed call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client talks to the clinic API. Token may be empty for unauthenticated calls.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// LoginResult is the server's answer to a successful login.
type LoginResult struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	Roles       []string `json:"roles"`
}

// Login authenticates and remembers the returned token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.AccessToken
	return &out, nil
}

// Register creates a new account with the default role.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
}

// Appointment is the wire representation served by the API.
type Appointment struct {
	ID              string    `json:"id"`
	AppointmentDate time.Time `json:"appointmentDate"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	PetID           string    `json:"petId"`
	PetName         string    `json:"petName"`
	VetID           string    `json:"vetId"`
	VetName         string    `json:"vetName"`
	ServiceID       string    `json:"serviceId"`
	ServiceName     string    `json:"serviceName"`
}

func (c *Client) Appointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAppointmentInput is the booking request payload.
type CreateAppointmentInput struct {
	AppointmentDate time.Time `json:"appointmentDate"`
	Notes           string    `json:"notes,omitempty"`
	PetID           string    `json:"petId"`
	VetID           string    `json:"vetId"`
	ServiceID       string    `json:"serviceId"`
}

func (c *Client) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id, status string) (*Appointment, error) {
	var out Appointment
	path := fmt.Sprintf("/api/appointments/%s/status?status=%s", id, status)
	if err := c.do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/appointments/"+id, nil, nil)
}

// ClinicStats is the aggregated statistics view.
type ClinicStats struct {
	TotalVets            int64            `json:"totalVets"`
	TotalPatients        int64            `json:"totalPatients"`
	TotalAppointments    int64            `json:"totalAppointments"`
	ActiveServices       int64            `json:"activeServices"`
	AppointmentsByStatus map[string]int64 `json:"appointmentsByStatus"`
}

func (c *Client) Stats(ctx context.Context) (*ClinicStats, error) {
	var out ClinicStats
	if err := c.do(ctx, http.MethodGet, "/api/clinic/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Vet is the catalog entry for a veterinarian.
type Vet struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Specialty string `json:"specialty"`
}

func (c *Client) Vets(ctx context.Context) ([]Vet, error) {
	var out []Vet
	if err := c.do(ctx, http.MethodGet, "/api/vets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Pet is the catalog entry for a pet.
type Pet struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	OwnerID string `json:"ownerId"`
}

func (c *Client) Pets(ctx context.Context) ([]Pet, error) {
	var out []Pet
	if err := c.do(ctx, http.MethodGet, "/api/pets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Service is the catalog entry for a bookable veterinary service.
type Service struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

func (c *Client) Services(ctx context.Context) ([]Service, error) {
	var out []Service
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs one request. A non-2xx response is returned as *APIError with
// the server's error message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		msg := resp.Status
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil {
			if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
				msg = envelope.Error
			}
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
