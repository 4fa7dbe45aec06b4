package handler

import (
	"strings"
	"testing"
)

func TestValidatorReportsWireFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&createAppointmentRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty request")
	}

	msg := err.Error()
	for _, want := range []string{"appointmentDate is required", "petId is required", "vetId is required", "serviceId is required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
	if strings.Contains(msg, "AppointmentDate") {
		t.Errorf("message %q leaks Go field names", msg)
	}
}

func TestValidatorPassesValidRequest(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{Username: "newuser", Password: "secret1"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidatorNumericBound(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&serviceRequest{Name: "Vaccination", Price: -5})
	if err == nil {
		t.Fatal("expected validation error for negative price")
	}
	if !strings.Contains(err.Error(), "price must be 0 or greater") {
		t.Errorf("message = %q", err.Error())
	}
}
