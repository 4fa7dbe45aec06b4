package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// validTransitions defines the allowed state machine transitions.
// COMPLETED and CANCELLED are terminal.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusCompleted, StatusCancelled},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrVetUnavailable = errors.New("vet already booked at that time")
var ErrUnknownReference = errors.New("referenced entity does not exist")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s AppointmentStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Appointment is a scheduled encounter between a pet, a veterinarian and a
// service at a specific time. At most one non-cancelled appointment may exist
// per (vet, timestamp) pair; the repository enforces that atomically.
type Appointment struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	AppointmentDate time.Time         `json:"appointmentDate" bson:"appointment_date"`
	Notes           string            `json:"notes,omitempty" bson:"notes,omitempty"`
	Status          AppointmentStatus `json:"status" bson:"status"`
	PetID           string            `json:"petId" bson:"pet_id"`
	VetID           string            `json:"vetId" bson:"vet_id"`
	ServiceID       string            `json:"serviceId" bson:"service_id"`
	CreatedAt       time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" bson:"updated_at"`
}

// AppointmentEvent records a single lifecycle change for the audit trail.
type AppointmentEvent struct {
	ID            string            `json:"id" bson:"_id,omitempty"`
	AppointmentID string            `json:"appointment_id" bson:"appointment_id"`
	Status        AppointmentStatus `json:"status" bson:"status"`
	Actor         string            `json:"actor" bson:"actor"`
	Timestamp     time.Time         `json:"timestamp" bson:"timestamp"`
}
