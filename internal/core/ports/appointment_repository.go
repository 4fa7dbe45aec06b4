package ports

import (
	"context"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

// AppointmentRepository defines persistence operations for appointments.
//
// Create and Transition are the serialization points of the booking state
// machine: the store must guarantee that the slot claim and the status CAS
// are atomic with respect to concurrent calls.
type AppointmentRepository interface {
	// Create inserts a new SCHEDULED appointment and atomically claims the
	// (vet, timestamp) slot. Returns domain.ErrVetUnavailable when another
	// non-cancelled appointment already holds the slot.
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	// FindByID returns domain.ErrAppointmentNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	// List returns all appointments ordered by appointment date.
	List(ctx context.Context) ([]*domain.Appointment, error)
	// Transition atomically moves a SCHEDULED appointment to target and, when
	// target is CANCELLED, frees the booking slot. Returns
	// domain.ErrAppointmentNotFound for unknown ids and
	// domain.ErrInvalidTransition when the appointment is no longer SCHEDULED.
	Transition(ctx context.Context, id string, target domain.AppointmentStatus) (*domain.Appointment, error)
	// CountByStatus returns a count per status present; empty map when there
	// are no appointments.
	CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int64, error)
	Count(ctx context.Context) (int64, error)
}

// AuditRepository persists the appointment audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AppointmentEvent) error
}
