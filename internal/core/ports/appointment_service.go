package ports

import (
	"context"
	"time"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

// CreateAppointmentInput carries all data needed to book an appointment.
type CreateAppointmentInput struct {
	AppointmentDate time.Time
	Notes           string
	PetID           string
	VetID           string
	ServiceID       string
	// Actor is the authenticated username recorded in the audit trail.
	Actor string
}

// AppointmentView is an appointment enriched with the display names of its
// references. Names fall back to "#<id>" when the referenced entity no longer
// resolves.
type AppointmentView struct {
	ID              string
	AppointmentDate time.Time
	Notes           string
	Status          domain.AppointmentStatus
	PetID           string
	PetName         string
	VetID           string
	VetName         string
	ServiceID       string
	ServiceName     string
}

// AppointmentService owns the appointment lifecycle state machine.
type AppointmentService interface {
	Create(ctx context.Context, in CreateAppointmentInput) (*AppointmentView, error)
	Get(ctx context.Context, id string) (*AppointmentView, error)
	List(ctx context.Context) ([]*AppointmentView, error)
	// Transition applies SCHEDULED -> COMPLETED or SCHEDULED -> CANCELLED.
	// Any other target, or an appointment already in a terminal state, fails
	// with domain.ErrInvalidTransition.
	Transition(ctx context.Context, id string, target domain.AppointmentStatus, actor string) (*AppointmentView, error)
}

// AuditRecorder accepts lifecycle events for asynchronous recording.
// Recording is best-effort and never blocks the calling request.
type AuditRecorder interface {
	Record(event domain.AppointmentEvent)
}

// AuditService processes a single audit event (dedup + persist).
type AuditService interface {
	Process(ctx context.Context, event domain.AppointmentEvent) error
}
