package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vetclinic/clinic-system/internal/core/domain"
	"github.com/vetclinic/clinic-system/internal/core/ports"
)

// AppointmentService owns the appointment lifecycle: booking, status
// transitions and the enriched read views.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	pets         ports.PetRepository
	vets         ports.VetRepository
	services     ports.ServiceRepository
	audit        ports.AuditRecorder
	log          zerolog.Logger
}

func NewAppointmentService(
	appointments ports.AppointmentRepository,
	pets ports.PetRepository,
	vets ports.VetRepository,
	services ports.ServiceRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		pets:         pets,
		vets:         vets,
		services:     services,
		audit:        audit,
		log:          log,
	}
}

// Create books a new appointment. References are validated first; the
// (vet, timestamp) slot itself is claimed atomically by the repository, so
// two concurrent bookings for the same slot cannot both succeed.
func (s *AppointmentService) Create(ctx context.Context, in ports.CreateAppointmentInput) (*ports.AppointmentView, error) {
	pet, err := s.pets.FindByID(ctx, in.PetID)
	if err != nil {
		if errors.Is(err, domain.ErrPetNotFound) {
			return nil, fmt.Errorf("pet %s: %w", in.PetID, domain.ErrUnknownReference)
		}
		return nil, fmt.Errorf("look up pet %s: %w", in.PetID, err)
	}
	vet, err := s.vets.FindByID(ctx, in.VetID)
	if err != nil {
		if errors.Is(err, domain.ErrVetNotFound) {
			return nil, fmt.Errorf("vet %s: %w", in.VetID, domain.ErrUnknownReference)
		}
		return nil, fmt.Errorf("look up vet %s: %w", in.VetID, err)
	}
	svc, err := s.services.FindByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return nil, fmt.Errorf("service %s: %w", in.ServiceID, domain.ErrUnknownReference)
		}
		return nil, fmt.Errorf("look up service %s: %w", in.ServiceID, err)
	}

	now := time.Now().UTC()
	created, err := s.appointments.Create(ctx, &domain.Appointment{
		AppointmentDate: in.AppointmentDate.UTC(),
		Notes:           in.Notes,
		Status:          domain.StatusScheduled,
		PetID:           in.PetID,
		VetID:           in.VetID,
		ServiceID:       in.ServiceID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("vet_id", in.VetID).Time("at", in.AppointmentDate).Msg("booking rejected")
		return nil, err
	}

	s.recordEvent(created.ID, domain.StatusScheduled, in.Actor)
	s.log.Info().Str("appointment_id", created.ID).Str("vet_id", in.VetID).Msg("appointment created")

	view := s.toView(created)
	view.PetName = pet.Name
	view.VetName = vet.FullName()
	view.ServiceName = svc.Name
	return view, nil
}

// Transition applies a status change on a SCHEDULED appointment. The target
// must be one of the terminal states; re-applying an already-applied target is
// rejected, the state machine does not tolerate repeats.
func (s *AppointmentService) Transition(ctx context.Context, id string, target domain.AppointmentStatus, actor string) (*ports.AppointmentView, error) {
	if target != domain.StatusCompleted && target != domain.StatusCancelled {
		return nil, fmt.Errorf("target %s: %w", target, domain.ErrInvalidTransition)
	}

	updated, err := s.appointments.Transition(ctx, id, target)
	if err != nil {
		return nil, err
	}

	s.recordEvent(updated.ID, target, actor)
	s.log.Info().Str("appointment_id", id).Str("status", string(target)).Msg("appointment transitioned")

	return s.enrich(ctx, updated), nil
}

// Get returns a single appointment enriched with reference display names.
func (s *AppointmentService) Get(ctx context.Context, id string) (*ports.AppointmentView, error) {
	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, a), nil
}

// List returns all appointments enriched with reference display names.
// Unresolvable references fall back to the raw identifier.
func (s *AppointmentService) List(ctx context.Context) ([]*ports.AppointmentView, error) {
	appts, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}

	petNames := make(map[string]string)
	if pets, err := s.pets.List(ctx); err == nil {
		for _, p := range pets {
			petNames[p.ID] = p.Name
		}
	}
	vetNames := make(map[string]string)
	if vets, err := s.vets.List(ctx); err == nil {
		for _, v := range vets {
			vetNames[v.ID] = v.FullName()
		}
	}
	serviceNames := make(map[string]string)
	if services, err := s.services.List(ctx); err == nil {
		for _, sv := range services {
			serviceNames[sv.ID] = sv.Name
		}
	}

	views := make([]*ports.AppointmentView, 0, len(appts))
	for _, a := range appts {
		v := s.toView(a)
		if name, ok := petNames[a.PetID]; ok {
			v.PetName = name
		}
		if name, ok := vetNames[a.VetID]; ok {
			v.VetName = name
		}
		if name, ok := serviceNames[a.ServiceID]; ok {
			v.ServiceName = name
		}
		views = append(views, v)
	}
	return views, nil
}

// enrich resolves display names for a single appointment.
func (s *AppointmentService) enrich(ctx context.Context, a *domain.Appointment) *ports.AppointmentView {
	v := s.toView(a)
	if pet, err := s.pets.FindByID(ctx, a.PetID); err == nil {
		v.PetName = pet.Name
	}
	if vet, err := s.vets.FindByID(ctx, a.VetID); err == nil {
		v.VetName = vet.FullName()
	}
	if svc, err := s.services.FindByID(ctx, a.ServiceID); err == nil {
		v.ServiceName = svc.Name
	}
	return v
}

// toView maps an appointment with raw-identifier name fallbacks.
func (s *AppointmentService) toView(a *domain.Appointment) *ports.AppointmentView {
	return &ports.AppointmentView{
		ID:              a.ID,
		AppointmentDate: a.AppointmentDate,
		Notes:           a.Notes,
		Status:          a.Status,
		PetID:           a.PetID,
		PetName:         "#" + a.PetID,
		VetID:           a.VetID,
		VetName:         "#" + a.VetID,
		ServiceID:       a.ServiceID,
		ServiceName:     "#" + a.ServiceID,
	}
}

// recordEvent enqueues an audit event; auditing is best-effort and optional.
func (s *AppointmentService) recordEvent(appointmentID string, status domain.AppointmentStatus, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AppointmentEvent{
		ID:            uuid.New().String(),
		AppointmentID: appointmentID,
		Status:        status,
		Actor:         actor,
		Timestamp:     time.Now().UTC(),
	})
}
