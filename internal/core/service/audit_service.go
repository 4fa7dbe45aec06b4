package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vetclinic/clinic-system/internal/core/domain"
	"github.com/vetclinic/clinic-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store for audit events (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, appointmentID string, status domain.AppointmentStatus) (bool, error)
	Mark(ctx context.Context, appointmentID string, status domain.AppointmentStatus) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single lifecycle event. An appointment
// reaches a given status exactly once, so (appointment, status) is the
// idempotency key.
func (s *auditService) Process(ctx context.Context, event domain.AppointmentEvent) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event.AppointmentID, event.Status)
	if err != nil {
		s.log.Warn().Err(err).Str("appointment_id", event.AppointmentID).Msg("dedup check failed, recording anyway")
	} else if isDup {
		s.log.Debug().Str("appointment_id", event.AppointmentID).Str("status", string(event.Status)).Msg("duplicate audit event skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, event.AppointmentID, event.Status); markErr != nil {
		s.log.Warn().Err(markErr).Str("appointment_id", event.AppointmentID).Msg("failed to set dedup key")
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("appointment_id", event.AppointmentID).
		Str("status", string(event.Status)).
		Str("actor", event.Actor).
		Msg("audit event recorded")
	return nil
}
