package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vetclinic/clinic-system/internal/core/domain"
	"github.com/vetclinic/clinic-system/internal/core/ports"
)

// StatsCache abstracts the short-TTL cache in front of ComputeStats (Redis).
// Failures degrade to a recompute, never to an error.
type StatsCache interface {
	Get(ctx context.Context) (*domain.ClinicStats, error)
	Set(ctx context.Context, stats *domain.ClinicStats) error
}

// ClinicService computes the read-only clinic statistics view.
type ClinicService struct {
	appointments ports.AppointmentRepository
	pets         ports.PetRepository
	vets         ports.VetRepository
	services     ports.ServiceRepository
	cache        StatsCache
	log          zerolog.Logger
}

// NewClinicService returns a ClinicService. cache may be nil.
func NewClinicService(
	appointments ports.AppointmentRepository,
	pets ports.PetRepository,
	vets ports.VetRepository,
	services ports.ServiceRepository,
	cache StatsCache,
	log zerolog.Logger,
) *ClinicService {
	return &ClinicService{
		appointments: appointments,
		pets:         pets,
		vets:         vets,
		services:     services,
		cache:        cache,
		log:          log,
	}
}

// ComputeStats aggregates vet, patient, service and appointment counts.
// Purely a read operation; nothing is mutated.
func (s *ClinicService) ComputeStats(ctx context.Context) (*domain.ClinicStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	totalVets, err := s.vets.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalPatients, err := s.pets.CountPatients(ctx)
	if err != nil {
		return nil, err
	}
	totalAppointments, err := s.appointments.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeServices, err := s.services.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.appointments.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.ClinicStats{
		TotalVets:            totalVets,
		TotalPatients:        totalPatients,
		TotalAppointments:    totalAppointments,
		ActiveServices:       activeServices,
		AppointmentsByStatus: byStatus,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache clinic stats")
		}
	}
	return stats, nil
}
