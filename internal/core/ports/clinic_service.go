package ports

import (
	"context"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

// ClinicService computes the derived clinic statistics view.
type ClinicService interface {
	// ComputeStats aggregates counts across vets, pets, services and
	// appointments. Read-only; an empty appointment set yields zero counts
	// and an empty by-status map.
	ComputeStats(ctx context.Context) (*domain.ClinicStats, error)
}
