package ports

import (
	"context"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

// PetRepository defines persistence operations for pets.
type PetRepository interface {
	List(ctx context.Context) ([]*domain.Pet, error)
	FindByID(ctx context.Context, id string) (*domain.Pet, error)
	Create(ctx context.Context, p *domain.Pet) (*domain.Pet, error)
	Update(ctx context.Context, p *domain.Pet) (*domain.Pet, error)
	Delete(ctx context.Context, id string) error
	// CountPatients counts pets with a registered owner.
	CountPatients(ctx context.Context) (int64, error)
}

// VetRepository defines persistence operations for veterinarians.
type VetRepository interface {
	List(ctx context.Context) ([]*domain.Vet, error)
	FindByID(ctx context.Context, id string) (*domain.Vet, error)
	Create(ctx context.Context, v *domain.Vet) (*domain.Vet, error)
	Update(ctx context.Context, v *domain.Vet) (*domain.Vet, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// OwnerRepository defines persistence operations for pet owners.
type OwnerRepository interface {
	List(ctx context.Context) ([]*domain.Owner, error)
	FindByID(ctx context.Context, id string) (*domain.Owner, error)
	Create(ctx context.Context, o *domain.Owner) (*domain.Owner, error)
	Update(ctx context.Context, o *domain.Owner) (*domain.Owner, error)
	Delete(ctx context.Context, id string) error
}

// SpecialtyRepository defines persistence operations for clinical specialties.
type SpecialtyRepository interface {
	List(ctx context.Context) ([]*domain.Specialty, error)
	FindByID(ctx context.Context, id string) (*domain.Specialty, error)
	Create(ctx context.Context, s *domain.Specialty) (*domain.Specialty, error)
	Update(ctx context.Context, s *domain.Specialty) (*domain.Specialty, error)
	Delete(ctx context.Context, id string) error
}

// MedicalRecordRepository defines persistence operations for the medical
// history. Records are append-only: there is no update or delete.
type MedicalRecordRepository interface {
	List(ctx context.Context) ([]*domain.MedicalRecord, error)
	ListByPet(ctx context.Context, petID string) ([]*domain.MedicalRecord, error)
	FindByID(ctx context.Context, id string) (*domain.MedicalRecord, error)
	Create(ctx context.Context, r *domain.MedicalRecord) (*domain.MedicalRecord, error)
}

// ServiceRepository defines persistence operations for veterinary services.
type ServiceRepository interface {
	List(ctx context.Context) ([]*domain.VeterinaryService, error)
	FindByID(ctx context.Context, id string) (*domain.VeterinaryService, error)
	Create(ctx context.Context, s *domain.VeterinaryService) (*domain.VeterinaryService, error)
	Update(ctx context.Context, s *domain.VeterinaryService) (*domain.VeterinaryService, error)
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}
