package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

func TestClinicService_ComputeStats_Empty(t *testing.T) {
	svc := NewClinicService(newStubAppointmentRepo(), newStubPetRepo(), newStubVetRepo(), newStubServiceRepo(), nil, zerolog.Nop())

	stats, err := svc.ComputeStats(context.Background())
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.TotalAppointments != 0 {
		t.Fatalf("totalAppointments = %d, want 0", stats.TotalAppointments)
	}
	if len(stats.AppointmentsByStatus) != 0 {
		t.Fatalf("expected empty by-status map, got %v", stats.AppointmentsByStatus)
	}
}

func TestClinicService_ComputeStats(t *testing.T) {
	appts := newStubAppointmentRepo()
	pets := newStubPetRepo(
		&domain.Pet{ID: "pet-1", Name: "Rex", OwnerID: "owner-1"},
		&domain.Pet{ID: "pet-2", Name: "Mia", OwnerID: "owner-2"},
		&domain.Pet{ID: "pet-3", Name: "Stray"}, // no owner, not a patient
	)
	vets := newStubVetRepo(&domain.Vet{ID: "vet-1"}, &domain.Vet{ID: "vet-2"})
	services := newStubServiceRepo(
		&domain.VeterinaryService{ID: "svc-1", Active: true},
		&domain.VeterinaryService{ID: "svc-2", Active: false},
	)
	svc := NewClinicService(appts, pets, vets, services, nil, zerolog.Nop())

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		a, err := appts.Create(context.Background(), &domain.Appointment{
			AppointmentDate: base.Add(time.Duration(i) * time.Hour),
			Status:          domain.StatusScheduled,
			PetID:           "pet-1",
			VetID:           "vet-1",
			ServiceID:       "svc-1",
		})
		if err != nil {
			t.Fatalf("seed appointment %d: %v", i, err)
		}
		ids = append(ids, a.ID)
	}
	if _, err := appts.Transition(context.Background(), ids[0], domain.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	stats, err := svc.ComputeStats(context.Background())
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.TotalVets != 2 {
		t.Errorf("totalVets = %d, want 2", stats.TotalVets)
	}
	if stats.TotalPatients != 2 {
		t.Errorf("totalPatients = %d, want 2", stats.TotalPatients)
	}
	if stats.TotalAppointments != 3 {
		t.Errorf("totalAppointments = %d, want 3 (cancelled included)", stats.TotalAppointments)
	}
	if stats.ActiveServices != 1 {
		t.Errorf("activeServices = %d, want 1", stats.ActiveServices)
	}
	if stats.AppointmentsByStatus[domain.StatusScheduled] != 2 {
		t.Errorf("SCHEDULED = %d, want 2", stats.AppointmentsByStatus[domain.StatusScheduled])
	}
	if stats.AppointmentsByStatus[domain.StatusCancelled] != 1 {
		t.Errorf("CANCELLED = %d, want 1", stats.AppointmentsByStatus[domain.StatusCancelled])
	}
}

type fakeStatsCache struct {
	stored *domain.ClinicStats
}

func (c *fakeStatsCache) Get(_ context.Context) (*domain.ClinicStats, error) {
	return c.stored, nil
}

func (c *fakeStatsCache) Set(_ context.Context, stats *domain.ClinicStats) error {
	c.stored = stats
	return nil
}

func TestClinicService_ComputeStats_Cache(t *testing.T) {
	cache := &fakeStatsCache{}
	svc := NewClinicService(newStubAppointmentRepo(), newStubPetRepo(), newStubVetRepo(), newStubServiceRepo(), cache, zerolog.Nop())

	if _, err := svc.ComputeStats(context.Background()); err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if cache.stored == nil {
		t.Fatalf("expected stats to be cached")
	}

	// A cached value short-circuits the recompute.
	cache.stored = &domain.ClinicStats{TotalVets: 99}
	stats, err := svc.ComputeStats(context.Background())
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.TotalVets != 99 {
		t.Fatalf("expected cached stats, got %+v", stats)
	}
}
