package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	if clone.ID == "" {
		clone.ID = user.Username
	}
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

// stubAppointmentRepo mimics the store's atomicity contract: slot claims and
// status CAS happen under one lock.
type stubAppointmentRepo struct {
	mu    sync.Mutex
	seq   int
	byID  map[string]*domain.Appointment
	slots map[string]string // slotKey -> appointment id
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{
		byID:  make(map[string]*domain.Appointment),
		slots: make(map[string]string),
	}
}

func slotKey(a *domain.Appointment) string {
	return fmt.Sprintf("%s:%d", a.VetID, a.AppointmentDate.Unix())
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(a)
	if _, taken := r.slots[key]; taken {
		return nil, domain.ErrVetUnavailable
	}

	r.seq++
	clone := *a
	clone.ID = fmt.Sprintf("appt-%d", r.seq)
	r.byID[clone.ID] = &clone
	r.slots[key] = clone.ID

	out := clone
	return &out, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAppointmentRepo) List(_ context.Context) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAppointmentRepo) Transition(_ context.Context, id string, target domain.AppointmentStatus) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	if !a.Status.CanTransitionTo(target) {
		return nil, domain.ErrInvalidTransition
	}
	a.Status = target
	if target == domain.StatusCancelled {
		delete(r.slots, slotKey(a))
	}
	clone := *a
	return &clone, nil
}

func (r *stubAppointmentRepo) CountByStatus(_ context.Context) (map[domain.AppointmentStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.AppointmentStatus]int64)
	for _, a := range r.byID {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *stubAppointmentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

type stubPetRepo struct {
	pets map[string]*domain.Pet
}

func newStubPetRepo(pets ...*domain.Pet) *stubPetRepo {
	r := &stubPetRepo{pets: make(map[string]*domain.Pet)}
	for _, p := range pets {
		r.pets[p.ID] = p
	}
	return r
}

func (r *stubPetRepo) List(_ context.Context) ([]*domain.Pet, error) {
	out := make([]*domain.Pet, 0, len(r.pets))
	for _, p := range r.pets {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPetRepo) FindByID(_ context.Context, id string) (*domain.Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return nil, domain.ErrPetNotFound
	}
	return p, nil
}

func (r *stubPetRepo) Create(_ context.Context, p *domain.Pet) (*domain.Pet, error) {
	r.pets[p.ID] = p
	return p, nil
}

func (r *stubPetRepo) Update(_ context.Context, p *domain.Pet) (*domain.Pet, error) {
	r.pets[p.ID] = p
	return p, nil
}

func (r *stubPetRepo) Delete(_ context.Context, id string) error {
	delete(r.pets, id)
	return nil
}

func (r *stubPetRepo) CountPatients(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.pets {
		if p.OwnerID != "" {
			n++
		}
	}
	return n, nil
}

type stubVetRepo struct {
	vets map[string]*domain.Vet
}

func newStubVetRepo(vets ...*domain.Vet) *stubVetRepo {
	r := &stubVetRepo{vets: make(map[string]*domain.Vet)}
	for _, v := range vets {
		r.vets[v.ID] = v
	}
	return r
}

func (r *stubVetRepo) List(_ context.Context) ([]*domain.Vet, error) {
	out := make([]*domain.Vet, 0, len(r.vets))
	for _, v := range r.vets {
		out = append(out, v)
	}
	return out, nil
}

func (r *stubVetRepo) FindByID(_ context.Context, id string) (*domain.Vet, error) {
	v, ok := r.vets[id]
	if !ok {
		return nil, domain.ErrVetNotFound
	}
	return v, nil
}

func (r *stubVetRepo) Create(_ context.Context, v *domain.Vet) (*domain.Vet, error) {
	r.vets[v.ID] = v
	return v, nil
}

func (r *stubVetRepo) Update(_ context.Context, v *domain.Vet) (*domain.Vet, error) {
	r.vets[v.ID] = v
	return v, nil
}

func (r *stubVetRepo) Delete(_ context.Context, id string) error {
	delete(r.vets, id)
	return nil
}

func (r *stubVetRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.vets)), nil
}

type stubServiceRepo struct {
	services map[string]*domain.VeterinaryService
}

func newStubServiceRepo(services ...*domain.VeterinaryService) *stubServiceRepo {
	r := &stubServiceRepo{services: make(map[string]*domain.VeterinaryService)}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *stubServiceRepo) List(_ context.Context) ([]*domain.VeterinaryService, error) {
	out := make([]*domain.VeterinaryService, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id string) (*domain.VeterinaryService, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return s, nil
}

func (r *stubServiceRepo) Create(_ context.Context, s *domain.VeterinaryService) (*domain.VeterinaryService, error) {
	r.services[s.ID] = s
	return s, nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *domain.VeterinaryService) (*domain.VeterinaryService, error) {
	r.services[s.ID] = s
	return s, nil
}

func (r *stubServiceRepo) Delete(_ context.Context, id string) error {
	delete(r.services, id)
	return nil
}

func (r *stubServiceRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, s := range r.services {
		if s.Active {
			n++
		}
	}
	return n, nil
}

// recordingAudit captures audit events synchronously.
type recordingAudit struct {
	events []domain.AppointmentEvent
}

func (a *recordingAudit) Record(event domain.AppointmentEvent) {
	a.events = append(a.events, event)
}
