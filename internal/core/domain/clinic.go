package domain

import (
	"errors"
	"time"
)

var ErrPetNotFound = errors.New("pet not found")
var ErrVetNotFound = errors.New("vet not found")
var ErrOwnerNotFound = errors.New("owner not found")
var ErrServiceNotFound = errors.New("service not found")
var ErrMedicalRecordNotFound = errors.New("medical record not found")
var ErrSpecialtyNotFound = errors.New("specialty not found")

// Pet is a registered patient. OwnerID may be empty while intake is pending;
// only pets with an owner count as patients in clinic statistics.
type Pet struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Species   string    `json:"species" bson:"species"`
	Breed     string    `json:"breed,omitempty" bson:"breed,omitempty"`
	BirthDate time.Time `json:"birthDate,omitempty" bson:"birth_date,omitempty"`
	OwnerID   string    `json:"ownerId,omitempty" bson:"owner_id,omitempty"`
}

// Vet is a veterinarian employed by the clinic.
type Vet struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	FirstName string `json:"firstName" bson:"first_name"`
	LastName  string `json:"lastName" bson:"last_name"`
	Specialty string `json:"specialty,omitempty" bson:"specialty,omitempty"`
}

// FullName returns the vet's display name.
func (v *Vet) FullName() string {
	return v.FirstName + " " + v.LastName
}

// Owner is a pet owner registered with the clinic.
type Owner struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	FirstName string `json:"firstName" bson:"first_name"`
	LastName  string `json:"lastName" bson:"last_name"`
	Email     string `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string `json:"address,omitempty" bson:"address,omitempty"`
	City      string `json:"city,omitempty" bson:"city,omitempty"`
}

// VeterinaryService is a bookable service offered by the clinic.
type VeterinaryService struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	Active      bool    `json:"active" bson:"active"`
}

// Specialty is a clinical discipline vets can be assigned to, maintained as
// its own catalog entry.
type Specialty struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// MedicalRecord is one entry in a pet's medical history, written by the
// attending vet during a visit.
type MedicalRecord struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	RecordDate  time.Time `json:"recordDate" bson:"record_date"`
	Diagnosis   string    `json:"diagnosis" bson:"diagnosis"`
	Treatment   string    `json:"treatment,omitempty" bson:"treatment,omitempty"`
	Weight      float64   `json:"weight,omitempty" bson:"weight,omitempty"`
	Temperature float64   `json:"temperature,omitempty" bson:"temperature,omitempty"`
	PetID       string    `json:"petId" bson:"pet_id"`
	VetID       string    `json:"vetId" bson:"vet_id"`
}

// ClinicStats is the derived, read-only summary served by the stats endpoint.
// It is recomputed on demand and never stored.
type ClinicStats struct {
	TotalVets            int64                       `json:"totalVets"`
	TotalPatients        int64                       `json:"totalPatients"`
	TotalAppointments    int64                       `json:"totalAppointments"`
	ActiveServices       int64                       `json:"activeServices"`
	AppointmentsByStatus map[AppointmentStatus]int64 `json:"appointmentsByStatus"`
}
