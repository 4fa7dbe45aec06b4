package handler

import (
	"time"

	"github.com/vetclinic/clinic-system/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createAppointmentRequest struct {
	AppointmentDate time.Time `json:"appointmentDate" validate:"required"`
	Notes           string    `json:"notes"`
	PetID           string    `json:"petId" validate:"required"`
	VetID           string    `json:"vetId" validate:"required"`
	ServiceID       string    `json:"serviceId" validate:"required"`
}

// appointmentResponse mirrors the wire shape consumed by the terminal client:
// each reference id is paired with its resolved display name.
type appointmentResponse struct {
	ID              string    `json:"id"`
	AppointmentDate time.Time `json:"appointmentDate"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	PetID           string    `json:"petId"`
	PetName         string    `json:"petName"`
	VetID           string    `json:"vetId"`
	VetName         string    `json:"vetName"`
	ServiceID       string    `json:"serviceId"`
	ServiceName     string    `json:"serviceName"`
}

func toAppointmentResponse(v *ports.AppointmentView) appointmentResponse {
	return appointmentResponse{
		ID:              v.ID,
		AppointmentDate: v.AppointmentDate,
		Notes:           v.Notes,
		Status:          string(v.Status),
		PetID:           v.PetID,
		PetName:         v.PetName,
		VetID:           v.VetID,
		VetName:         v.VetName,
		ServiceID:       v.ServiceID,
		ServiceName:     v.ServiceName,
	}
}

type clinicStatsResponse struct {
	TotalVets            int64            `json:"totalVets"`
	TotalPatients        int64            `json:"totalPatients"`
	TotalAppointments    int64            `json:"totalAppointments"`
	ActiveServices       int64            `json:"activeServices"`
	AppointmentsByStatus map[string]int64 `json:"appointmentsByStatus"`
}
