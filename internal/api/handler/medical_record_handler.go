package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/clinic-system/internal/core/domain"
	"github.com/vetclinic/clinic-system/internal/core/ports"
)

// MedicalRecordHandler serves a pet's medical history. Records are written by
// the attending vet and never edited afterwards, so the surface is list,
// lookup and create only.
type MedicalRecordHandler struct {
	records ports.MedicalRecordRepository
	pets    ports.PetRepository
	vets    ports.VetRepository
}

func NewMedicalRecordHandler(records ports.MedicalRecordRepository, pets ports.PetRepository, vets ports.VetRepository) *MedicalRecordHandler {
	return &MedicalRecordHandler{records: records, pets: pets, vets: vets}
}

type createMedicalRecordRequest struct {
	RecordDate  time.Time `json:"recordDate"`
	Diagnosis   string    `json:"diagnosis" validate:"required"`
	Treatment   string    `json:"treatment"`
	Weight      float64   `json:"weight" validate:"gte=0"`
	Temperature float64   `json:"temperature" validate:"gte=0"`
	PetID       string    `json:"petId" validate:"required"`
	VetID       string    `json:"vetId" validate:"required"`
}

func (h *MedicalRecordHandler) List(c echo.Context) error {
	records, err := h.records.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

func (h *MedicalRecordHandler) Get(c echo.Context) error {
	rec, err := h.records.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// ListByPet handles GET /api/medical-records/pet/:petId.
func (h *MedicalRecordHandler) ListByPet(c echo.Context) error {
	petID := c.Param("petId")
	if _, err := h.pets.FindByID(c.Request().Context(), petID); err != nil {
		return err
	}

	records, err := h.records.ListByPet(c.Request().Context(), petID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

func (h *MedicalRecordHandler) Create(c echo.Context) error {
	var req createMedicalRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if _, err := h.pets.FindByID(ctx, req.PetID); err != nil {
		if errors.Is(err, domain.ErrPetNotFound) {
			return fmt.Errorf("pet %s: %w", req.PetID, domain.ErrUnknownReference)
		}
		return err
	}
	if _, err := h.vets.FindByID(ctx, req.VetID); err != nil {
		if errors.Is(err, domain.ErrVetNotFound) {
			return fmt.Errorf("vet %s: %w", req.VetID, domain.ErrUnknownReference)
		}
		return err
	}

	rec, err := h.records.Create(ctx, &domain.MedicalRecord{
		RecordDate:  req.RecordDate,
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
		Weight:      req.Weight,
		Temperature: req.Temperature,
		PetID:       req.PetID,
		VetID:       req.VetID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}
