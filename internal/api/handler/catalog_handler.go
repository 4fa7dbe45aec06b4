package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/clinic-system/internal/core/domain"
	"github.com/vetclinic/clinic-system/internal/core/ports"
)

// Catalog handlers cover the mechanical CRUD surface for pets, vets, owners
// and veterinary services. Reads are open to any authenticated role; writes
// require ADMIN (enforced by the RBAC middleware on the routes).

// --- Pets ---

type PetHandler struct {
	repo ports.PetRepository
}

func NewPetHandler(repo ports.PetRepository) *PetHandler {
	return &PetHandler{repo: repo}
}

type petRequest struct {
	Name      string    `json:"name" validate:"required"`
	Species   string    `json:"species" validate:"required"`
	Breed     string    `json:"breed"`
	BirthDate time.Time `json:"birthDate"`
	OwnerID   string    `json:"ownerId"`
}

func (h *PetHandler) List(c echo.Context) error {
	pets, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pets)
}

func (h *PetHandler) Get(c echo.Context) error {
	pet, err := h.repo.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pet)
}

func (h *PetHandler) Create(c echo.Context) error {
	var req petRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pet, err := h.repo.Create(c.Request().Context(), &domain.Pet{
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		BirthDate: req.BirthDate,
		OwnerID:   req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pet)
}

func (h *PetHandler) Update(c echo.Context) error {
	var req petRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pet, err := h.repo.Update(c.Request().Context(), &domain.Pet{
		ID:        c.Param("id"),
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		BirthDate: req.BirthDate,
		OwnerID:   req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pet)
}

func (h *PetHandler) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Vets ---

type VetHandler struct {
	repo ports.VetRepository
}

func NewVetHandler(repo ports.VetRepository) *VetHandler {
	return &VetHandler{repo: repo}
}

type vetRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Specialty string `json:"specialty"`
}

func (h *VetHandler) List(c echo.Context) error {
	vets, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vets)
}

func (h *VetHandler) Get(c echo.Context) error {
	vet, err := h.repo.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vet)
}

func (h *VetHandler) Create(c echo.Context) error {
	var req vetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vet, err := h.repo.Create(c.Request().Context(), &domain.Vet{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Specialty: req.Specialty,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, vet)
}

func (h *VetHandler) Update(c echo.Context) error {
	var req vetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vet, err := h.repo.Update(c.Request().Context(), &domain.Vet{
		ID:        c.Param("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Specialty: req.Specialty,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vet)
}

func (h *VetHandler) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Owners ---

type OwnerHandler struct {
	repo ports.OwnerRepository
}

func NewOwnerHandler(repo ports.OwnerRepository) *OwnerHandler {
	return &OwnerHandler{repo: repo}
}

type ownerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
}

func (h *OwnerHandler) List(c echo.Context) error {
	owners, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, owners)
}

func (h *OwnerHandler) Get(c echo.Context) error {
	owner, err := h.repo.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, owner)
}

func (h *OwnerHandler) Create(c echo.Context) error {
	var req ownerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	owner, err := h.repo.Create(c.Request().Context(), &domain.Owner{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, owner)
}

func (h *OwnerHandler) Update(c echo.Context) error {
	var req ownerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	owner, err := h.repo.Update(c.Request().Context(), &domain.Owner{
		ID:        c.Param("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, owner)
}

func (h *OwnerHandler) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Specialties ---

type SpecialtyHandler struct {
	repo ports.SpecialtyRepository
}

func NewSpecialtyHandler(repo ports.SpecialtyRepository) *SpecialtyHandler {
	return &SpecialtyHandler{repo: repo}
}

type specialtyRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *SpecialtyHandler) List(c echo.Context) error {
	specialties, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, specialties)
}

func (h *SpecialtyHandler) Get(c echo.Context) error {
	sp, err := h.repo.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *SpecialtyHandler) Create(c echo.Context) error {
	var req specialtyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sp, err := h.repo.Create(c.Request().Context(), &domain.Specialty{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sp)
}

func (h *SpecialtyHandler) Update(c echo.Context) error {
	var req specialtyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sp, err := h.repo.Update(c.Request().Context(), &domain.Specialty{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *SpecialtyHandler) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Veterinary services ---

type ServiceHandler struct {
	repo ports.ServiceRepository
}

func NewServiceHandler(repo ports.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{repo: repo}
}

type serviceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Active      bool    `json:"active"`
}

func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Get(c echo.Context) error {
	svc, err := h.repo.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Create(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	svc, err := h.repo.Create(c.Request().Context(), &domain.VeterinaryService{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	svc, err := h.repo.Update(c.Request().Context(), &domain.VeterinaryService{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
