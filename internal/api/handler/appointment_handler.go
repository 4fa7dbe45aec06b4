package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/clinic-system/internal/api/metrics"
	"github.com/vetclinic/clinic-system/internal/core/domain"
	"github.com/vetclinic/clinic-system/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for the appointment lifecycle.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// List handles GET /api/appointments.
//
// @Summary      List all appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   appointmentResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]appointmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toAppointmentResponse(v))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/appointments/:id.
//
// @Summary      Get an appointment by id
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment id"
// @Success      200  {object}  appointmentResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAppointmentResponse(view))
}

// Create handles POST /api/appointments.
//
// @Summary      Book a new appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  appointmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateAppointmentInput{
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
		PetID:           req.PetID,
		VetID:           req.VetID,
		ServiceID:       req.ServiceID,
		Actor:           username,
	})
	if err != nil {
		return err
	}
	metrics.AppointmentsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, toAppointmentResponse(view))
}

// UpdateStatus handles PUT /api/appointments/:id/status?status=COMPLETED|CANCELLED.
//
// @Summary      Transition an appointment's status
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Appointment id"
// @Param        status  query     string  true  "Target status"  Enums(COMPLETED, CANCELLED)
// @Success      200     {object}  appointmentResponse
// @Failure      404     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /api/appointments/{id}/status [put]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	target := domain.AppointmentStatus(c.QueryParam("status"))
	if target == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status query parameter is required")
	}

	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.Transition(c.Request().Context(), c.Param("id"), target, username)
	if err != nil {
		return err
	}
	metrics.AppointmentTransitionsTotal.WithLabelValues(string(target)).Inc()

	return c.JSON(http.StatusOK, toAppointmentResponse(view))
}

// Cancel handles DELETE /api/appointments/:id, a soft delete via the
// CANCELLED terminal state.
//
// @Summary      Cancel an appointment
// @Tags         appointments
// @Security     BearerAuth
// @Param        id  path  string  true  "Appointment id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if _, err := h.service.Transition(c.Request().Context(), c.Param("id"), domain.StatusCancelled, username); err != nil {
		return err
	}
	metrics.AppointmentTransitionsTotal.WithLabelValues(string(domain.StatusCancelled)).Inc()

	return c.NoContent(http.StatusNoContent)
}
