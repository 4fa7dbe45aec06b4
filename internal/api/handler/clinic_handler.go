package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/clinic-system/internal/core/ports"
)

// ClinicHandler serves the derived clinic statistics view.
type ClinicHandler struct {
	service ports.ClinicService
}

func NewClinicHandler(service ports.ClinicService) *ClinicHandler {
	return &ClinicHandler{service: service}
}

// Stats handles GET /api/clinic/stats.
//
// @Summary      Clinic statistics
// @Tags         clinic
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clinicStatsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/clinic/stats [get]
func (h *ClinicHandler) Stats(c echo.Context) error {
	stats, err := h.service.ComputeStats(c.Request().Context())
	if err != nil {
		return err
	}

	byStatus := make(map[string]int64, len(stats.AppointmentsByStatus))
	for status, n := range stats.AppointmentsByStatus {
		byStatus[string(status)] = n
	}

	return c.JSON(http.StatusOK, clinicStatsResponse{
		TotalVets:            stats.TotalVets,
		TotalPatients:        stats.TotalPatients,
		TotalAppointments:    stats.TotalAppointments,
		ActiveServices:       stats.ActiveServices,
		AppointmentsByStatus: byStatus,
	})
}
