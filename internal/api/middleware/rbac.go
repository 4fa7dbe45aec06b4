package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

// Operations guarded by the authorization gate. Each route declares exactly
// one operation; the required-role sets live in the policy table below rather
// than being scattered across handlers.
const (
	OpAppointmentsRead   = "appointments:read"
	OpAppointmentsWrite  = "appointments:write"
	OpClinicStatsRead    = "clinic:stats:read"
	OpCatalogRead        = "catalog:read"
	OpCatalogWrite       = "catalog:write"
	OpMedicalRecordRead  = "medical-records:read"
	OpMedicalRecordWrite = "medical-records:write"
)

// policy is the static operation -> required-role-set table. Any-of
// semantics: a caller holding at least one required role is allowed.
var policy = map[string][]string{
	OpAppointmentsRead:  {domain.RoleAdmin, domain.RoleVet, domain.RoleReceptionist, domain.RoleUser},
	OpAppointmentsWrite: {domain.RoleAdmin, domain.RoleVet, domain.RoleReceptionist},
	OpClinicStatsRead:   {domain.RoleAdmin, domain.RoleVet, domain.RoleReceptionist, domain.RoleUser},
	OpCatalogRead:       {domain.RoleAdmin, domain.RoleVet, domain.RoleReceptionist, domain.RoleUser},
	OpCatalogWrite:      {domain.RoleAdmin},
	// Medical history is clinical data: staff can read it, only vets (and
	// admins) write it.
	OpMedicalRecordRead:  {domain.RoleAdmin, domain.RoleVet, domain.RoleReceptionist},
	OpMedicalRecordWrite: {domain.RoleAdmin, domain.RoleVet},
}

// Allowed reports whether the caller's roles intersect the required set.
// An empty or unknown required set denies: an operation with no declared
// policy is a misconfiguration, not a public endpoint.
func Allowed(claimRoles, required []string) bool {
	if len(required) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(required))
	for _, r := range required {
		set[r] = struct{}{}
	}
	for _, r := range claimRoles {
		if _, ok := set[r]; ok {
			return true
		}
	}
	return false
}

// RBAC enforces the policy table entry for the given operation. Deny is
// terminal for the request and is reported as 403, never downgraded.
func RBAC(operation string) echo.MiddlewareFunc {
	required := policy[operation]

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]string)
			if !Allowed(roles, required) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
