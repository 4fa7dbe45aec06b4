package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fast-fails before any service call: a non-empty username with at least one
// role proves the middleware ran and the token carried a usable identity.
func ctxClaims(c echo.Context) (username string, roles []string, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roles, _ = c.Get("roles").([]string)
	if len(roles) == 0 {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "token carries no roles")
	}

	return username, roles, nil
}
