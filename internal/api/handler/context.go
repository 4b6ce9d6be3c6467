package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portfolio/blog-api/internal/core/domain"
	"github.com/portfolio/blog-api/internal/core/ports"
)

// ctxPrincipal builds the principal value from the claims injected by the
// Auth middleware and fast-fails before any service call:
//   - username must be non-empty (presence proves the middleware ran).
//   - role must parse into the closed role set; a structurally valid JWT with
//     an unknown role is rejected with 401.
func ctxPrincipal(c echo.Context) (ports.Principal, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return ports.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roleClaim, _ := c.Get("role").(string)
	role, err := domain.ParseRole(roleClaim)
	if err != nil {
		return ports.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries an unknown role")
	}

	return ports.Principal{Username: username, Role: role}, nil
}
