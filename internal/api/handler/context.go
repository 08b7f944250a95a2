package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dreamblog/dreamblog-api/internal/api/middleware"
	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// callerIdentity extracts the identity bound by the authentication gate.
// Handlers behind RequireAuth can rely on it being present; the error return
// guards routes that are reachable anonymously.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	ident, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return ident, nil
}
