package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rewardsystem/rewards-api/internal/api/middleware"
	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

// ctxPrincipal extracts the identity injected by the access enforcer. A
// missing principal on a protected route means the gate never ran, so the
// request fails closed with a 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || principal.Username == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
