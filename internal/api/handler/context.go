package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/healthdesk/assessment-api/internal/api/middleware"
	"github.com/healthdesk/assessment-api/internal/core/domain"
)

// requirePrincipal returns the principal attached by the auth middleware.
// Its absence on a protected route means the route was mounted without
// authentication, which is reported as a missing token.
func requirePrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return nil, domain.ErrMissingToken
	}
	return p, nil
}
