package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/healthdesk/assessment-api/internal/api/metrics"
	"github.com/healthdesk/assessment-api/internal/core/domain"
)

// ActiveUser rejects requests whose resolved user has been deactivated.
// Requests without a resolved user pass through unchanged.
func ActiveUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := checkActive(resolvedUser(c)); err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(reasonLabel(err)).Inc()
				return err
			}
			return next(c)
		}
	}
}

func checkActive(u *domain.User) error {
	if u != nil && !u.IsActive {
		return domain.ErrAccountDeactivated
	}
	return nil
}
