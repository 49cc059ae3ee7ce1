package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/healthdesk/assessment-api/internal/core/domain"
)

type principalKey struct{}

// userKey holds the full user record resolved during token verification, for
// later gates in the same request.
const userKey = "auth.user"

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the request principal, or nil for anonymous
// requests.
func PrincipalFromContext(ctx context.Context) *domain.Principal {
	if p, ok := ctx.Value(principalKey{}).(*domain.Principal); ok {
		return p
	}
	return nil
}

// PrincipalFrom is PrincipalFromContext for an echo.Context.
func PrincipalFrom(c echo.Context) *domain.Principal {
	return PrincipalFromContext(c.Request().Context())
}

func attachUser(c echo.Context, u *domain.User) {
	c.Set(userKey, u)
	req := c.Request()
	c.SetRequest(req.WithContext(WithPrincipal(req.Context(), u.Principal())))
}

func resolvedUser(c echo.Context) *domain.User {
	u, _ := c.Get(userKey).(*domain.User)
	return u
}
