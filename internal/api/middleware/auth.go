package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthdesk/assessment-api/internal/api/metrics"
	"github.com/healthdesk/assessment-api/internal/core/domain"
	"github.com/healthdesk/assessment-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

// Outcome is the result of resolving a request's credentials: either
// authenticated with a Principal, or anonymous with the Reason why.
type Outcome struct {
	Principal *domain.Principal
	Reason    error

	user *domain.User
}

// Authenticated reports whether the outcome carries a verified principal.
func (o Outcome) Authenticated() bool {
	return o.Reason == nil && o.user != nil
}

func anonymous(reason error) Outcome {
	return Outcome{Reason: reason}
}

// Authenticator verifies bearer tokens and resolves them to stored users.
type Authenticator struct {
	tokens ports.TokenVerifier
	users  ports.UserFinder
	log    zerolog.Logger
}

func NewAuthenticator(tokens ports.TokenVerifier, users ports.UserFinder, log zerolog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, log: log}
}

// Resolve extracts the token from an Authorization header value, verifies it
// and looks up its user.
func (a *Authenticator) Resolve(ctx context.Context, header string) Outcome {
	token, ok := bearerToken(header)
	if !ok {
		return anonymous(domain.ErrMissingToken)
	}

	userID, err := a.tokens.Verify(token)
	if err != nil {
		return anonymous(err)
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return anonymous(domain.ErrTokenUserNotFound)
		}
		return anonymous(domain.Internal("token user lookup", err))
	}

	return Outcome{Principal: user.Principal(), user: user}
}

// Required rejects any request that does not resolve to a user.
func (a *Authenticator) Required() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			out := a.Resolve(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			if !out.Authenticated() {
				metrics.AuthRejectionsTotal.WithLabelValues(reasonLabel(out.Reason)).Inc()
				return out.Reason
			}

			attachUser(c, out.user)
			return next(c)
		}
	}
}

// Optional attaches a principal when the request carries valid credentials
// for an active account and otherwise continues anonymously. It never
// terminates the request.
func (a *Authenticator) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			out := a.Resolve(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			if out.Authenticated() {
				if err := checkActive(out.user); err != nil {
					out = anonymous(err)
				}
			}

			if !out.Authenticated() {
				reason := reasonLabel(out.Reason)
				metrics.AuthAnonymousTotal.WithLabelValues(reason).Inc()
				a.log.Debug().
					Err(out.Reason).
					Str("reason", reason).
					Str("path", c.Path()).
					Msg("optional auth: continuing unauthenticated")
				return next(c)
			}

			attachUser(c, out.user)
			return next(c)
		}
	}
}

// bearerToken returns the token following the case-sensitive "Bearer " prefix.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	return token, token != ""
}

func reasonLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired_token"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrTokenUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrAccountDeactivated):
		return "account_deactivated"
	default:
		return "lookup_failed"
	}
}
