package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthdesk/assessment-api/internal/api/metrics"
	"github.com/healthdesk/assessment-api/internal/core/domain"
	"github.com/healthdesk/assessment-api/internal/core/ports"
)

type consentPayload struct {
	GDPRConsent bool `json:"gdprConsent"`
}

// Consent requires GDPR consent before health data is processed.
//
// Anonymous callers must send {"gdprConsent": true} in the JSON body; nothing
// is stored. Authenticated callers are checked against a fresh read of their
// stored consent, so a revocation after token verification is honoured.
func Consent(users ports.UserFinder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil {
				given, err := bodyConsent(c)
				if err != nil {
					return err
				}
				if !given {
					metrics.ConsentRejectionsTotal.WithLabelValues("anonymous").Inc()
					return domain.ErrConsentRequired
				}
				return next(c)
			}

			user, err := users.FindByID(c.Request().Context(), p.ID)
			if err != nil {
				log.Error().Err(err).Str("user_id", p.ID).Msg("consent lookup failed")
				return domain.Internal("consent lookup", err)
			}
			if !user.HasConsent() {
				metrics.ConsentRejectionsTotal.WithLabelValues("authenticated").Inc()
				return domain.ErrConsentRequired
			}
			return next(c)
		}
	}
}

// bodyConsent reads gdprConsent from the JSON body and leaves the body
// readable for the handler. Malformed or empty bodies count as no consent.
func bodyConsent(c echo.Context) (bool, error) {
	req := c.Request()
	if req.Body == nil || req.Body == http.NoBody {
		return false, nil
	}

	raw, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return false, err
	}
	defer func() { req.Body = io.NopCloser(bytes.NewReader(raw)) }()

	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}

	req.Body = io.NopCloser(bytes.NewReader(raw))
	var payload consentPayload
	if err := c.Echo().JSONSerializer.Deserialize(c, &payload); err != nil {
		return false, nil
	}
	return payload.GDPRConsent, nil
}
