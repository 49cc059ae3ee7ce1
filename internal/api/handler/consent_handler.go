package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthdesk/assessment-api/internal/api/middleware"
)

// ConsentHandler answers once the consent gate has let a request through.
type ConsentHandler struct{}

func NewConsentHandler() *ConsentHandler {
	return &ConsentHandler{}
}

// Check confirms that health data may be processed for this caller.
//
// @Summary      Verify GDPR consent
// @Tags         consent
// @Accept       json
// @Produce      json
// @Param        body  body      consentRequest  false  "Required for anonymous callers"
// @Success      200   {object}  consentCheckResponse
// @Failure      400   {object}  api.errorResponse
// @Failure      500   {object}  api.errorResponse
// @Router       /v1/consent/check [post]
func (h *ConsentHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, consentCheckResponse{
		Success:       true,
		Message:       "Consent verified",
		Authenticated: middleware.PrincipalFrom(c) != nil,
	})
}
