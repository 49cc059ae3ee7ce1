package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthdesk/assessment-api/internal/core/domain"
	"github.com/healthdesk/assessment-api/internal/core/ports"
)

// UserHandler handles account changes made by users and administrators.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// UpdateConsent grants or revokes the caller's GDPR consent.
//
// @Summary      Update GDPR consent
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      consentRequest  true  "Consent decision"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  api.errorResponse
// @Failure      422   {object}  api.errorResponse
// @Router       /v1/users/me/consent [put]
func (h *UserHandler) UpdateConsent(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req consentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.UpdateConsent(c.Request().Context(), p.ID, *req.GDPRConsent)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// SetStatus activates or deactivates an account. Admins cannot deactivate
// themselves.
//
// @Summary      Set account status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "User id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  api.errorResponse
// @Failure      403   {object}  api.errorResponse
// @Failure      404   {object}  api.errorResponse
// @Router       /v1/admin/users/{id}/status [patch]
func (h *UserHandler) SetStatus(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id := c.Param("id")
	if id == p.ID && !*req.IsActive {
		return domain.ErrForbidden
	}

	user, err := h.service.SetActive(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}
