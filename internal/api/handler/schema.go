package handler

import "github.com/healthdesk/assessment-api/internal/core/domain"

type registerRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=8"`
	Name        string `json:"name"        validate:"required,max=100"`
	GDPRConsent bool   `json:"gdprConsent"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type consentRequest struct {
	GDPRConsent *bool `json:"gdprConsent" validate:"required"`
}

type statusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

type sessionResponse struct {
	Success       bool              `json:"success"`
	Authenticated bool              `json:"authenticated"`
	Principal     *domain.Principal `json:"user,omitempty"`
}

type consentCheckResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Authenticated bool   `json:"authenticated"`
}
