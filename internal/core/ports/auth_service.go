package ports

import (
	"context"

	"github.com/healthdesk/assessment-api/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer to AuthService.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	GDPRConsent bool
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenVerifier validates a signed token and returns the embedded user id.
// Errors are domain.ErrInvalidToken or domain.ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
