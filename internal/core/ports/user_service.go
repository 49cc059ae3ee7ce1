package ports

import (
	"context"

	"github.com/healthdesk/assessment-api/internal/core/domain"
)

// UserService covers the account operations exposed to authenticated callers.
type UserService interface {
	Profile(ctx context.Context, id string) (*domain.User, error)
	UpdateConsent(ctx context.Context, id string, given bool) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
}
