package ports

import (
	"context"

	"github.com/healthdesk/assessment-api/internal/core/domain"
)

// UserFinder is the read-only view of the user store used by the
// authorization chain. FindByID returns domain.ErrUserNotFound when absent.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	UserFinder
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateConsent(ctx context.Context, id string, consent domain.GDPRConsent) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
}
