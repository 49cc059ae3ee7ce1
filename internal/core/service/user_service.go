package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthdesk/assessment-api/internal/core/domain"
	"github.com/healthdesk/assessment-api/internal/core/ports"
)

type userService struct {
	repo           ports.UserRepository
	consentVersion string
	log            zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(repo ports.UserRepository, consentVersion string, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, consentVersion: consentVersion, log: log}
}

func (s *userService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateConsent stores a grant or revocation stamped with the current consent
// version.
func (s *userService) UpdateConsent(ctx context.Context, id string, given bool) (*domain.User, error) {
	consent := domain.GDPRConsent{
		ConsentGiven:   given,
		ConsentDate:    time.Now().UTC(),
		ConsentVersion: s.consentVersion,
	}

	user, err := s.repo.UpdateConsent(ctx, id, consent)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Bool("consent_given", given).Msg("gdpr consent updated")
	return user, nil
}

func (s *userService) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	user, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Bool("active", active).Msg("account status changed")
	return user, nil
}
