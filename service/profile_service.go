package service

import (
	"context"
	"fmt"

	"bolao/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type profileService struct {
	uowFactory UnitOfWorkFactory
}

// NewProfileService creates a new profile service
func NewProfileService(uowFactory UnitOfWorkFactory) ProfileService {
	return &profileService{
		uowFactory: uowFactory,
	}
}

func (s *profileService) GetOrCreateProfile(ctx context.Context, id uuid.UUID, username string) (*models.Profile, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	profile, err := uow.ProfileRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}

	profile = &models.Profile{
		ID:       id,
		Username: username,
		Nivel:    1,
	}
	if err := uow.ProfileRepository().Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"userId":   id,
		"username": username,
	}).Info("created profile for first-time user")

	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	profile, err := uow.ProfileRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile %s", ErrNotFound, id)
	}
	return profile, nil
}

func (s *profileService) GetStreak(ctx context.Context, userID uuid.UUID) (*models.Streak, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	streak, err := uow.StreakRepository().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return streak, nil
}
