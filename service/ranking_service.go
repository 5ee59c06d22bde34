package service

import (
	"context"
	"fmt"

	"bolao/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RankingCache stores a ranking snapshot. Implementations may miss at
// any time; the service always falls back to the database.
type RankingCache interface {
	Get(ctx context.Context) ([]*models.RankingEntry, bool)
	Set(ctx context.Context, entries []*models.RankingEntry)
	Invalidate(ctx context.Context)
}

type rankingService struct {
	uowFactory UnitOfWorkFactory
	cache      RankingCache
}

// NewRankingService creates the ranking read-model service. cache may
// be nil, in which case every read hits the database.
func NewRankingService(uowFactory UnitOfWorkFactory, cache RankingCache) RankingService {
	return &rankingService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *rankingService) GetRanking(ctx context.Context) ([]*models.RankingEntry, error) {
	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx); ok {
			return entries, nil
		}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.ProfileRepository().ListRanking(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking: %w", err)
	}

	models.SortRanking(entries)
	models.AssignPosicoes(entries)

	if s.cache != nil {
		s.cache.Set(ctx, entries)
	}

	logrus.WithField("entries", len(entries)).Debug("ranking rebuilt from database")
	return entries, nil
}

func (s *rankingService) GetPosicao(ctx context.Context, userID uuid.UUID) (int, int, error) {
	entries, err := s.GetRanking(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, e := range entries {
		if e.UserID == userID {
			return e.Posicao, len(entries), nil
		}
	}
	return 0, len(entries), fmt.Errorf("%w: profile %s", ErrNotFound, userID)
}
