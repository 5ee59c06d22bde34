package service

import (
	"context"
	"testing"

	"bolao/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeRankingCache is an in-memory RankingCache for service tests
type fakeRankingCache struct {
	entries []*models.RankingEntry
	sets    int
}

func (c *fakeRankingCache) Get(ctx context.Context) ([]*models.RankingEntry, bool) {
	if c.entries == nil {
		return nil, false
	}
	return c.entries, true
}

func (c *fakeRankingCache) Set(ctx context.Context, entries []*models.RankingEntry) {
	c.entries = entries
	c.sets++
}

func (c *fakeRankingCache) Invalidate(ctx context.Context) {
	c.entries = nil
}

func newRankingMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockProfileRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockProfileRepo := new(MockProfileRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, mockProfileRepo, nil, nil)
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	return mockFactory, mockUoW, mockProfileRepo
}

func TestRankingService_GetRanking_OrdenaEAtribuiPosicoes(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockProfileRepo := newRankingMocks()

	service := NewRankingService(mockFactory, nil)

	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	mockProfileRepo.On("ListRanking", ctx).Return([]*models.RankingEntry{
		{UserID: a, Username: "ana", PontosTotais: 80, XP: 100},
		{UserID: b, Username: "bia", PontosTotais: 100, XP: 200},
		{UserID: c, Username: "cris", PontosTotais: 100, XP: 150},
	}, nil)

	entries, err := service.GetRanking(ctx)

	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	// Tied points share the position; XP only decides display order
	assert.Equal(t, "bia", entries[0].Username)
	assert.Equal(t, 1, entries[0].Posicao)
	assert.Equal(t, "cris", entries[1].Username)
	assert.Equal(t, 1, entries[1].Posicao)
	assert.Equal(t, "ana", entries[2].Username)
	assert.Equal(t, 3, entries[2].Posicao)
}

func TestRankingService_GetRanking_UsaCache(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockProfileRepo := newRankingMocks()

	cache := &fakeRankingCache{}
	service := NewRankingService(mockFactory, cache)

	mockProfileRepo.On("ListRanking", ctx).Return([]*models.RankingEntry{
		{UserID: uuid.New(), Username: "ana", PontosTotais: 10},
	}, nil).Once()

	first, err := service.GetRanking(ctx)
	assert.NoError(t, err)

	// Second call is served from the cache, no second database read
	second, err := service.GetRanking(ctx)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
	mockProfileRepo.AssertExpectations(t)

	// After invalidation the database is hit again
	cache.Invalidate(ctx)
	mockProfileRepo.On("ListRanking", ctx).Return([]*models.RankingEntry{}, nil).Once()
	_, err = service.GetRanking(ctx)
	assert.NoError(t, err)
	mockProfileRepo.AssertExpectations(t)
}

func TestRankingService_GetPosicao(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockProfileRepo := newRankingMocks()

	service := NewRankingService(mockFactory, nil)

	alvo := uuid.New()
	mockProfileRepo.On("ListRanking", ctx).Return([]*models.RankingEntry{
		{UserID: uuid.New(), Username: "ana", PontosTotais: 200},
		{UserID: alvo, Username: "bia", PontosTotais: 150},
		{UserID: uuid.New(), Username: "cris", PontosTotais: 150},
		{UserID: uuid.New(), Username: "duda", PontosTotais: 90},
	}, nil)

	posicao, total, err := service.GetPosicao(ctx, alvo)

	assert.NoError(t, err)
	assert.Equal(t, 2, posicao)
	assert.Equal(t, 4, total)
}

func TestRankingService_GetPosicao_UsuarioForaDoRanking(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockProfileRepo := newRankingMocks()

	service := NewRankingService(mockFactory, nil)

	mockProfileRepo.On("ListRanking", ctx).Return([]*models.RankingEntry{}, nil)

	_, _, err := service.GetPosicao(ctx, uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
}
