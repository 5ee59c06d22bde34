package service_test

import (
	"context"
	"sync"
	"testing"

	"bolao/events"
	"bolao/models"
	"bolao/repository"
	"bolao/repository/testutil"
	"bolao/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two provas for the same user resolve at the same time. The profile
// row lock taken during the recompute serializes them, so the final
// totals equal the full ledger in either commit order.
func TestResolucaoConcorrente_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(testDB.DB, eventBus)
	resolucaoService := service.NewResolucaoService(uowFactory)

	profileRepo := repository.NewProfileRepository(testDB.DB)
	participanteRepo := repository.NewParticipanteRepository(testDB.DB)
	provaRepo := repository.NewProvaRepository(testDB.DB)
	apostaRepo := repository.NewApostaRepository(testDB.DB)
	streakRepo := repository.NewStreakRepository(testDB.DB)

	profile := testutil.CreateTestProfile("gabi")
	require.NoError(t, profileRepo.Create(ctx, profile))

	vencedor := testutil.CreateTestParticipante("Helena")
	require.NoError(t, participanteRepo.Create(ctx, vencedor))

	p1 := testutil.CreateTestProva(models.TipoLider)
	p2 := testutil.CreateTestProva(models.TipoAnjo)
	require.NoError(t, provaRepo.Create(ctx, p1))
	require.NoError(t, provaRepo.Create(ctx, p2))

	require.NoError(t, apostaRepo.Create(ctx, testutil.CreateTestAposta(profile.ID, p1.ID, vencedor.ID)))
	require.NoError(t, apostaRepo.Create(ctx, testutil.CreateTestAposta(profile.ID, p2.ID, vencedor.ID)))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, provaID := range []uuid.UUID{p1.ID, p2.ID} {
		wg.Add(1)
		go func(i int, provaID uuid.UUID) {
			defer wg.Done()
			errs[i] = resolucaoService.Resolver(ctx, provaID, service.Outcome{VencedorID: &vencedor.ID}, 0)
		}(i, provaID)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	atualizado, err := profileRepo.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 2*models.PontosParticipantePadrao, atualizado.PontosTotais)
	assert.Equal(t, 2*models.XPPorAcerto, atualizado.XP)
	assert.Equal(t, 2, atualizado.Nivel)

	streak, err := streakRepo.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.StreakAtual)
	assert.Equal(t, 2, streak.MaiorStreak)
}
