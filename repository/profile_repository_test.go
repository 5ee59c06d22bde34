package repository

import (
	"context"
	"testing"
	"time"

	"bolao/models"
	"bolao/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_GetByIDForUpdate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	profileRepo := NewProfileRepository(testDB.DB)

	profile := testutil.CreateTestProfile("carla")
	require.NoError(t, profileRepo.Create(ctx, profile))

	tx, err := testDB.DB.Pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	txRepo := newProfileRepositoryWithTx(tx)

	locked, err := txRepo.GetByIDForUpdate(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, locked)
	assert.Equal(t, "carla", locked.Username)

	missing, err := txRepo.GetByIDForUpdate(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProfileRepository_ListRanking_Aggregates(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	profileRepo := NewProfileRepository(testDB.DB)
	provaRepo := NewProvaRepository(testDB.DB)
	participanteRepo := NewParticipanteRepository(testDB.DB)
	apostaRepo := NewApostaRepository(testDB.DB)

	ana := testutil.CreateTestProfile("ana")
	bia := testutil.CreateTestProfile("bia")
	require.NoError(t, profileRepo.Create(ctx, ana))
	require.NoError(t, profileRepo.Create(ctx, bia))

	participante := testutil.CreateTestParticipante("Caio")
	require.NoError(t, participanteRepo.Create(ctx, participante))

	resolved := testutil.CreateTestProva(models.TipoLider)
	open := testutil.CreateTestProva(models.TipoAnjo)
	require.NoError(t, provaRepo.Create(ctx, resolved))
	require.NoError(t, provaRepo.Create(ctx, open))

	// ana hit on the resolved prova and also wagered on the open one
	hit := testutil.CreateTestAposta(ana.ID, resolved.ID, participante.ID)
	require.NoError(t, apostaRepo.Create(ctx, hit))
	require.NoError(t, apostaRepo.UpdatePontos(ctx, hit.ID, 100))
	require.NoError(t, apostaRepo.Create(ctx, testutil.CreateTestAposta(ana.ID, open.ID, participante.ID)))

	// bia missed on the resolved prova
	require.NoError(t, apostaRepo.Create(ctx, testutil.CreateTestAposta(bia.ID, resolved.ID, participante.ID)))

	now := time.Now().UTC()
	resolved.Fechada = true
	resolved.VotacaoAberta = false
	resolved.ResolvedAt = &now
	require.NoError(t, provaRepo.Update(ctx, resolved))

	require.NoError(t, profileRepo.UpdateTotals(ctx, ana.ID, 100, 50, 1))

	entries, err := profileRepo.ListRanking(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byUser := map[string]*models.RankingEntry{}
	for _, e := range entries {
		byUser[e.Username] = e
	}

	// Pending apostas do not count toward the aggregates
	assert.Equal(t, 1, byUser["ana"].TotalApostas)
	assert.Equal(t, 1, byUser["ana"].Acertos)
	assert.Equal(t, 100, byUser["ana"].PontosTotais)

	assert.Equal(t, 1, byUser["bia"].TotalApostas)
	assert.Equal(t, 0, byUser["bia"].Acertos)
}
