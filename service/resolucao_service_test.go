package service

import (
	"context"
	"testing"

	"bolao/events"
	"bolao/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newResolucaoMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockParticipanteRepository, *MockProvaRepository, *MockApostaRepository, *MockLedgerRepository, *MockProfileRepository, *MockStreakRepository, *MockEventPublisher) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockParticipanteRepo := new(MockParticipanteRepository)
	mockProvaRepo := new(MockProvaRepository)
	mockApostaRepo := new(MockApostaRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockProfileRepo := new(MockProfileRepository)
	mockStreakRepo := new(MockStreakRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockParticipanteRepo, mockProvaRepo, mockApostaRepo, mockLedgerRepo, mockProfileRepo, mockStreakRepo, mockEventBus)
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	return mockFactory, mockUoW, mockParticipanteRepo, mockProvaRepo, mockApostaRepo, mockLedgerRepo, mockProfileRepo, mockStreakRepo, mockEventBus
}

func TestResolucaoService_Resolver_BinaryPayouts(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockProvaRepo, mockApostaRepo, mockLedgerRepo, mockProfileRepo, mockStreakRepo, mockEventBus := newResolucaoMocks()
	mockUoW.On("Commit").Return(nil)

	service := NewResolucaoService(mockFactory)

	provaID := uuid.New()
	base := 100
	oddsSim := 1.5
	oddsNao := 3.0
	pergunta := "Alguém atende o big fone?"
	prova := &models.Prova{
		ID:              provaID,
		Tipo:            models.TipoCustomizado,
		IsApostaBinaria: true,
		Pergunta:        &pergunta,
		PontosBase:      &base,
		OddsSim:         &oddsSim,
		OddsNao:         &oddsNao,
		VotacaoAberta:   true,
		MaxEscolhas:     1,
	}

	sim := models.RespostaSim
	nao := models.RespostaNao
	userSim := uuid.New()
	userNao := uuid.New()
	apostas := []*models.Aposta{
		{ID: 1, UserID: userSim, ProvaID: provaID, RespostaBinaria: &sim},
		{ID: 2, UserID: userNao, ProvaID: provaID, RespostaBinaria: &nao},
	}

	mockProvaRepo.On("GetByID", ctx, provaID).Return(prova, nil)
	mockApostaRepo.On("ListByProva", ctx, provaID).Return(apostas, nil)

	// round(100 * 1.5) = 150 for the correct answer
	mockApostaRepo.On("UpdatePontos", ctx, int64(1), 150).Return(nil)

	mockProvaRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Prova) bool {
		return p.Fechada && !p.VotacaoAberta &&
			p.RespostaCorreta != nil && *p.RespostaCorreta == models.RespostaSim &&
			p.ResolvedAt != nil
	})).Return(nil)

	// The winner earns a real ledger entry; the loser gets a zero
	// entry so a reopen reverses exactly the affected users.
	mockLedgerRepo.On("Append", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == userSim && e.ProvaID == provaID && e.PontosDelta == 150 && e.XPDelta == models.XPPorAcerto
	})).Return(nil)
	mockLedgerRepo.On("Append", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == userNao && e.ProvaID == provaID && e.PontosDelta == 0 && e.XPDelta == 0
	})).Return(nil)

	mockProfileRepo.On("GetByIDForUpdate", ctx, userSim).Return(&models.Profile{ID: userSim, Nivel: 1}, nil)
	mockProfileRepo.On("GetByIDForUpdate", ctx, userNao).Return(&models.Profile{ID: userNao, Nivel: 1}, nil)
	mockLedgerRepo.On("SumByUser", ctx, userSim).Return(&models.LedgerTotals{XP: 50, Pontos: 150}, nil)
	mockLedgerRepo.On("SumByUser", ctx, userNao).Return(&models.LedgerTotals{}, nil)
	mockProfileRepo.On("UpdateTotals", ctx, userSim, 150, 50, 1).Return(nil)
	mockProfileRepo.On("UpdateTotals", ctx, userNao, 0, 0, 1).Return(nil)

	mockApostaRepo.On("ListResultadosCronologicos", ctx, userSim).Return([]bool{true}, nil)
	mockApostaRepo.On("ListResultadosCronologicos", ctx, userNao).Return([]bool{false}, nil)
	mockStreakRepo.On("Upsert", ctx, mock.MatchedBy(func(s *models.Streak) bool {
		return s.UserID == userSim && s.StreakAtual == 1 && s.MaiorStreak == 1
	})).Return(nil)
	mockStreakRepo.On("Upsert", ctx, mock.MatchedBy(func(s *models.Streak) bool {
		return s.UserID == userNao && s.StreakAtual == 0
	})).Return(nil)

	mockEventBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		pa, ok := e.(events.PointsAwardedEvent)
		return ok && pa.UserID == userSim && pa.Pontos == 150 && pa.XP == 50
	})).Return()
	mockEventBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		pr, ok := e.(events.ProvaResolvedEvent)
		return ok && pr.ProvaID == provaID && pr.TotalApostas == 2 && pr.TotalAcertos == 1
	})).Return()

	resposta := models.RespostaSim
	err := service.Resolver(ctx, provaID, Outcome{Resposta: &resposta}, 0)

	assert.NoError(t, err)
	mockProvaRepo.AssertExpectations(t)
	mockApostaRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
	mockProfileRepo.AssertExpectations(t)
	mockStreakRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestResolucaoService_Resolver_ParticipantDefaultAward(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockParticipanteRepo, mockProvaRepo, mockApostaRepo, mockLedgerRepo, mockProfileRepo, mockStreakRepo, mockEventBus := newResolucaoMocks()
	mockUoW.On("Commit").Return(nil)

	service := NewResolucaoService(mockFactory)

	provaID := uuid.New()
	vencedorID := uuid.New()
	userID := uuid.New()
	prova := &models.Prova{
		ID:            provaID,
		Tipo:          models.TipoLider,
		VotacaoAberta: true,
		MaxEscolhas:   1,
	}

	mockProvaRepo.On("GetByID", ctx, provaID).Return(prova, nil)
	mockParticipanteRepo.On("GetByID", ctx, vencedorID).Return(&models.Participante{ID: vencedorID, Nome: "Alice", Ativo: true}, nil)

	apostas := []*models.Aposta{
		{ID: 7, UserID: userID, ProvaID: provaID, ParticipanteID: &vencedorID},
	}
	mockApostaRepo.On("ListByProva", ctx, provaID).Return(apostas, nil)
	mockApostaRepo.On("UpdatePontos", ctx, int64(7), models.PontosParticipantePadrao).Return(nil)
	mockProvaRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Prova) bool {
		return p.Fechada && p.VencedorID != nil && *p.VencedorID == vencedorID
	})).Return(nil)

	mockLedgerRepo.On("Append", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == userID && e.PontosDelta == 100 && e.XPDelta == 50
	})).Return(nil)

	// 100 cumulative XP crosses the level 2 threshold
	mockProfileRepo.On("GetByIDForUpdate", ctx, userID).Return(&models.Profile{ID: userID, Nivel: 1, XP: 50}, nil)
	mockLedgerRepo.On("SumByUser", ctx, userID).Return(&models.LedgerTotals{XP: 100, Pontos: 250}, nil)
	mockProfileRepo.On("UpdateTotals", ctx, userID, 250, 100, 2).Return(nil)

	// Third correct in a row triggers the milestone
	mockApostaRepo.On("ListResultadosCronologicos", ctx, userID).Return([]bool{true, true, true}, nil)
	mockStreakRepo.On("Upsert", ctx, mock.MatchedBy(func(s *models.Streak) bool {
		return s.StreakAtual == 3 && s.MaiorStreak == 3
	})).Return(nil)

	mockEventBus.On("Publish", mock.AnythingOfType("events.PointsAwardedEvent")).Return()
	mockEventBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		nu, ok := e.(events.NivelUpEvent)
		return ok && nu.NivelAntes == 1 && nu.NivelNovo == 2
	})).Return()
	mockEventBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		sm, ok := e.(events.StreakMilestoneEvent)
		return ok && sm.UserID == userID && sm.StreakAtual == 3
	})).Return()
	mockEventBus.On("Publish", mock.AnythingOfType("events.ProvaResolvedEvent")).Return()

	err := service.Resolver(ctx, provaID, Outcome{VencedorID: &vencedorID}, 0)

	assert.NoError(t, err)
	mockEventBus.AssertExpectations(t)
	mockProfileRepo.AssertExpectations(t)
	mockStreakRepo.AssertExpectations(t)
}

func TestResolucaoService_Resolver_VencedorForaDoParedao(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockParticipanteRepo, mockProvaRepo, mockApostaRepo, _, _, _, _ := newResolucaoMocks()

	service := NewResolucaoService(mockFactory)

	provaID := uuid.New()
	vencedorID := uuid.New()
	mockProvaRepo.On("GetByID", ctx, provaID).Return(&models.Prova{
		ID:            provaID,
		Tipo:          models.TipoParedao,
		VotacaoAberta: true,
		MaxEscolhas:   1,
	}, nil)
	// An eliminated contestant who was never nominated cannot leave
	// the paredao, so declaring them the winner is rejected.
	mockParticipanteRepo.On("GetByID", ctx, vencedorID).Return(&models.Participante{ID: vencedorID, Nome: "Iara", Ativo: false}, nil)
	mockProvaRepo.On("GetEmparedados", ctx, provaID).Return([]uuid.UUID{}, nil)

	err := service.Resolver(ctx, provaID, Outcome{VencedorID: &vencedorID}, 0)

	assert.ErrorIs(t, err, ErrInvalidOutcome)
	mockApostaRepo.AssertNotCalled(t, "ListByProva", mock.Anything, mock.Anything)
}

func TestResolucaoService_Resolver_VencedorEliminado(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockParticipanteRepo, mockProvaRepo, mockApostaRepo, _, _, _, _ := newResolucaoMocks()

	service := NewResolucaoService(mockFactory)

	provaID := uuid.New()
	vencedorID := uuid.New()
	mockProvaRepo.On("GetByID", ctx, provaID).Return(&models.Prova{
		ID:            provaID,
		Tipo:          models.TipoLider,
		VotacaoAberta: true,
		MaxEscolhas:   1,
	}, nil)
	mockParticipanteRepo.On("GetByID", ctx, vencedorID).Return(&models.Participante{ID: vencedorID, Nome: "Juliana", Ativo: false}, nil)

	err := service.Resolver(ctx, provaID, Outcome{VencedorID: &vencedorID}, 0)

	assert.ErrorIs(t, err, ErrInvalidOutcome)
	mockApostaRepo.AssertNotCalled(t, "ListByProva", mock.Anything, mock.Anything)
}

func TestResolucaoService_Resolver_AlreadyClosed(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, mockProvaRepo, _, _, _, _, _ := newResolucaoMocks()

	service := NewResolucaoService(mockFactory)

	provaID := uuid.New()
	mockProvaRepo.On("GetByID", ctx, provaID).Return(&models.Prova{ID: provaID, Fechada: true}, nil)

	vencedor := uuid.New()
	err := service.Resolver(ctx, provaID, Outcome{VencedorID: &vencedor}, 0)

	assert.ErrorIs(t, err, ErrAlreadyClosed)
}

func TestResolucaoService_Resolver_OutcomeKindMismatch(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, mockProvaRepo, _, _, _, _, _ := newResolucaoMocks()

	service := NewResolucaoService(mockFactory)

	provaID := uuid.New()
	base := 100
	odds := 2.0
	mockProvaRepo.On("GetByID", ctx, provaID).Return(&models.Prova{
		ID:              provaID,
		IsApostaBinaria: true,
		PontosBase:      &base,
		OddsSim:         &odds,
		OddsNao:         &odds,
		VotacaoAberta:   true,
	}, nil)

	// A binary prova cannot be resolved with a winner id
	vencedor := uuid.New()
	err := service.Resolver(ctx, provaID, Outcome{VencedorID: &vencedor}, 0)

	assert.ErrorIs(t, err, ErrInvalidOutcome)
}

func TestResolucaoService_Reabrir_ReversesAwards(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockProvaRepo, mockApostaRepo, mockLedgerRepo, mockProfileRepo, mockStreakRepo, mockEventBus := newResolucaoMocks()
	mockUoW.On("Commit").Return(nil)

	service := NewResolucaoService(mockFactory)

	provaID := uuid.New()
	userID := uuid.New()
	vencedorID := uuid.New()
	prova := &models.Prova{
		ID:         provaID,
		Tipo:       models.TipoAnjo,
		Fechada:    true,
		VencedorID: &vencedorID,
	}

	mockProvaRepo.On("GetByID", ctx, provaID).Return(prova, nil)
	mockLedgerRepo.On("DeleteByProva", ctx, provaID).Return([]uuid.UUID{userID}, nil)
	mockApostaRepo.On("ZeroPontosByProva", ctx, provaID).Return(nil)
	mockProvaRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Prova) bool {
		return !p.Fechada && p.VotacaoAberta && p.VencedorID == nil && p.ResolvedAt == nil
	})).Return(nil)

	// Totals fall back to whatever the remaining ledger says
	mockProfileRepo.On("GetByIDForUpdate", ctx, userID).Return(&models.Profile{ID: userID, Nivel: 2, XP: 100, PontosTotais: 250}, nil)
	mockLedgerRepo.On("SumByUser", ctx, userID).Return(&models.LedgerTotals{XP: 50, Pontos: 150}, nil)
	mockProfileRepo.On("UpdateTotals", ctx, userID, 150, 50, 1).Return(nil)

	mockApostaRepo.On("ListResultadosCronologicos", ctx, userID).Return([]bool{true}, nil)
	mockStreakRepo.On("Upsert", ctx, mock.MatchedBy(func(s *models.Streak) bool {
		return s.StreakAtual == 1 && s.MaiorStreak == 1
	})).Return(nil)

	mockEventBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		pr, ok := e.(events.ProvaReopenedEvent)
		return ok && pr.ProvaID == provaID
	})).Return()

	err := service.Reabrir(ctx, provaID)

	assert.NoError(t, err)
	mockProvaRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
	mockProfileRepo.AssertExpectations(t)
	mockStreakRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestResolucaoService_Reabrir_NotClosed(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, mockProvaRepo, _, _, _, _, _ := newResolucaoMocks()

	service := NewResolucaoService(mockFactory)

	provaID := uuid.New()
	mockProvaRepo.On("GetByID", ctx, provaID).Return(&models.Prova{ID: provaID, VotacaoAberta: true}, nil)

	err := service.Reabrir(ctx, provaID)

	assert.ErrorIs(t, err, ErrNotClosed)
}
