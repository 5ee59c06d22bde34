package server

import (
	"context"

	"bolao/models"
	"bolao/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) GetOrCreateProfile(ctx context.Context, id uuid.UUID, username string) (*models.Profile, error) {
	args := m.Called(ctx, id, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) GetStreak(ctx context.Context, userID uuid.UUID) (*models.Streak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Streak), args.Error(1)
}

type mockParticipanteService struct {
	mock.Mock
}

func (m *mockParticipanteService) CreateParticipante(ctx context.Context, nome string, fotoURL *string) (*models.Participante, error) {
	args := m.Called(ctx, nome, fotoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participante), args.Error(1)
}

func (m *mockParticipanteService) ListParticipantes(ctx context.Context) ([]*models.Participante, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participante), args.Error(1)
}

func (m *mockParticipanteService) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	args := m.Called(ctx, id, ativo)
	return args.Error(0)
}

func (m *mockParticipanteService) AssignRole(ctx context.Context, role models.RoleFlag, id uuid.UUID) error {
	args := m.Called(ctx, role, id)
	return args.Error(0)
}

func (m *mockParticipanteService) ElegiveisParaProva(ctx context.Context, provaID uuid.UUID) ([]*models.Participante, error) {
	args := m.Called(ctx, provaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participante), args.Error(1)
}

type mockProvaService struct {
	mock.Mock
}

func (m *mockProvaService) CreateProva(ctx context.Context, params service.ProvaCreateParams) (*models.Prova, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prova), args.Error(1)
}

func (m *mockProvaService) GetProva(ctx context.Context, id uuid.UUID) (*models.Prova, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prova), args.Error(1)
}

func (m *mockProvaService) ListProvas(ctx context.Context) ([]*models.Prova, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prova), args.Error(1)
}

func (m *mockProvaService) SetVotacaoAberta(ctx context.Context, id uuid.UUID, aberta bool) error {
	args := m.Called(ctx, id, aberta)
	return args.Error(0)
}

func (m *mockProvaService) Arquivar(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProvaService) DeleteProva(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProvaService) SetEmparedados(ctx context.Context, provaID uuid.UUID, participanteIDs []uuid.UUID) error {
	args := m.Called(ctx, provaID, participanteIDs)
	return args.Error(0)
}

type mockApostaService struct {
	mock.Mock
}

func (m *mockApostaService) FazerAposta(ctx context.Context, userID, provaID, participanteID uuid.UUID) ([]*models.Aposta, error) {
	args := m.Called(ctx, userID, provaID, participanteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Aposta), args.Error(1)
}

func (m *mockApostaService) FazerApostaBinaria(ctx context.Context, userID, provaID uuid.UUID, resposta string) (*models.Aposta, error) {
	args := m.Called(ctx, userID, provaID, resposta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aposta), args.Error(1)
}

func (m *mockApostaService) GetApostasUser(ctx context.Context, userID, provaID uuid.UUID) ([]*models.Aposta, error) {
	args := m.Called(ctx, userID, provaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Aposta), args.Error(1)
}

type mockResolucaoService struct {
	mock.Mock
}

func (m *mockResolucaoService) Resolver(ctx context.Context, provaID uuid.UUID, outcome service.Outcome, pontosParticipante int) error {
	args := m.Called(ctx, provaID, outcome, pontosParticipante)
	return args.Error(0)
}

func (m *mockResolucaoService) Reabrir(ctx context.Context, provaID uuid.UUID) error {
	args := m.Called(ctx, provaID)
	return args.Error(0)
}

type mockRankingService struct {
	mock.Mock
}

func (m *mockRankingService) GetRanking(ctx context.Context) ([]*models.RankingEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RankingEntry), args.Error(1)
}

func (m *mockRankingService) GetPosicao(ctx context.Context, userID uuid.UUID) (int, int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Error(2)
}
