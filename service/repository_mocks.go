package service

import (
	"context"

	"bolao/events"
	"bolao/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockParticipanteRepository is a mock implementation of ParticipanteRepository
type MockParticipanteRepository struct {
	mock.Mock
}

func (m *MockParticipanteRepository) Create(ctx context.Context, participante *models.Participante) error {
	args := m.Called(ctx, participante)
	return args.Error(0)
}

func (m *MockParticipanteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Participante, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participante), args.Error(1)
}

func (m *MockParticipanteRepository) GetAll(ctx context.Context) ([]*models.Participante, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participante), args.Error(1)
}

func (m *MockParticipanteRepository) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	args := m.Called(ctx, id, ativo)
	return args.Error(0)
}

func (m *MockParticipanteRepository) AssignRole(ctx context.Context, role models.RoleFlag, id uuid.UUID) error {
	args := m.Called(ctx, role, id)
	return args.Error(0)
}

func (m *MockParticipanteRepository) ClearRole(ctx context.Context, role models.RoleFlag) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

// MockProvaRepository is a mock implementation of ProvaRepository
type MockProvaRepository struct {
	mock.Mock
}

func (m *MockProvaRepository) Create(ctx context.Context, prova *models.Prova) error {
	args := m.Called(ctx, prova)
	return args.Error(0)
}

func (m *MockProvaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Prova, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prova), args.Error(1)
}

func (m *MockProvaRepository) Update(ctx context.Context, prova *models.Prova) error {
	args := m.Called(ctx, prova)
	return args.Error(0)
}

func (m *MockProvaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProvaRepository) ListVisible(ctx context.Context) ([]*models.Prova, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prova), args.Error(1)
}

func (m *MockProvaRepository) GetEmparedados(ctx context.Context, provaID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, provaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockProvaRepository) SetEmparedados(ctx context.Context, provaID uuid.UUID, participanteIDs []uuid.UUID) error {
	args := m.Called(ctx, provaID, participanteIDs)
	return args.Error(0)
}

// MockApostaRepository is a mock implementation of ApostaRepository
type MockApostaRepository struct {
	mock.Mock
}

func (m *MockApostaRepository) Create(ctx context.Context, aposta *models.Aposta) error {
	args := m.Called(ctx, aposta)
	return args.Error(0)
}

func (m *MockApostaRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApostaRepository) UpdateEscolha(ctx context.Context, id int64, participanteID uuid.UUID) error {
	args := m.Called(ctx, id, participanteID)
	return args.Error(0)
}

func (m *MockApostaRepository) UpdateResposta(ctx context.Context, id int64, resposta string) error {
	args := m.Called(ctx, id, resposta)
	return args.Error(0)
}

func (m *MockApostaRepository) UpdatePontos(ctx context.Context, id int64, pontos int) error {
	args := m.Called(ctx, id, pontos)
	return args.Error(0)
}

func (m *MockApostaRepository) ZeroPontosByProva(ctx context.Context, provaID uuid.UUID) error {
	args := m.Called(ctx, provaID)
	return args.Error(0)
}

func (m *MockApostaRepository) GetByUserAndProva(ctx context.Context, userID, provaID uuid.UUID) ([]*models.Aposta, error) {
	args := m.Called(ctx, userID, provaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Aposta), args.Error(1)
}

func (m *MockApostaRepository) ListByProva(ctx context.Context, provaID uuid.UUID) ([]*models.Aposta, error) {
	args := m.Called(ctx, provaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Aposta), args.Error(1)
}

func (m *MockApostaRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Aposta, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Aposta), args.Error(1)
}

func (m *MockApostaRepository) ListResultadosCronologicos(ctx context.Context, userID uuid.UUID) ([]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bool), args.Error(1)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteByProva(ctx context.Context, provaID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, provaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockLedgerRepository) SumByUser(ctx context.Context, userID uuid.UUID) (*models.LedgerTotals, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerTotals), args.Error(1)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateTotals(ctx context.Context, id uuid.UUID, pontos, xp, nivel int) error {
	args := m.Called(ctx, id, pontos, xp, nivel)
	return args.Error(0)
}

func (m *MockProfileRepository) ListRanking(ctx context.Context) ([]*models.RankingEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RankingEntry), args.Error(1)
}

// MockStreakRepository is a mock implementation of StreakRepository
type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) Get(ctx context.Context, userID uuid.UUID) (*models.Streak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Streak), args.Error(1)
}

func (m *MockStreakRepository) Upsert(ctx context.Context, streak *models.Streak) error {
	args := m.Called(ctx, streak)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories
// are plain fields so tests can wire only what the case touches.
type MockUnitOfWork struct {
	mock.Mock

	participanteRepo ParticipanteRepository
	provaRepo        ProvaRepository
	apostaRepo       ApostaRepository
	ledgerRepo       LedgerRepository
	profileRepo      ProfileRepository
	streakRepo       StreakRepository
	eventBus         EventPublisher
}

// SetRepositories wires the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(
	participanteRepo ParticipanteRepository,
	provaRepo ProvaRepository,
	apostaRepo ApostaRepository,
	ledgerRepo LedgerRepository,
	profileRepo ProfileRepository,
	streakRepo StreakRepository,
	eventBus EventPublisher,
) {
	m.participanteRepo = participanteRepo
	m.provaRepo = provaRepo
	m.apostaRepo = apostaRepo
	m.ledgerRepo = ledgerRepo
	m.profileRepo = profileRepo
	m.streakRepo = streakRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) ParticipanteRepository() ParticipanteRepository {
	return m.participanteRepo
}

func (m *MockUnitOfWork) ProvaRepository() ProvaRepository {
	return m.provaRepo
}

func (m *MockUnitOfWork) ApostaRepository() ApostaRepository {
	return m.apostaRepo
}

func (m *MockUnitOfWork) LedgerRepository() LedgerRepository {
	return m.ledgerRepo
}

func (m *MockUnitOfWork) ProfileRepository() ProfileRepository {
	return m.profileRepo
}

func (m *MockUnitOfWork) StreakRepository() StreakRepository {
	return m.streakRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
