package service

import (
	"context"

	"bolao/events"
	"bolao/models"

	"github.com/google/uuid"
)

// ParticipanteRepository defines the interface for contestant data access
type ParticipanteRepository interface {
	// Create creates a new participant
	Create(ctx context.Context, participante *models.Participante) error

	// GetByID retrieves a participant by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Participante, error)

	// GetAll returns all participants ordered by name
	GetAll(ctx context.Context) ([]*models.Participante, error)

	// SetAtivo flips the active flag (elimination keeps the record)
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error

	// AssignRole clears the role's current holder and sets the new one
	// in a single statement, so there is never a moment with zero or
	// two holders.
	AssignRole(ctx context.Context, role models.RoleFlag, id uuid.UUID) error

	// ClearRole removes the role from its current holder, if any
	ClearRole(ctx context.Context, role models.RoleFlag) error
}

// ProvaRepository defines the interface for prova data access
type ProvaRepository interface {
	// Create creates a new prova
	Create(ctx context.Context, prova *models.Prova) error

	// GetByID retrieves a prova by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Prova, error)

	// Update persists the prova's mutable fields
	Update(ctx context.Context, prova *models.Prova) error

	// Delete removes a prova together with its apostas and ledger rows
	Delete(ctx context.Context, id uuid.UUID) error

	// ListVisible returns non-archived provas, newest first
	ListVisible(ctx context.Context) ([]*models.Prova, error)

	// GetEmparedados returns the nominated participant ids for a prova
	GetEmparedados(ctx context.Context, provaID uuid.UUID) ([]uuid.UUID, error)

	// SetEmparedados replaces the nominated participant set for a prova
	SetEmparedados(ctx context.Context, provaID uuid.UUID, participanteIDs []uuid.UUID) error
}

// ApostaRepository defines the interface for wager data access
type ApostaRepository interface {
	// Create creates a new aposta
	Create(ctx context.Context, aposta *models.Aposta) error

	// Delete removes an aposta by id
	Delete(ctx context.Context, id int64) error

	// UpdateEscolha changes the chosen participant of an existing aposta
	UpdateEscolha(ctx context.Context, id int64, participanteID uuid.UUID) error

	// UpdateResposta changes the binary answer of an existing aposta
	UpdateResposta(ctx context.Context, id int64, resposta string) error

	// UpdatePontos sets the awarded points of an aposta
	UpdatePontos(ctx context.Context, id int64, pontos int) error

	// ZeroPontosByProva resets awarded points for every aposta on a prova
	ZeroPontosByProva(ctx context.Context, provaID uuid.UUID) error

	// GetByUserAndProva returns a user's apostas on one prova
	GetByUserAndProva(ctx context.Context, userID, provaID uuid.UUID) ([]*models.Aposta, error)

	// ListByProva returns all apostas on a prova
	ListByProva(ctx context.Context, provaID uuid.UUID) ([]*models.Aposta, error)

	// ListByUser returns all apostas of a user, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Aposta, error)

	// ListResultadosCronologicos returns, for each closed prova the user
	// wagered on in resolution-time order, whether any of the user's
	// apostas on it earned points. This feeds the streak replay.
	ListResultadosCronologicos(ctx context.Context, userID uuid.UUID) ([]bool, error)
}

// LedgerRepository defines the interface for the XP/points ledger.
// The ledger is append-only and keyed uniquely by (user, prova), which
// makes a resolve/reopen/resolve cycle idempotent.
type LedgerRepository interface {
	// Append inserts a ledger entry; a duplicate (user, prova) key
	// yields ErrConflict.
	Append(ctx context.Context, entry *models.LedgerEntry) error

	// DeleteByProva removes the prova's entries and returns the ids of
	// the users whose totals must be recomputed.
	DeleteByProva(ctx context.Context, provaID uuid.UUID) ([]uuid.UUID, error)

	// SumByUser aggregates a user's deltas
	SumByUser(ctx context.Context, userID uuid.UUID) (*models.LedgerTotals, error)
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// GetByID retrieves a profile by user id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// GetByIDForUpdate retrieves a profile holding a row lock for the
	// rest of the transaction, serializing recomputations of one user.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// Create creates a new profile
	Create(ctx context.Context, profile *models.Profile) error

	// UpdateTotals overwrites the denormalized score columns
	UpdateTotals(ctx context.Context, id uuid.UUID, pontos, xp, nivel int) error

	// ListRanking returns the ranking projection for every profile,
	// including wager aggregates, unordered.
	ListRanking(ctx context.Context) ([]*models.RankingEntry, error)
}

// StreakRepository defines the interface for streak counter access
type StreakRepository interface {
	// Get returns the user's streak counters (zero values if absent)
	Get(ctx context.Context, userID uuid.UUID) (*models.Streak, error)

	// Upsert writes the user's streak counters
	Upsert(ctx context.Context, streak *models.Streak) error
}

// ProfileService defines the interface for profile operations
type ProfileService interface {
	// GetOrCreateProfile retrieves an existing profile or creates one
	// for a user seen for the first time.
	GetOrCreateProfile(ctx context.Context, id uuid.UUID, username string) (*models.Profile, error)

	// GetProfile retrieves a profile by user id
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// GetStreak returns the user's (current, best) streak counters
	GetStreak(ctx context.Context, userID uuid.UUID) (*models.Streak, error)
}

// ParticipanteService defines the interface for roster administration
type ParticipanteService interface {
	// CreateParticipante adds a contestant to the roster
	CreateParticipante(ctx context.Context, nome string, fotoURL *string) (*models.Participante, error)

	// ListParticipantes returns the full roster
	ListParticipantes(ctx context.Context) ([]*models.Participante, error)

	// SetAtivo marks a contestant eliminated (or reinstated)
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error

	// AssignRole moves a weekly role (lider/anjo/imune) to a contestant
	AssignRole(ctx context.Context, role models.RoleFlag, id uuid.UUID) error

	// ElegiveisParaProva returns the participants a user may pick on a
	// prova: nominees for paredao/bate_volta, everyone except the
	// current leader and angel for palpite_paredao, active contestants
	// otherwise.
	ElegiveisParaProva(ctx context.Context, provaID uuid.UUID) ([]*models.Participante, error)
}

// ProvaCreateParams carries the fields for creating a prova
type ProvaCreateParams struct {
	Tipo              models.TipoProva
	TituloCustomizado *string
	Descricao         *string
	DataProva         string // RFC 3339
	MaxEscolhas       int

	// Binary prova fields
	IsApostaBinaria bool
	Pergunta        *string
	PontosBase      *int
	OddsSim         *float64
	OddsNao         *float64
}

// ProvaService defines the interface for prova lifecycle operations
type ProvaService interface {
	// CreateProva creates a prova and emits ProvaCreated
	CreateProva(ctx context.Context, params ProvaCreateParams) (*models.Prova, error)

	// GetProva retrieves a prova by id
	GetProva(ctx context.Context, id uuid.UUID) (*models.Prova, error)

	// ListProvas returns non-archived provas, newest first
	ListProvas(ctx context.Context) ([]*models.Prova, error)

	// SetVotacaoAberta freezes or unfreezes voting without resolving
	SetVotacaoAberta(ctx context.Context, id uuid.UUID, aberta bool) error

	// Arquivar soft-hides a prova
	Arquivar(ctx context.Context, id uuid.UUID) error

	// DeleteProva hard-deletes a prova and its apostas
	DeleteProva(ctx context.Context, id uuid.UUID) error

	// SetEmparedados replaces the eviction-nominee set of a prova
	SetEmparedados(ctx context.Context, provaID uuid.UUID, participanteIDs []uuid.UUID) error
}

// ApostaService defines the interface for placing and toggling wagers
type ApostaService interface {
	// FazerAposta places a participant pick. Single-choice provas
	// replace any existing pick; multi-choice provas toggle, and a new
	// pick at the cap returns ErrChoiceLimitExceeded.
	FazerAposta(ctx context.Context, userID, provaID, participanteID uuid.UUID) ([]*models.Aposta, error)

	// FazerApostaBinaria places or replaces a sim/nao answer
	FazerApostaBinaria(ctx context.Context, userID, provaID uuid.UUID, resposta string) (*models.Aposta, error)

	// GetApostasUser returns the user's apostas on one prova
	GetApostasUser(ctx context.Context, userID, provaID uuid.UUID) ([]*models.Aposta, error)
}

// Outcome declares the correct result of a prova: a winning
// participant, or the literal binary answer. Exactly one field is set.
type Outcome struct {
	VencedorID *uuid.UUID
	Resposta   *string
}

// ResolucaoService defines the interface for resolving and reopening provas
type ResolucaoService interface {
	// Resolver closes a prova with its outcome and awards points, XP,
	// streak and level updates to every aposta on it, atomically.
	// pontosParticipante is the flat award for participant provas; 0
	// selects the default. Ignored for binary provas.
	Resolver(ctx context.Context, provaID uuid.UUID, outcome Outcome, pontosParticipante int) error

	// Reabrir reopens a resolved prova, clearing its outcome and
	// reversing every point, XP, streak and level effect it had.
	Reabrir(ctx context.Context, provaID uuid.UUID) error
}

// RankingService defines the interface for the ranking read model
type RankingService interface {
	// GetRanking returns the full ordered ranking with tie-shared positions
	GetRanking(ctx context.Context) ([]*models.RankingEntry, error)

	// GetPosicao returns one user's position and the participant count
	GetPosicao(ctx context.Context, userID uuid.UUID) (posicao int, total int, err error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	ParticipanteRepository() ParticipanteRepository
	ProvaRepository() ProvaRepository
	ApostaRepository() ApostaRepository
	LedgerRepository() LedgerRepository
	ProfileRepository() ProfileRepository
	StreakRepository() StreakRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
