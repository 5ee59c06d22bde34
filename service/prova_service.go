package service

import (
	"context"
	"fmt"
	"time"

	"bolao/events"
	"bolao/models"

	"github.com/google/uuid"
)

type provaService struct {
	uowFactory UnitOfWorkFactory
}

// NewProvaService creates a new prova lifecycle service
func NewProvaService(uowFactory UnitOfWorkFactory) ProvaService {
	return &provaService{
		uowFactory: uowFactory,
	}
}

func (s *provaService) CreateProva(ctx context.Context, params ProvaCreateParams) (*models.Prova, error) {
	dataProva, err := time.Parse(time.RFC3339, params.DataProva)
	if err != nil {
		return nil, fmt.Errorf("invalid data_prova: %w", err)
	}

	maxEscolhas := params.MaxEscolhas
	if maxEscolhas == 0 {
		maxEscolhas = 1
	}
	if maxEscolhas < 1 || maxEscolhas > 3 {
		return nil, fmt.Errorf("max_escolhas must be between 1 and 3, got %d", maxEscolhas)
	}

	if params.Tipo == models.TipoCustomizado && !params.IsApostaBinaria && params.TituloCustomizado == nil {
		return nil, fmt.Errorf("customizado prova requires a title")
	}

	prova := &models.Prova{
		ID:                uuid.New(),
		Tipo:              params.Tipo,
		TituloCustomizado: params.TituloCustomizado,
		Descricao:         params.Descricao,
		DataProva:         dataProva,
		VotacaoAberta:     true,
		MaxEscolhas:       maxEscolhas,
	}

	if params.IsApostaBinaria {
		if params.Pergunta == nil || params.PontosBase == nil || params.OddsSim == nil || params.OddsNao == nil {
			return nil, fmt.Errorf("binary prova requires pergunta, pontos_base, odds_sim and odds_nao")
		}
		if *params.PontosBase < 0 {
			return nil, fmt.Errorf("pontos_base must not be negative, got %d", *params.PontosBase)
		}
		if *params.OddsSim < 0 || *params.OddsNao < 0 {
			return nil, fmt.Errorf("odds must not be negative")
		}
		prova.IsApostaBinaria = true
		prova.Pergunta = params.Pergunta
		prova.PontosBase = params.PontosBase
		prova.OddsSim = params.OddsSim
		prova.OddsNao = params.OddsNao
		// Binary provas take one answer per user
		prova.MaxEscolhas = 1
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.ProvaRepository().Create(ctx, prova); err != nil {
		return nil, fmt.Errorf("failed to create prova: %w", err)
	}

	uow.EventBus().Publish(events.ProvaCreatedEvent{
		ProvaID:         prova.ID,
		Tipo:            string(prova.Tipo),
		Titulo:          prova.Titulo(),
		IsApostaBinaria: prova.IsApostaBinaria,
		DataProva:       prova.DataProva,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return prova, nil
}

func (s *provaService) GetProva(ctx context.Context, id uuid.UUID) (*models.Prova, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prova, err := uow.ProvaRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prova: %w", err)
	}
	if prova == nil {
		return nil, fmt.Errorf("%w: prova %s", ErrNotFound, id)
	}
	return prova, nil
}

func (s *provaService) ListProvas(ctx context.Context) ([]*models.Prova, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	provas, err := uow.ProvaRepository().ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list provas: %w", err)
	}
	return provas, nil
}

func (s *provaService) SetVotacaoAberta(ctx context.Context, id uuid.UUID, aberta bool) error {
	return s.mutate(ctx, id, func(prova *models.Prova) error {
		// Voting can be frozen and unfrozen independently of
		// resolution, but a resolved prova stays frozen.
		if aberta && prova.Fechada {
			return fmt.Errorf("%w: reopen before unfreezing voting", ErrAlreadyClosed)
		}
		prova.VotacaoAberta = aberta
		return nil
	})
}

func (s *provaService) Arquivar(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, id, func(prova *models.Prova) error {
		prova.Arquivada = true
		return nil
	})
}

func (s *provaService) DeleteProva(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prova, err := uow.ProvaRepository().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get prova: %w", err)
	}
	if prova == nil {
		return fmt.Errorf("%w: prova %s", ErrNotFound, id)
	}
	if prova.Fechada {
		// A resolved prova holds ledger entries; it must be reopened
		// (reversing its awards) before it can be deleted.
		return fmt.Errorf("%w: reopen before deleting", ErrAlreadyClosed)
	}

	if err := uow.ProvaRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete prova: %w", err)
	}

	return uow.Commit()
}

func (s *provaService) SetEmparedados(ctx context.Context, provaID uuid.UUID, participanteIDs []uuid.UUID) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prova, err := uow.ProvaRepository().GetByID(ctx, provaID)
	if err != nil {
		return fmt.Errorf("failed to get prova: %w", err)
	}
	if prova == nil {
		return fmt.Errorf("%w: prova %s", ErrNotFound, provaID)
	}
	if prova.Tipo != models.TipoParedao && prova.Tipo != models.TipoBateVolta {
		return fmt.Errorf("prova %s does not take nominees", provaID)
	}

	for _, pid := range participanteIDs {
		participante, err := uow.ParticipanteRepository().GetByID(ctx, pid)
		if err != nil {
			return fmt.Errorf("failed to get participante: %w", err)
		}
		if participante == nil {
			return fmt.Errorf("%w: participante %s", ErrNotFound, pid)
		}
	}

	if err := uow.ProvaRepository().SetEmparedados(ctx, provaID, participanteIDs); err != nil {
		return fmt.Errorf("failed to set emparedados: %w", err)
	}

	return uow.Commit()
}

// mutate loads a prova, applies fn, and persists the result in one transaction.
func (s *provaService) mutate(ctx context.Context, id uuid.UUID, fn func(*models.Prova) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prova, err := uow.ProvaRepository().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get prova: %w", err)
	}
	if prova == nil {
		return fmt.Errorf("%w: prova %s", ErrNotFound, id)
	}

	if err := fn(prova); err != nil {
		return err
	}

	if err := uow.ProvaRepository().Update(ctx, prova); err != nil {
		return fmt.Errorf("failed to update prova: %w", err)
	}

	return uow.Commit()
}
