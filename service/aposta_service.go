package service

import (
	"context"
	"fmt"

	"bolao/models"

	"github.com/google/uuid"
)

type apostaService struct {
	uowFactory UnitOfWorkFactory
}

// NewApostaService creates a new wager service
func NewApostaService(uowFactory UnitOfWorkFactory) ApostaService {
	return &apostaService{
		uowFactory: uowFactory,
	}
}

func (s *apostaService) FazerAposta(ctx context.Context, userID, provaID, participanteID uuid.UUID) ([]*models.Aposta, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prova, err := uow.ProvaRepository().GetByID(ctx, provaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prova: %w", err)
	}
	if prova == nil {
		return nil, fmt.Errorf("%w: prova %s", ErrNotFound, provaID)
	}
	if prova.IsApostaBinaria {
		return nil, fmt.Errorf("prova %s takes sim/nao answers, not participant picks", provaID)
	}
	if prova.Fechada {
		return nil, fmt.Errorf("%w: prova %s", ErrAlreadyClosed, provaID)
	}
	if !prova.AcceptsApostas() {
		return nil, fmt.Errorf("%w: prova %s", ErrVotingClosed, provaID)
	}

	participante, err := uow.ParticipanteRepository().GetByID(ctx, participanteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participante: %w", err)
	}
	if participante == nil {
		return nil, fmt.Errorf("%w: participante %s", ErrNotFound, participanteID)
	}

	// The pick must come from the prova's choice set: nominees for
	// paredao/bate_volta, active non-leader non-angel contestants for
	// palpite_paredao, active contestants otherwise.
	escolhivel, err := choiceFilter(ctx, uow, prova)
	if err != nil {
		return nil, err
	}
	if !escolhivel(participante) {
		return nil, fmt.Errorf("%w: participante %s is not a valid choice for prova %s", ErrInvalidOutcome, participanteID, provaID)
	}

	existentes, err := uow.ApostaRepository().GetByUserAndProva(ctx, userID, provaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing apostas: %w", err)
	}

	if prova.IsMultiEscolha() {
		// Toggle: picking an already picked participant removes that
		// pick; a new pick past the cap is rejected.
		for _, a := range existentes {
			if a.ParticipanteID != nil && *a.ParticipanteID == participanteID {
				if err := uow.ApostaRepository().Delete(ctx, a.ID); err != nil {
					return nil, fmt.Errorf("failed to remove aposta: %w", err)
				}
				if err := uow.Commit(); err != nil {
					return nil, fmt.Errorf("failed to commit transaction: %w", err)
				}
				return removeAposta(existentes, a.ID), nil
			}
		}
		if len(existentes) >= prova.MaxEscolhas {
			return nil, fmt.Errorf("%w: prova allows %d picks", ErrChoiceLimitExceeded, prova.MaxEscolhas)
		}
	} else if len(existentes) > 0 {
		// Single choice replaces in place. The old row is updated
		// rather than deleted and reinserted so the change is one
		// atomic write.
		atual := existentes[0]
		if atual.ParticipanteID != nil && *atual.ParticipanteID == participanteID {
			return existentes, nil
		}
		if err := uow.ApostaRepository().UpdateEscolha(ctx, atual.ID, participanteID); err != nil {
			return nil, fmt.Errorf("failed to update aposta: %w", err)
		}
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		atual.ParticipanteID = &participanteID
		return existentes, nil
	}

	aposta := &models.Aposta{
		UserID:         userID,
		ProvaID:        provaID,
		ParticipanteID: &participanteID,
	}
	if err := uow.ApostaRepository().Create(ctx, aposta); err != nil {
		return nil, fmt.Errorf("failed to create aposta: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return append(existentes, aposta), nil
}

func (s *apostaService) FazerApostaBinaria(ctx context.Context, userID, provaID uuid.UUID, resposta string) (*models.Aposta, error) {
	if !models.IsValidResposta(resposta) {
		return nil, fmt.Errorf("%w: resposta %q", ErrInvalidOutcome, resposta)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prova, err := uow.ProvaRepository().GetByID(ctx, provaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prova: %w", err)
	}
	if prova == nil {
		return nil, fmt.Errorf("%w: prova %s", ErrNotFound, provaID)
	}
	if !prova.IsApostaBinaria {
		return nil, fmt.Errorf("prova %s takes participant picks, not sim/nao answers", provaID)
	}
	if prova.Fechada {
		return nil, fmt.Errorf("%w: prova %s", ErrAlreadyClosed, provaID)
	}
	if !prova.AcceptsApostas() {
		return nil, fmt.Errorf("%w: prova %s", ErrVotingClosed, provaID)
	}

	existentes, err := uow.ApostaRepository().GetByUserAndProva(ctx, userID, provaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing apostas: %w", err)
	}

	if len(existentes) > 0 {
		atual := existentes[0]
		if atual.RespostaBinaria != nil && *atual.RespostaBinaria == resposta {
			return atual, nil
		}
		if err := uow.ApostaRepository().UpdateResposta(ctx, atual.ID, resposta); err != nil {
			return nil, fmt.Errorf("failed to update aposta: %w", err)
		}
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		atual.RespostaBinaria = &resposta
		return atual, nil
	}

	aposta := &models.Aposta{
		UserID:          userID,
		ProvaID:         provaID,
		RespostaBinaria: &resposta,
	}
	if err := uow.ApostaRepository().Create(ctx, aposta); err != nil {
		return nil, fmt.Errorf("failed to create aposta: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return aposta, nil
}

func (s *apostaService) GetApostasUser(ctx context.Context, userID, provaID uuid.UUID) ([]*models.Aposta, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	apostas, err := uow.ApostaRepository().GetByUserAndProva(ctx, userID, provaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get apostas: %w", err)
	}
	return apostas, nil
}

func removeAposta(apostas []*models.Aposta, id int64) []*models.Aposta {
	out := make([]*models.Aposta, 0, len(apostas))
	for _, a := range apostas {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}
