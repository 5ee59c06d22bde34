package service

import (
	"context"
	"fmt"
	"time"

	"bolao/events"
	"bolao/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type resolucaoService struct {
	uowFactory UnitOfWorkFactory
}

// NewResolucaoService creates the service that closes and reopens provas
func NewResolucaoService(uowFactory UnitOfWorkFactory) ResolucaoService {
	return &resolucaoService{
		uowFactory: uowFactory,
	}
}

// Resolver closes a prova and settles every aposta on it. All writes
// happen in one transaction: the prova's outcome, per-aposta points,
// per-user ledger entries, recomputed profile totals and replayed
// streaks either all land or none do.
func (s *resolucaoService) Resolver(ctx context.Context, provaID uuid.UUID, outcome Outcome, pontosParticipante int) error {
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
	if prova.Fechada {
		return fmt.Errorf("%w: prova %s", ErrAlreadyClosed, provaID)
	}

	if err := s.validateOutcome(ctx, uow, prova, outcome); err != nil {
		return err
	}

	apostas, err := uow.ApostaRepository().ListByProva(ctx, provaID)
	if err != nil {
		return fmt.Errorf("failed to list apostas: %w", err)
	}

	// Settle each aposta and build the per-user ledger deltas.
	type delta struct {
		pontos int
		xp     int
	}
	deltas := make(map[uuid.UUID]delta)
	totalAcertos := 0
	for _, aposta := range apostas {
		d := deltas[aposta.UserID]
		if aposta.Matches(outcome.VencedorID, outcome.Resposta) {
			pontos, err := s.pontosParaAcerto(prova, aposta, pontosParticipante)
			if err != nil {
				return err
			}
			if err := uow.ApostaRepository().UpdatePontos(ctx, aposta.ID, pontos); err != nil {
				return fmt.Errorf("failed to set aposta points: %w", err)
			}
			d.pontos += pontos
			d.xp += models.XPPorAcerto
			totalAcertos++
		}
		deltas[aposta.UserID] = d
	}

	now := time.Now().UTC()
	prova.Fechada = true
	prova.VotacaoAberta = false
	prova.VencedorID = outcome.VencedorID
	prova.RespostaCorreta = outcome.Resposta
	prova.ResolvedAt = &now
	if err := uow.ProvaRepository().Update(ctx, prova); err != nil {
		return fmt.Errorf("failed to update prova: %w", err)
	}

	// Write one ledger entry per wagering user, then recompute that
	// user's totals and streak from the ledger and result history.
	// Users whose apostas all missed still get a zero entry so a
	// later reopen touches exactly the right users.
	for userID, d := range deltas {
		entry := &models.LedgerEntry{
			UserID:      userID,
			ProvaID:     provaID,
			XPDelta:     d.xp,
			PontosDelta: d.pontos,
		}
		if err := uow.LedgerRepository().Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}

		nivelAntes, nivelNovo, err := s.recomputeUser(ctx, uow, userID)
		if err != nil {
			return err
		}

		if d.pontos > 0 || d.xp > 0 {
			uow.EventBus().Publish(events.PointsAwardedEvent{
				UserID:  userID,
				ProvaID: provaID,
				Pontos:  d.pontos,
				XP:      d.xp,
			})
		}
		if nivelNovo > nivelAntes {
			uow.EventBus().Publish(events.NivelUpEvent{
				UserID:     userID,
				NivelAntes: nivelAntes,
				NivelNovo:  nivelNovo,
			})
		}

		streak, err := s.recomputeStreak(ctx, uow, userID)
		if err != nil {
			return err
		}
		if d.xp > 0 && streak.StreakAtual >= models.StreakMilestone && streak.StreakAtual%models.StreakMilestone == 0 {
			uow.EventBus().Publish(events.StreakMilestoneEvent{
				UserID:      userID,
				StreakAtual: streak.StreakAtual,
			})
		}
	}

	uow.EventBus().Publish(events.ProvaResolvedEvent{
		ProvaID:         provaID,
		Tipo:            string(prova.Tipo),
		Titulo:          prova.Titulo(),
		VencedorID:      outcome.VencedorID,
		RespostaCorreta: outcome.Resposta,
		TotalApostas:    len(apostas),
		TotalAcertos:    totalAcertos,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"provaId":      provaID,
		"totalApostas": len(apostas),
		"totalAcertos": totalAcertos,
	}).Info("prova resolved")

	return nil
}

// Reabrir reopens a resolved prova. The prova's ledger entries are
// deleted and every affected user's totals and streak are recomputed,
// so resolve followed by reopen is a no-op on all cumulative state.
func (s *resolucaoService) Reabrir(ctx context.Context, provaID uuid.UUID) error {
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
	if !prova.Fechada {
		return fmt.Errorf("%w: prova %s", ErrNotClosed, provaID)
	}

	affected, err := uow.LedgerRepository().DeleteByProva(ctx, provaID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entries: %w", err)
	}

	if err := uow.ApostaRepository().ZeroPontosByProva(ctx, provaID); err != nil {
		return fmt.Errorf("failed to reset aposta points: %w", err)
	}

	prova.Fechada = false
	prova.VotacaoAberta = true
	prova.VencedorID = nil
	prova.RespostaCorreta = nil
	prova.ResolvedAt = nil
	if err := uow.ProvaRepository().Update(ctx, prova); err != nil {
		return fmt.Errorf("failed to update prova: %w", err)
	}

	for _, userID := range affected {
		if _, _, err := s.recomputeUser(ctx, uow, userID); err != nil {
			return err
		}
		if _, err := s.recomputeStreak(ctx, uow, userID); err != nil {
			return err
		}
	}

	uow.EventBus().Publish(events.ProvaReopenedEvent{ProvaID: provaID})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"provaId":       provaID,
		"usersReversed": len(affected),
	}).Info("prova reopened")

	return nil
}

func (s *resolucaoService) validateOutcome(ctx context.Context, uow UnitOfWork, prova *models.Prova, outcome Outcome) error {
	if prova.IsApostaBinaria {
		if outcome.Resposta == nil || outcome.VencedorID != nil {
			return fmt.Errorf("%w: binary prova takes a sim/nao answer", ErrInvalidOutcome)
		}
		if !models.IsValidResposta(*outcome.Resposta) {
			return fmt.Errorf("%w: resposta %q", ErrInvalidOutcome, *outcome.Resposta)
		}
		return nil
	}

	if outcome.VencedorID == nil || outcome.Resposta != nil {
		return fmt.Errorf("%w: participant prova takes a winner id", ErrInvalidOutcome)
	}
	participante, err := uow.ParticipanteRepository().GetByID(ctx, *outcome.VencedorID)
	if err != nil {
		return fmt.Errorf("failed to get participante: %w", err)
	}
	if participante == nil {
		return fmt.Errorf("%w: vencedor %s is not a participante", ErrInvalidOutcome, *outcome.VencedorID)
	}

	// The winner must be one of the prova's valid choices, the same
	// set users were allowed to wager on.
	escolhivel, err := choiceFilter(ctx, uow, prova)
	if err != nil {
		return err
	}
	if !escolhivel(participante) {
		return fmt.Errorf("%w: vencedor %s is not in the prova's choice set", ErrInvalidOutcome, *outcome.VencedorID)
	}
	return nil
}

func (s *resolucaoService) pontosParaAcerto(prova *models.Prova, aposta *models.Aposta, pontosParticipante int) (int, error) {
	if prova.IsApostaBinaria {
		if aposta.RespostaBinaria == nil {
			return 0, fmt.Errorf("aposta %d has no binary answer", aposta.ID)
		}
		return prova.BinaryPayout(*aposta.RespostaBinaria)
	}
	if pontosParticipante < 0 {
		return 0, fmt.Errorf("pontos must not be negative, got %d", pontosParticipante)
	}
	if pontosParticipante == 0 {
		return models.PontosParticipantePadrao, nil
	}
	return pontosParticipante, nil
}

// recomputeUser overwrites a profile's totals with the ledger sums.
// Returning to the source of truth instead of incrementing in place
// makes both resolve and reopen idempotent. The profile row is locked
// before summing: a concurrent resolution of another prova for the
// same user blocks here until this transaction commits, so its sum
// already includes this resolution's ledger entry. The streak replay
// that follows rides on the same lock.
func (s *resolucaoService) recomputeUser(ctx context.Context, uow UnitOfWork, userID uuid.UUID) (nivelAntes, nivelNovo int, err error) {
	profile, err := uow.ProfileRepository().GetByIDForUpdate(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return 0, 0, fmt.Errorf("%w: profile %s", ErrNotFound, userID)
	}
	nivelAntes = profile.Nivel

	totals, err := uow.LedgerRepository().SumByUser(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum ledger: %w", err)
	}

	nivelNovo = models.NivelFromXP(totals.XP).Nivel
	if err := uow.ProfileRepository().UpdateTotals(ctx, userID, totals.Pontos, totals.XP, nivelNovo); err != nil {
		return 0, 0, fmt.Errorf("failed to update profile totals: %w", err)
	}
	return nivelAntes, nivelNovo, nil
}

// recomputeStreak replays the user's full result history in
// resolution-time order. Replaying from scratch keeps the counters
// correct when provas resolve out of wager order or get reopened.
func (s *resolucaoService) recomputeStreak(ctx context.Context, uow UnitOfWork, userID uuid.UUID) (*models.Streak, error) {
	resultados, err := uow.ApostaRepository().ListResultadosCronologicos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	streak := models.ReplayStreak(resultados)
	streak.UserID = userID
	if err := uow.StreakRepository().Upsert(ctx, &streak); err != nil {
		return nil, fmt.Errorf("failed to upsert streak: %w", err)
	}
	return &streak, nil
}
