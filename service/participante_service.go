package service

import (
	"context"
	"fmt"

	"bolao/models"

	"github.com/google/uuid"
)

type participanteService struct {
	uowFactory UnitOfWorkFactory
}

// NewParticipanteService creates the roster administration service
func NewParticipanteService(uowFactory UnitOfWorkFactory) ParticipanteService {
	return &participanteService{
		uowFactory: uowFactory,
	}
}

func (s *participanteService) CreateParticipante(ctx context.Context, nome string, fotoURL *string) (*models.Participante, error) {
	if nome == "" {
		return nil, fmt.Errorf("nome must not be empty")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	participante := &models.Participante{
		ID:      uuid.New(),
		Nome:    nome,
		FotoURL: fotoURL,
		Ativo:   true,
	}
	if err := uow.ParticipanteRepository().Create(ctx, participante); err != nil {
		return nil, fmt.Errorf("failed to create participante: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return participante, nil
}

func (s *participanteService) ListParticipantes(ctx context.Context) ([]*models.Participante, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	participantes, err := uow.ParticipanteRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participantes: %w", err)
	}
	return participantes, nil
}

func (s *participanteService) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	participante, err := uow.ParticipanteRepository().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get participante: %w", err)
	}
	if participante == nil {
		return fmt.Errorf("%w: participante %s", ErrNotFound, id)
	}

	if err := uow.ParticipanteRepository().SetAtivo(ctx, id, ativo); err != nil {
		return fmt.Errorf("failed to set ativo: %w", err)
	}

	// An eliminated contestant loses any weekly role they held.
	if !ativo {
		for _, role := range []models.RoleFlag{models.RoleLider, models.RoleAnjo, models.RoleImune} {
			if participante.HasRole(role) {
				if err := uow.ParticipanteRepository().ClearRole(ctx, role); err != nil {
					return fmt.Errorf("failed to clear role %s: %w", role, err)
				}
			}
		}
	}

	return uow.Commit()
}

func (s *participanteService) AssignRole(ctx context.Context, role models.RoleFlag, id uuid.UUID) error {
	switch role {
	case models.RoleLider, models.RoleAnjo, models.RoleImune:
	default:
		return fmt.Errorf("unknown role %q", role)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	participante, err := uow.ParticipanteRepository().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get participante: %w", err)
	}
	if participante == nil {
		return fmt.Errorf("%w: participante %s", ErrNotFound, id)
	}
	if !participante.Ativo {
		return fmt.Errorf("participante %s is eliminated", id)
	}

	if err := uow.ParticipanteRepository().AssignRole(ctx, role, id); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	return uow.Commit()
}

func (s *participanteService) ElegiveisParaProva(ctx context.Context, provaID uuid.UUID) ([]*models.Participante, error) {
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

	todos, err := uow.ParticipanteRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participantes: %w", err)
	}

	keep, err := choiceFilter(ctx, uow, prova)
	if err != nil {
		return nil, err
	}
	return filterParticipantes(todos, keep), nil
}

// choiceFilter returns the predicate deciding which participants form
// a prova's valid choice set. The same set bounds eligibility listings,
// wager picks and the winner accepted at resolution.
func choiceFilter(ctx context.Context, uow UnitOfWork, prova *models.Prova) (func(*models.Participante) bool, error) {
	switch prova.Tipo {
	case models.TipoParedao, models.TipoBateVolta:
		// Only the nominated contestants are pickable.
		emparedados, err := uow.ProvaRepository().GetEmparedados(ctx, prova.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get emparedados: %w", err)
		}
		nominated := make(map[uuid.UUID]bool, len(emparedados))
		for _, id := range emparedados {
			nominated[id] = true
		}
		return func(p *models.Participante) bool {
			return nominated[p.ID]
		}, nil

	case models.TipoPalpiteParedao:
		// Leader and angel cannot be nominated, so guessing them as
		// the next eviction nominee makes no sense.
		return func(p *models.Participante) bool {
			return p.Ativo && !p.IsLiderAtual && !p.IsAnjoAtual
		}, nil
	}

	return func(p *models.Participante) bool {
		return p.Ativo
	}, nil
}

func filterParticipantes(all []*models.Participante, keep func(*models.Participante) bool) []*models.Participante {
	out := make([]*models.Participante, 0, len(all))
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
