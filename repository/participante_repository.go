package repository

import (
	"context"
	"fmt"

	"bolao/database"
	"bolao/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ParticipanteRepository implements the ParticipanteRepository interface
type ParticipanteRepository struct {
	q queryable
}

// NewParticipanteRepository creates a new participante repository
func NewParticipanteRepository(db *database.DB) *ParticipanteRepository {
	return &ParticipanteRepository{q: db.Pool}
}

// newParticipanteRepositoryWithTx creates a new participante repository with a transaction
func newParticipanteRepositoryWithTx(tx queryable) *ParticipanteRepository {
	return &ParticipanteRepository{q: tx}
}

const participanteColumns = `id, nome, foto_url, ativo, is_lider_atual, is_anjo_atual, is_imune_atual, created_at`

func scanParticipante(row pgx.Row) (*models.Participante, error) {
	var p models.Participante
	err := row.Scan(
		&p.ID,
		&p.Nome,
		&p.FotoURL,
		&p.Ativo,
		&p.IsLiderAtual,
		&p.IsAnjoAtual,
		&p.IsImuneAtual,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new participant
func (r *ParticipanteRepository) Create(ctx context.Context, participante *models.Participante) error {
	query := `
		INSERT INTO participantes (id, nome, foto_url, ativo)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		participante.ID,
		participante.Nome,
		participante.FotoURL,
		participante.Ativo,
	).Scan(&participante.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create participante %s: %w", participante.Nome, err)
	}
	return nil
}

// GetByID retrieves a participant by id
func (r *ParticipanteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Participante, error) {
	query := `SELECT ` + participanteColumns + ` FROM participantes WHERE id = $1`

	p, err := scanParticipante(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participante %s: %w", id, err)
	}
	return p, nil
}

// GetAll returns all participants ordered by name
func (r *ParticipanteRepository) GetAll(ctx context.Context) ([]*models.Participante, error) {
	query := `SELECT ` + participanteColumns + ` FROM participantes ORDER BY nome`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list participantes: %w", err)
	}
	defer rows.Close()

	var participantes []*models.Participante
	for rows.Next() {
		p, err := scanParticipante(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participante: %w", err)
		}
		participantes = append(participantes, p)
	}
	return participantes, rows.Err()
}

// SetAtivo flips the active flag
func (r *ParticipanteRepository) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	query := `UPDATE participantes SET ativo = $2 WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, ativo)
	if err != nil {
		return fmt.Errorf("failed to set ativo for participante %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("participante %s not found", id)
	}
	return nil
}

// AssignRole moves a role to the given participant in one statement,
// so concurrent readers never observe two holders.
func (r *ParticipanteRepository) AssignRole(ctx context.Context, role models.RoleFlag, id uuid.UUID) error {
	column, err := roleColumn(role)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE participantes SET %s = (id = $1) WHERE %s OR id = $1`, column, column)

	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to assign role %s to participante %s: %w", role, id, err)
	}
	return nil
}

// ClearRole removes the role from its current holder
func (r *ParticipanteRepository) ClearRole(ctx context.Context, role models.RoleFlag) error {
	column, err := roleColumn(role)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE participantes SET %s = FALSE WHERE %s`, column, column)

	if _, err := r.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to clear role %s: %w", role, err)
	}
	return nil
}

// roleColumn maps a role to its column. Roles are a closed set; the
// column name is never built from user input.
func roleColumn(role models.RoleFlag) (string, error) {
	switch role {
	case models.RoleLider:
		return "is_lider_atual", nil
	case models.RoleAnjo:
		return "is_anjo_atual", nil
	case models.RoleImune:
		return "is_imune_atual", nil
	}
	return "", fmt.Errorf("unknown role %q", role)
}
