package repository

import (
	"context"
	"fmt"

	"bolao/database"
	"bolao/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ApostaRepository implements the ApostaRepository interface
type ApostaRepository struct {
	q queryable
}

// NewApostaRepository creates a new aposta repository
func NewApostaRepository(db *database.DB) *ApostaRepository {
	return &ApostaRepository{q: db.Pool}
}

// newApostaRepositoryWithTx creates a new aposta repository with a transaction
func newApostaRepositoryWithTx(tx queryable) *ApostaRepository {
	return &ApostaRepository{q: tx}
}

const apostaColumns = `id, user_id, prova_id, participante_id, resposta_binaria, pontos, created_at`

func scanAposta(row pgx.Row) (*models.Aposta, error) {
	var a models.Aposta
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.ProvaID,
		&a.ParticipanteID,
		&a.RespostaBinaria,
		&a.Pontos,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApostaRepository) queryApostas(ctx context.Context, query string, args ...any) ([]*models.Aposta, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apostas []*models.Aposta
	for rows.Next() {
		a, err := scanAposta(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aposta: %w", err)
		}
		apostas = append(apostas, a)
	}
	return apostas, rows.Err()
}

// Create creates a new aposta
func (r *ApostaRepository) Create(ctx context.Context, aposta *models.Aposta) error {
	query := `
		INSERT INTO apostas (user_id, prova_id, participante_id, resposta_binaria)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		aposta.UserID,
		aposta.ProvaID,
		aposta.ParticipanteID,
		aposta.RespostaBinaria,
	).Scan(&aposta.ID, &aposta.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create aposta: %w", err)
	}
	return nil
}

// Delete removes an aposta by id
func (r *ApostaRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM apostas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete aposta %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("aposta %d not found", id)
	}
	return nil
}

// UpdateEscolha changes the chosen participant of an existing aposta
func (r *ApostaRepository) UpdateEscolha(ctx context.Context, id int64, participanteID uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `UPDATE apostas SET participante_id = $2 WHERE id = $1`, id, participanteID)
	if err != nil {
		return fmt.Errorf("failed to update aposta %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("aposta %d not found", id)
	}
	return nil
}

// UpdateResposta changes the binary answer of an existing aposta
func (r *ApostaRepository) UpdateResposta(ctx context.Context, id int64, resposta string) error {
	tag, err := r.q.Exec(ctx, `UPDATE apostas SET resposta_binaria = $2 WHERE id = $1`, id, resposta)
	if err != nil {
		return fmt.Errorf("failed to update aposta %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("aposta %d not found", id)
	}
	return nil
}

// UpdatePontos sets the awarded points of an aposta
func (r *ApostaRepository) UpdatePontos(ctx context.Context, id int64, pontos int) error {
	tag, err := r.q.Exec(ctx, `UPDATE apostas SET pontos = $2 WHERE id = $1`, id, pontos)
	if err != nil {
		return fmt.Errorf("failed to set pontos on aposta %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("aposta %d not found", id)
	}
	return nil
}

// ZeroPontosByProva resets awarded points for every aposta on a prova
func (r *ApostaRepository) ZeroPontosByProva(ctx context.Context, provaID uuid.UUID) error {
	if _, err := r.q.Exec(ctx, `UPDATE apostas SET pontos = 0 WHERE prova_id = $1`, provaID); err != nil {
		return fmt.Errorf("failed to reset pontos for prova %s: %w", provaID, err)
	}
	return nil
}

// GetByUserAndProva returns a user's apostas on one prova
func (r *ApostaRepository) GetByUserAndProva(ctx context.Context, userID, provaID uuid.UUID) ([]*models.Aposta, error) {
	query := `SELECT ` + apostaColumns + ` FROM apostas WHERE user_id = $1 AND prova_id = $2 ORDER BY created_at`

	apostas, err := r.queryApostas(ctx, query, userID, provaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get apostas for user %s on prova %s: %w", userID, provaID, err)
	}
	return apostas, nil
}

// ListByProva returns all apostas on a prova
func (r *ApostaRepository) ListByProva(ctx context.Context, provaID uuid.UUID) ([]*models.Aposta, error) {
	query := `SELECT ` + apostaColumns + ` FROM apostas WHERE prova_id = $1 ORDER BY created_at`

	apostas, err := r.queryApostas(ctx, query, provaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list apostas for prova %s: %w", provaID, err)
	}
	return apostas, nil
}

// ListByUser returns all apostas of a user, newest first
func (r *ApostaRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Aposta, error) {
	query := `SELECT ` + apostaColumns + ` FROM apostas WHERE user_id = $1 ORDER BY created_at DESC`

	apostas, err := r.queryApostas(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list apostas for user %s: %w", userID, err)
	}
	return apostas, nil
}

// ListResultadosCronologicos returns, per resolved prova the user
// wagered on and ordered by resolution time, whether any of the user's
// apostas on it picked the outcome. Correctness compares the pick to
// the stored outcome, not the payout: a correct answer on a side with
// multiplier zero scores nothing but still extends the streak.
func (r *ApostaRepository) ListResultadosCronologicos(ctx context.Context, userID uuid.UUID) ([]bool, error) {
	query := `
		SELECT BOOL_OR(
			COALESCE(a.participante_id = p.vencedor_id, FALSE)
			OR COALESCE(a.resposta_binaria = p.resposta_correta, FALSE)
		)
		FROM apostas a
		JOIN provas p ON p.id = a.prova_id
		WHERE a.user_id = $1 AND p.fechada AND p.resolved_at IS NOT NULL
		GROUP BY p.id, p.resolved_at
		ORDER BY p.resolved_at
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for user %s: %w", userID, err)
	}
	defer rows.Close()

	var resultados []bool
	for rows.Next() {
		var acertou bool
		if err := rows.Scan(&acertou); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		resultados = append(resultados, acertou)
	}
	return resultados, rows.Err()
}
