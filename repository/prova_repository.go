package repository

import (
	"context"
	"fmt"

	"bolao/database"
	"bolao/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProvaRepository implements the ProvaRepository interface
type ProvaRepository struct {
	q queryable
}

// NewProvaRepository creates a new prova repository
func NewProvaRepository(db *database.DB) *ProvaRepository {
	return &ProvaRepository{q: db.Pool}
}

// newProvaRepositoryWithTx creates a new prova repository with a transaction
func newProvaRepositoryWithTx(tx queryable) *ProvaRepository {
	return &ProvaRepository{q: tx}
}

const provaColumns = `
	id, tipo, titulo_customizado, descricao, data_prova,
	fechada, votacao_aberta, arquivada, max_escolhas, vencedor_id,
	is_aposta_binaria, pergunta, pontos_base, odds_sim, odds_nao, resposta_correta,
	created_at, resolved_at`

func scanProva(row pgx.Row) (*models.Prova, error) {
	var p models.Prova
	err := row.Scan(
		&p.ID,
		&p.Tipo,
		&p.TituloCustomizado,
		&p.Descricao,
		&p.DataProva,
		&p.Fechada,
		&p.VotacaoAberta,
		&p.Arquivada,
		&p.MaxEscolhas,
		&p.VencedorID,
		&p.IsApostaBinaria,
		&p.Pergunta,
		&p.PontosBase,
		&p.OddsSim,
		&p.OddsNao,
		&p.RespostaCorreta,
		&p.CreatedAt,
		&p.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new prova
func (r *ProvaRepository) Create(ctx context.Context, prova *models.Prova) error {
	query := `
		INSERT INTO provas (
			id, tipo, titulo_customizado, descricao, data_prova,
			votacao_aberta, max_escolhas,
			is_aposta_binaria, pergunta, pontos_base, odds_sim, odds_nao
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		prova.ID,
		prova.Tipo,
		prova.TituloCustomizado,
		prova.Descricao,
		prova.DataProva,
		prova.VotacaoAberta,
		prova.MaxEscolhas,
		prova.IsApostaBinaria,
		prova.Pergunta,
		prova.PontosBase,
		prova.OddsSim,
		prova.OddsNao,
	).Scan(&prova.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create prova: %w", err)
	}
	return nil
}

// GetByID retrieves a prova by id
func (r *ProvaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Prova, error) {
	query := `SELECT` + provaColumns + ` FROM provas WHERE id = $1`

	p, err := scanProva(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prova %s: %w", id, err)
	}
	return p, nil
}

// Update persists the prova's mutable fields
func (r *ProvaRepository) Update(ctx context.Context, prova *models.Prova) error {
	query := `
		UPDATE provas SET
			tipo = $2,
			titulo_customizado = $3,
			descricao = $4,
			data_prova = $5,
			fechada = $6,
			votacao_aberta = $7,
			arquivada = $8,
			max_escolhas = $9,
			vencedor_id = $10,
			resposta_correta = $11,
			resolved_at = $12
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		prova.ID,
		prova.Tipo,
		prova.TituloCustomizado,
		prova.Descricao,
		prova.DataProva,
		prova.Fechada,
		prova.VotacaoAberta,
		prova.Arquivada,
		prova.MaxEscolhas,
		prova.VencedorID,
		prova.RespostaCorreta,
		prova.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update prova %s: %w", prova.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prova %s not found", prova.ID)
	}
	return nil
}

// Delete removes a prova; apostas and ledger rows cascade
func (r *ProvaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM provas WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete prova %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prova %s not found", id)
	}
	return nil
}

// ListVisible returns non-archived provas, newest first
func (r *ProvaRepository) ListVisible(ctx context.Context) ([]*models.Prova, error) {
	query := `SELECT` + provaColumns + ` FROM provas WHERE NOT arquivada ORDER BY data_prova DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list provas: %w", err)
	}
	defer rows.Close()

	var provas []*models.Prova
	for rows.Next() {
		p, err := scanProva(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prova: %w", err)
		}
		provas = append(provas, p)
	}
	return provas, rows.Err()
}

// GetEmparedados returns the nominated participant ids for a prova
func (r *ProvaRepository) GetEmparedados(ctx context.Context, provaID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT participante_id FROM emparedados WHERE prova_id = $1 ORDER BY created_at`

	rows, err := r.q.Query(ctx, query, provaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get emparedados for prova %s: %w", provaID, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan emparedado: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetEmparedados replaces the nominated participant set for a prova.
// Delete and insert run in the caller's transaction so the set is
// never observed half-replaced.
func (r *ProvaRepository) SetEmparedados(ctx context.Context, provaID uuid.UUID, participanteIDs []uuid.UUID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM emparedados WHERE prova_id = $1`, provaID); err != nil {
		return fmt.Errorf("failed to clear emparedados for prova %s: %w", provaID, err)
	}

	for _, pid := range participanteIDs {
		query := `INSERT INTO emparedados (prova_id, participante_id) VALUES ($1, $2)`
		if _, err := r.q.Exec(ctx, query, provaID, pid); err != nil {
			return fmt.Errorf("failed to add emparedado %s to prova %s: %w", pid, provaID, err)
		}
	}
	return nil
}
