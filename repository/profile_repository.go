package repository

import (
	"context"
	"fmt"

	"bolao/database"
	"bolao/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileRepository implements the ProfileRepository interface
type ProfileRepository struct {
	q queryable
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{q: db.Pool}
}

// newProfileRepositoryWithTx creates a new profile repository with a transaction
func newProfileRepositoryWithTx(tx queryable) *ProfileRepository {
	return &ProfileRepository{q: tx}
}

// GetByID retrieves a profile by user id
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, username, nome_completo, avatar_url, pontos_totais, xp, nivel, is_admin, created_at
		FROM profiles
		WHERE id = $1
	`

	var p models.Profile
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Username,
		&p.NomeCompleto,
		&p.AvatarURL,
		&p.PontosTotais,
		&p.XP,
		&p.Nivel,
		&p.IsAdmin,
		&p.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return &p, nil
}

// GetByIDForUpdate retrieves a profile and locks its row until the
// surrounding transaction ends. Callers about to overwrite the totals
// from ledger sums take this lock first so concurrent resolutions of
// different provas cannot overwrite each other's recomputation.
func (r *ProfileRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, username, nome_completo, avatar_url, pontos_totais, xp, nivel, is_admin, created_at
		FROM profiles
		WHERE id = $1
		FOR UPDATE
	`

	var p models.Profile
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Username,
		&p.NomeCompleto,
		&p.AvatarURL,
		&p.PontosTotais,
		&p.XP,
		&p.Nivel,
		&p.IsAdmin,
		&p.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock profile %s: %w", id, err)
	}
	return &p, nil
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, username, nome_completo, avatar_url, nivel)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		profile.ID,
		profile.Username,
		profile.NomeCompleto,
		profile.AvatarURL,
		profile.Nivel,
	).Scan(&profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile %s: %w", profile.Username, err)
	}
	return nil
}

// UpdateTotals overwrites the denormalized score columns
func (r *ProfileRepository) UpdateTotals(ctx context.Context, id uuid.UUID, pontos, xp, nivel int) error {
	query := `UPDATE profiles SET pontos_totais = $2, xp = $3, nivel = $4 WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, pontos, xp, nivel)
	if err != nil {
		return fmt.Errorf("failed to update totals for profile %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s not found", id)
	}
	return nil
}

// ListRanking returns the ranking projection for every profile. Wager
// aggregates count only resolved provas; ordering is done in memory by
// the service so display and position rules live in one place.
func (r *ProfileRepository) ListRanking(ctx context.Context) ([]*models.RankingEntry, error) {
	query := `
		SELECT
			p.id, p.username, p.nome_completo, p.avatar_url,
			p.pontos_totais, p.xp, p.nivel,
			COALESCE(a.total_apostas, 0), COALESCE(a.acertos, 0)
		FROM profiles p
		LEFT JOIN (
			SELECT a.user_id,
				COUNT(*) FILTER (WHERE pr.fechada) AS total_apostas,
				COUNT(*) FILTER (WHERE pr.fechada AND a.pontos > 0) AS acertos
			FROM apostas a
			JOIN provas pr ON pr.id = a.prova_id
			GROUP BY a.user_id
		) a ON a.user_id = p.id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking: %w", err)
	}
	defer rows.Close()

	var entries []*models.RankingEntry
	for rows.Next() {
		var e models.RankingEntry
		err := rows.Scan(
			&e.UserID,
			&e.Username,
			&e.NomeCompleto,
			&e.AvatarURL,
			&e.PontosTotais,
			&e.XP,
			&e.Nivel,
			&e.TotalApostas,
			&e.Acertos,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
