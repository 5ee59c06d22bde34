package repository

import (
	"context"
	"fmt"

	"bolao/database"
	"bolao/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StreakRepository implements the StreakRepository interface
type StreakRepository struct {
	q queryable
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(db *database.DB) *StreakRepository {
	return &StreakRepository{q: db.Pool}
}

// newStreakRepositoryWithTx creates a new streak repository with a transaction
func newStreakRepositoryWithTx(tx queryable) *StreakRepository {
	return &StreakRepository{q: tx}
}

// Get returns the user's streak counters, zero values if absent
func (r *StreakRepository) Get(ctx context.Context, userID uuid.UUID) (*models.Streak, error) {
	query := `SELECT user_id, streak_atual, maior_streak, updated_at FROM streaks WHERE user_id = $1`

	var s models.Streak
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.StreakAtual,
		&s.MaiorStreak,
		&s.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return &models.Streak{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get streak for user %s: %w", userID, err)
	}
	return &s, nil
}

// Upsert writes the user's streak counters
func (r *StreakRepository) Upsert(ctx context.Context, streak *models.Streak) error {
	query := `
		INSERT INTO streaks (user_id, streak_atual, maior_streak, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			streak_atual = EXCLUDED.streak_atual,
			maior_streak = EXCLUDED.maior_streak,
			updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, streak.UserID, streak.StreakAtual, streak.MaiorStreak); err != nil {
		return fmt.Errorf("failed to upsert streak for user %s: %w", streak.UserID, err)
	}
	return nil
}
