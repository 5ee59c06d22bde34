package repository

import (
	"context"
	"fmt"

	"bolao/database"
	"bolao/models"
	"bolao/service"

	"github.com/google/uuid"
)

// LedgerRepository implements the LedgerRepository interface
type LedgerRepository struct {
	q queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// newLedgerRepositoryWithTx creates a new ledger repository with a transaction
func newLedgerRepositoryWithTx(tx queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Append inserts a ledger entry. The (user_id, prova_id) unique key
// turns a double resolution into service.ErrConflict instead of a
// double award.
func (r *LedgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	query := `
		INSERT INTO ledger (user_id, prova_id, xp_delta, pontos_delta)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.ProvaID,
		entry.XPDelta,
		entry.PontosDelta,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger entry for user %s on prova %s exists", service.ErrConflict, entry.UserID, entry.ProvaID)
		}
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// DeleteByProva removes the prova's entries and returns the affected user ids
func (r *LedgerRepository) DeleteByProva(ctx context.Context, provaID uuid.UUID) ([]uuid.UUID, error) {
	query := `DELETE FROM ledger WHERE prova_id = $1 RETURNING user_id`

	rows, err := r.q.Query(ctx, query, provaID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete ledger entries for prova %s: %w", provaID, err)
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ledger user: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

// SumByUser aggregates a user's deltas
func (r *LedgerRepository) SumByUser(ctx context.Context, userID uuid.UUID) (*models.LedgerTotals, error) {
	query := `
		SELECT COALESCE(SUM(xp_delta), 0), COALESCE(SUM(pontos_delta), 0)
		FROM ledger
		WHERE user_id = $1
	`

	var totals models.LedgerTotals
	if err := r.q.QueryRow(ctx, query, userID).Scan(&totals.XP, &totals.Pontos); err != nil {
		return nil, fmt.Errorf("failed to sum ledger for user %s: %w", userID, err)
	}
	return &totals, nil
}
