package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntry is an append-only record of the XP/points a resolved
// prova granted a user. Entries are keyed uniquely by (user, prova) so
// a resolve/reopen/resolve cycle is idempotent: reopening deletes the
// prova's entries and cumulative totals are always ledger sums.
type LedgerEntry struct {
	ID          int64     `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	ProvaID     uuid.UUID `db:"prova_id"`
	XPDelta     int       `db:"xp_delta"`
	PontosDelta int       `db:"pontos_delta"`
	CreatedAt   time.Time `db:"created_at"`
}

// LedgerTotals is the aggregate of a user's ledger entries
type LedgerTotals struct {
	XP     int
	Pontos int
}
