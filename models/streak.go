package models

import (
	"time"

	"github.com/google/uuid"
)

// StreakMilestone is the current-streak boundary that triggers a
// celebratory notification when crossed.
const StreakMilestone = 3

// Streak holds a user's consecutive-correct-prediction counters
type Streak struct {
	UserID      uuid.UUID `db:"user_id"`
	StreakAtual int       `db:"streak_atual"`
	MaiorStreak int       `db:"maior_streak"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ReplayStreak computes (current, best) from a chronologically ordered
// sequence of per-prova results for one user (true = correct). The
// sequence must be ordered by resolution time, not wager creation.
func ReplayStreak(resultados []bool) Streak {
	var s Streak
	for _, acertou := range resultados {
		if acertou {
			s.StreakAtual++
			if s.StreakAtual > s.MaiorStreak {
				s.MaiorStreak = s.StreakAtual
			}
		} else {
			s.StreakAtual = 0
		}
	}
	return s
}
