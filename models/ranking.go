package models

import (
	"sort"

	"github.com/google/uuid"
)

// RankingEntry is the read-model projection of a profile on the
// ranking board, plus per-user wager aggregates.
type RankingEntry struct {
	UserID       uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	NomeCompleto *string   `db:"nome_completo" json:"nome_completo,omitempty"`
	AvatarURL    *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	PontosTotais int       `db:"pontos_totais" json:"pontos_totais"`
	XP           int       `db:"xp" json:"xp"`
	Nivel        int       `db:"nivel" json:"nivel"`
	TotalApostas int       `db:"total_apostas" json:"total_apostas"`
	Acertos      int       `db:"acertos" json:"acertos"`
	Posicao      int       `db:"-" json:"posicao"`
}

// SortRanking orders entries for display: points descending, then XP
// descending, then level descending. XP and level decide only who is
// listed first among point ties, never the printed position.
func SortRanking(entries []*RankingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].PontosTotais != entries[j].PontosTotais {
			return entries[i].PontosTotais > entries[j].PontosTotais
		}
		if entries[i].XP != entries[j].XP {
			return entries[i].XP > entries[j].XP
		}
		return entries[i].Nivel > entries[j].Nivel
	})
}

// AssignPosicoes writes competition-ranked positions onto an already
// sorted slice: entries tied on points share a position and the next
// distinct point value resumes at index+1 (1,1,3 rather than 1,1,2).
func AssignPosicoes(entries []*RankingEntry) {
	for i, e := range entries {
		if i > 0 && e.PontosTotais == entries[i-1].PontosTotais {
			e.Posicao = entries[i-1].Posicao
			continue
		}
		e.Posicao = i + 1
	}
}
