package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func entry(username string, pontos, xp, nivel int) *RankingEntry {
	return &RankingEntry{
		UserID:       uuid.New(),
		Username:     username,
		PontosTotais: pontos,
		XP:           xp,
		Nivel:        nivel,
	}
}

func TestSortRanking_PointsThenXPThenNivel(t *testing.T) {
	entries := []*RankingEntry{
		entry("carla", 80, 500, 3),
		entry("ana", 100, 200, 2),
		entry("bruno", 100, 400, 3),
	}

	SortRanking(entries)

	assert.Equal(t, "bruno", entries[0].Username) // tie on points, higher XP first
	assert.Equal(t, "ana", entries[1].Username)
	assert.Equal(t, "carla", entries[2].Username)
}

func TestAssignPosicoes_TieSharing(t *testing.T) {
	entries := []*RankingEntry{
		entry("ana", 100, 400, 3),
		entry("bruno", 100, 200, 2),
		entry("carla", 80, 500, 3),
	}

	SortRanking(entries)
	AssignPosicoes(entries)

	// equal points share the position; next distinct value skips: 1,1,3
	assert.Equal(t, 1, entries[0].Posicao)
	assert.Equal(t, 1, entries[1].Posicao)
	assert.Equal(t, 3, entries[2].Posicao)
}

func TestAssignPosicoes_NoTies(t *testing.T) {
	entries := []*RankingEntry{
		entry("ana", 300, 0, 1),
		entry("bruno", 200, 0, 1),
		entry("carla", 100, 0, 1),
	}

	SortRanking(entries)
	AssignPosicoes(entries)

	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Posicao, entries[1].Posicao, entries[2].Posicao})
}

func TestAssignPosicoes_LongTieRun(t *testing.T) {
	entries := []*RankingEntry{
		entry("a", 50, 3, 1),
		entry("b", 50, 2, 1),
		entry("c", 50, 1, 1),
		entry("d", 10, 9, 1),
	}

	SortRanking(entries)
	AssignPosicoes(entries)

	assert.Equal(t, 1, entries[0].Posicao)
	assert.Equal(t, 1, entries[1].Posicao)
	assert.Equal(t, 1, entries[2].Posicao)
	assert.Equal(t, 4, entries[3].Posicao)
}
