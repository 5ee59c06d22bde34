package models

import (
	"time"

	"github.com/google/uuid"
)

// XPPorAcerto is the experience granted per correct resolved aposta
const XPPorAcerto = 50

// Profile represents a user's public identity and cumulative score
type Profile struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	NomeCompleto *string   `db:"nome_completo"`
	AvatarURL    *string   `db:"avatar_url"`
	PontosTotais int       `db:"pontos_totais"`
	XP           int       `db:"xp"`
	Nivel        int       `db:"nivel"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}

// NivelInfo is the breakdown of a cumulative XP value into level progress
type NivelInfo struct {
	Nivel         int
	XPNoNivel     int
	XPParaProximo int
}

// NivelFromXP derives the level reached by a cumulative XP total.
// Levels start at 1 and advancing from level N costs N*100 XP, so
// level 2 is reached at 100 XP, level 3 at 300, level 4 at 600.
func NivelFromXP(xp int) NivelInfo {
	if xp < 0 {
		xp = 0
	}
	nivel := 1
	restante := xp
	for restante >= nivel*100 {
		restante -= nivel * 100
		nivel++
	}
	return NivelInfo{
		Nivel:         nivel,
		XPNoNivel:     restante,
		XPParaProximo: nivel * 100,
	}
}

// TierNivel is the display color tier for a level
type TierNivel string

const (
	TierBronze   TierNivel = "bronze"
	TierPrata    TierNivel = "prata"
	TierOuro     TierNivel = "ouro"
	TierPlatina  TierNivel = "platina"
	TierDiamante TierNivel = "diamante"
	TierMitico   TierNivel = "mitico"
	TierEpico    TierNivel = "epico"
	TierLendario TierNivel = "lendario"
)

// TierForNivel maps a level to its color tier
func TierForNivel(nivel int) TierNivel {
	switch {
	case nivel >= 50:
		return TierLendario
	case nivel >= 40:
		return TierEpico
	case nivel >= 30:
		return TierMitico
	case nivel >= 20:
		return TierDiamante
	case nivel >= 15:
		return TierPlatina
	case nivel >= 10:
		return TierOuro
	case nivel >= 5:
		return TierPrata
	}
	return TierBronze
}
