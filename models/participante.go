package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleFlag identifies the weekly role a participant can hold.
// Each role has at most one holder at a time.
type RoleFlag string

const (
	RoleLider RoleFlag = "lider"
	RoleAnjo  RoleFlag = "anjo"
	RoleImune RoleFlag = "imune"
)

// Participante represents a contestant in the show
type Participante struct {
	ID           uuid.UUID `db:"id"`
	Nome         string    `db:"nome"`
	FotoURL      *string   `db:"foto_url"`
	Ativo        bool      `db:"ativo"`
	IsLiderAtual bool      `db:"is_lider_atual"`
	IsAnjoAtual  bool      `db:"is_anjo_atual"`
	IsImuneAtual bool      `db:"is_imune_atual"`
	CreatedAt    time.Time `db:"created_at"`
}

// HasRole reports whether the participant currently holds the given role
func (p *Participante) HasRole(role RoleFlag) bool {
	switch role {
	case RoleLider:
		return p.IsLiderAtual
	case RoleAnjo:
		return p.IsAnjoAtual
	case RoleImune:
		return p.IsImuneAtual
	}
	return false
}
