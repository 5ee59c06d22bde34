package models

import (
	"time"

	"github.com/google/uuid"
)

// Aposta represents one user's prediction on one prova.
// Exactly one of ParticipanteID and RespostaBinaria is set.
type Aposta struct {
	ID              int64      `db:"id"`
	UserID          uuid.UUID  `db:"user_id"`
	ProvaID         uuid.UUID  `db:"prova_id"`
	ParticipanteID  *uuid.UUID `db:"participante_id"`
	RespostaBinaria *string    `db:"resposta_binaria"`
	Pontos          int        `db:"pontos"`
	CreatedAt       time.Time  `db:"created_at"`
}

// Matches reports whether this aposta picked the resolved outcome.
// For participant provas the outcome is the winner's id; for binary
// provas it is the literal "sim"/"nao" answer.
func (a *Aposta) Matches(vencedorID *uuid.UUID, respostaCorreta *string) bool {
	if a.ParticipanteID != nil && vencedorID != nil {
		return *a.ParticipanteID == *vencedorID
	}
	if a.RespostaBinaria != nil && respostaCorreta != nil {
		return *a.RespostaBinaria == *respostaCorreta
	}
	return false
}
