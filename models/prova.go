package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// TipoProva enumerates the built-in prova kinds
type TipoProva string

const (
	TipoLider          TipoProva = "lider"
	TipoAnjo           TipoProva = "anjo"
	TipoBateVolta      TipoProva = "bate_volta"
	TipoParedao        TipoProva = "paredao"
	TipoPalpiteParedao TipoProva = "palpite_paredao"
	TipoCustomizado    TipoProva = "customizado"
)

// Binary answers for yes/no provas
const (
	RespostaSim = "sim"
	RespostaNao = "nao"
)

// PontosParticipantePadrao is the flat award used when the resolver
// does not specify a per-event value for a participant prova.
const PontosParticipantePadrao = 100

// Prova represents a single predictable occurrence users wager on
type Prova struct {
	ID                uuid.UUID  `db:"id"`
	Tipo              TipoProva  `db:"tipo"`
	TituloCustomizado *string    `db:"titulo_customizado"`
	Descricao         *string    `db:"descricao"`
	DataProva         time.Time  `db:"data_prova"`
	Fechada           bool       `db:"fechada"`
	VotacaoAberta     bool       `db:"votacao_aberta"`
	Arquivada         bool       `db:"arquivada"`
	MaxEscolhas       int        `db:"max_escolhas"`
	VencedorID        *uuid.UUID `db:"vencedor_id"`

	// Binary (sim/nao) prova fields; unset on participant provas
	IsApostaBinaria  bool     `db:"is_aposta_binaria"`
	Pergunta         *string  `db:"pergunta"`
	PontosBase       *int     `db:"pontos_base"`
	OddsSim          *float64 `db:"odds_sim"`
	OddsNao          *float64 `db:"odds_nao"`
	RespostaCorreta  *string  `db:"resposta_correta"`

	CreatedAt  time.Time  `db:"created_at"`
	ResolvedAt *time.Time `db:"resolved_at"`
}

// PayoutFor returns the rounded integer payout for a binary outcome.
// Zero multiplier pays zero; negative inputs are a caller error.
func PayoutFor(basePoints int, multiplier float64) (int, error) {
	if basePoints < 0 {
		return 0, fmt.Errorf("base points must not be negative, got %d", basePoints)
	}
	if multiplier < 0 {
		return 0, fmt.Errorf("multiplier must not be negative, got %v", multiplier)
	}
	return int(math.Round(float64(basePoints) * multiplier)), nil
}

// BinaryPayout returns the payout for the given answer on this prova.
func (p *Prova) BinaryPayout(resposta string) (int, error) {
	if !p.IsApostaBinaria || p.PontosBase == nil || p.OddsSim == nil || p.OddsNao == nil {
		return 0, fmt.Errorf("prova %s is not a binary prova", p.ID)
	}
	switch resposta {
	case RespostaSim:
		return PayoutFor(*p.PontosBase, *p.OddsSim)
	case RespostaNao:
		return PayoutFor(*p.PontosBase, *p.OddsNao)
	}
	return 0, fmt.Errorf("invalid binary answer %q", resposta)
}

// IsValidResposta reports whether the answer is a recognized binary outcome
func IsValidResposta(resposta string) bool {
	return resposta == RespostaSim || resposta == RespostaNao
}

// AcceptsApostas reports whether users may still place wagers
func (p *Prova) AcceptsApostas() bool {
	return !p.Fechada && p.VotacaoAberta && !p.Arquivada
}

// IsMultiEscolha reports whether the prova allows more than one pick per user
func (p *Prova) IsMultiEscolha() bool {
	return p.MaxEscolhas > 1
}

// Titulo returns the display title for the prova kind
func (p *Prova) Titulo() string {
	if p.Tipo == TipoCustomizado && p.TituloCustomizado != nil {
		return *p.TituloCustomizado
	}
	switch p.Tipo {
	case TipoLider:
		return "Prova do Líder"
	case TipoAnjo:
		return "Prova do Anjo"
	case TipoBateVolta:
		return "Bate e Volta"
	case TipoParedao:
		return "Paredão"
	case TipoPalpiteParedao:
		return "Palpite: Próximo Paredão"
	}
	return string(p.Tipo)
}
