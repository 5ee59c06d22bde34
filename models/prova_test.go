package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayoutFor(t *testing.T) {
	tests := []struct {
		name       string
		basePoints int
		multiplier float64
		expected   int
	}{
		{"even multiplier", 100, 3.0, 300},
		{"fractional rounds up", 100, 1.5, 150},
		{"fractional rounds half away from zero", 25, 1.5, 38},
		{"rounds down", 100, 1.254, 125},
		{"zero multiplier pays nothing", 100, 0, 0},
		{"zero base pays nothing", 0, 5.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payout, err := PayoutFor(tt.basePoints, tt.multiplier)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, payout)
		})
	}
}

func TestPayoutFor_RejectsNegativeInputs(t *testing.T) {
	_, err := PayoutFor(-100, 1.5)
	assert.Error(t, err)

	_, err = PayoutFor(100, -1.5)
	assert.Error(t, err)
}

func TestProva_BinaryPayout(t *testing.T) {
	base := 100
	oddsSim := 1.5
	oddsNao := 3.0
	prova := &Prova{
		IsApostaBinaria: true,
		PontosBase:      &base,
		OddsSim:         &oddsSim,
		OddsNao:         &oddsNao,
	}

	payout, err := prova.BinaryPayout(RespostaSim)
	require.NoError(t, err)
	assert.Equal(t, 150, payout)

	payout, err = prova.BinaryPayout(RespostaNao)
	require.NoError(t, err)
	assert.Equal(t, 300, payout)

	_, err = prova.BinaryPayout("talvez")
	assert.Error(t, err)
}

func TestProva_BinaryPayout_NotBinary(t *testing.T) {
	prova := &Prova{Tipo: TipoLider}
	_, err := prova.BinaryPayout(RespostaSim)
	assert.Error(t, err)
}

func TestProva_AcceptsApostas(t *testing.T) {
	prova := &Prova{VotacaoAberta: true}
	assert.True(t, prova.AcceptsApostas())

	prova.Fechada = true
	assert.False(t, prova.AcceptsApostas())

	prova.Fechada = false
	prova.VotacaoAberta = false
	assert.False(t, prova.AcceptsApostas())

	prova.VotacaoAberta = true
	prova.Arquivada = true
	assert.False(t, prova.AcceptsApostas())
}

func TestProva_Titulo(t *testing.T) {
	titulo := "Quem leva a prova do finalista?"
	custom := &Prova{Tipo: TipoCustomizado, TituloCustomizado: &titulo}
	assert.Equal(t, titulo, custom.Titulo())

	lider := &Prova{Tipo: TipoLider}
	assert.Equal(t, "Prova do Líder", lider.Titulo())
}
