package testutil

import (
	"time"

	"bolao/models"

	"github.com/google/uuid"
)

// CreateTestParticipante creates a test participant with default values
func CreateTestParticipante(nome string) *models.Participante {
	return &models.Participante{
		ID:        uuid.New(),
		Nome:      nome,
		Ativo:     true,
		CreatedAt: time.Now(),
	}
}

// CreateTestProfile creates a test profile with default values
func CreateTestProfile(username string) *models.Profile {
	return &models.Profile{
		ID:       uuid.New(),
		Username: username,
		Nivel:    1,
	}
}

// CreateTestProva creates an open participant prova
func CreateTestProva(tipo models.TipoProva) *models.Prova {
	return &models.Prova{
		ID:            uuid.New(),
		Tipo:          tipo,
		DataProva:     time.Now().Add(24 * time.Hour).Truncate(time.Second),
		VotacaoAberta: true,
		MaxEscolhas:   1,
	}
}

// CreateTestProvaMultiEscolha creates an open prova allowing several picks
func CreateTestProvaMultiEscolha(tipo models.TipoProva, maxEscolhas int) *models.Prova {
	prova := CreateTestProva(tipo)
	prova.MaxEscolhas = maxEscolhas
	return prova
}

// CreateTestProvaBinaria creates an open sim/nao prova
func CreateTestProvaBinaria(pergunta string, pontosBase int, oddsSim, oddsNao float64) *models.Prova {
	prova := CreateTestProva(models.TipoCustomizado)
	prova.IsApostaBinaria = true
	prova.Pergunta = &pergunta
	prova.PontosBase = &pontosBase
	prova.OddsSim = &oddsSim
	prova.OddsNao = &oddsNao
	return prova
}

// CreateTestAposta creates a participant pick for the given user and prova
func CreateTestAposta(userID, provaID, participanteID uuid.UUID) *models.Aposta {
	return &models.Aposta{
		UserID:         userID,
		ProvaID:        provaID,
		ParticipanteID: &participanteID,
	}
}

// CreateTestApostaBinaria creates a sim/nao answer for the given user and prova
func CreateTestApostaBinaria(userID, provaID uuid.UUID, resposta string) *models.Aposta {
	return &models.Aposta{
		UserID:          userID,
		ProvaID:         provaID,
		RespostaBinaria: &resposta,
	}
}
