package server

import (
	"net/http"

	"bolao/service"

	"github.com/go-playground/validator/v10"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Profiles      service.ProfileService
	Participantes service.ParticipanteService
	Provas        service.ProvaService
	Apostas       service.ApostaService
	Resolucao     service.ResolucaoService
	Ranking       service.RankingService

	adminToken string
	validate   *validator.Validate
}

// New creates a new Handlers instance with all dependencies
func New(
	profiles service.ProfileService,
	participantes service.ParticipanteService,
	provas service.ProvaService,
	apostas service.ApostaService,
	resolucao service.ResolucaoService,
	ranking service.RankingService,
	adminToken string,
) *Handlers {
	return &Handlers{
		Profiles:      profiles,
		Participantes: participantes,
		Provas:        provas,
		Apostas:       apostas,
		Resolucao:     resolucao,
		Ranking:       ranking,
		adminToken:    adminToken,
		validate:      validator.New(),
	}
}

// decodeAndValidate decodes the body and runs struct validation
func (h *Handlers) decodeAndValidate(r *http.Request, target interface{}) error {
	if err := decodeJSON(r, target); err != nil {
		return err
	}
	if err := h.validate.Struct(target); err != nil {
		return &APIError{Status: http.StatusBadRequest, Code: ErrCodeValidation, Message: err.Error()}
	}
	return nil
}
