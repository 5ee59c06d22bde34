package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handlers) handleFazerAposta(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, Unauthorized("not authenticated"))
		return
	}

	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	var req ApostaRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}
	participanteID, err := uuid.Parse(req.ParticipanteID)
	if err != nil {
		respondError(w, BadRequest("invalid participante id"))
		return
	}

	apostas, err := h.Apostas.FazerAposta(r.Context(), userID, provaID, participanteID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, apostas)
}

func (h *Handlers) handleFazerApostaBinaria(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, Unauthorized("not authenticated"))
		return
	}

	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	var req ApostaBinariaRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	aposta, err := h.Apostas.FazerApostaBinaria(r.Context(), userID, provaID, req.Resposta)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, aposta)
}

func (h *Handlers) handleGetMinhasApostas(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, Unauthorized("not authenticated"))
		return
	}

	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	apostas, err := h.Apostas.GetApostasUser(r.Context(), userID, provaID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, apostas)
}
