package server

import (
	"net/http"

	"bolao/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handlers) handleListParticipantes(w http.ResponseWriter, r *http.Request) {
	participantes, err := h.Participantes.ListParticipantes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participantes)
}

func (h *Handlers) handleCreateParticipante(w http.ResponseWriter, r *http.Request) {
	var req ParticipanteCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	participante, err := h.Participantes.CreateParticipante(r.Context(), req.Nome, req.FotoURL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, participante)
}

func (h *Handlers) handleSetParticipanteAtivo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "participanteID"))
	if err != nil {
		respondError(w, BadRequest("invalid participante id"))
		return
	}

	var req ParticipanteAtivoRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Participantes.SetAtivo(r.Context(), id, req.Ativo); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]bool{"ativo": req.Ativo})
}

func (h *Handlers) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := uuid.Parse(req.ParticipanteID)
	if err != nil {
		respondError(w, BadRequest("invalid participante id"))
		return
	}

	if err := h.Participantes.AssignRole(r.Context(), models.RoleFlag(req.Role), id); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]string{"role": req.Role, "participante_id": req.ParticipanteID})
}

func (h *Handlers) handleGetRanking(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Ranking.GetRanking(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, entries)
}
