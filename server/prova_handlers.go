package server

import (
	"net/http"

	"bolao/models"
	"bolao/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handlers) handleListProvas(w http.ResponseWriter, r *http.Request) {
	provas, err := h.Provas.ListProvas(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, provas)
}

func (h *Handlers) handleGetProva(w http.ResponseWriter, r *http.Request) {
	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	prova, err := h.Provas.GetProva(r.Context(), provaID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, prova)
}

func (h *Handlers) handleGetElegiveis(w http.ResponseWriter, r *http.Request) {
	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	participantes, err := h.Participantes.ElegiveisParaProva(r.Context(), provaID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participantes)
}

func (h *Handlers) handleCreateProva(w http.ResponseWriter, r *http.Request) {
	var req ProvaCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	prova, err := h.Provas.CreateProva(r.Context(), service.ProvaCreateParams{
		Tipo:              models.TipoProva(req.Tipo),
		TituloCustomizado: req.TituloCustomizado,
		Descricao:         req.Descricao,
		DataProva:         req.DataProva,
		MaxEscolhas:       req.MaxEscolhas,
		IsApostaBinaria:   req.IsApostaBinaria,
		Pergunta:          req.Pergunta,
		PontosBase:        req.PontosBase,
		OddsSim:           req.OddsSim,
		OddsNao:           req.OddsNao,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, prova)
}

func (h *Handlers) handleSetVotacao(w http.ResponseWriter, r *http.Request) {
	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	var req VotacaoRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Provas.SetVotacaoAberta(r.Context(), provaID, req.Aberta); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]bool{"votacao_aberta": req.Aberta})
}

func (h *Handlers) handleSetEmparedados(w http.ResponseWriter, r *http.Request) {
	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	var req EmparedadosRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ParticipanteIDs))
	for _, raw := range req.ParticipanteIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, BadRequest("invalid participante id "+raw))
			return
		}
		ids = append(ids, id)
	}

	if err := h.Provas.SetEmparedados(r.Context(), provaID, ids); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]int{"emparedados": len(ids)})
}

func (h *Handlers) handleArquivarProva(w http.ResponseWriter, r *http.Request) {
	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	if err := h.Provas.Arquivar(r.Context(), provaID); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleDeleteProva(w http.ResponseWriter, r *http.Request) {
	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	if err := h.Provas.DeleteProva(r.Context(), provaID); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleResolverProva(w http.ResponseWriter, r *http.Request) {
	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	var req ResolverRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	var outcome service.Outcome
	if req.VencedorID != nil {
		vencedorID, err := uuid.Parse(*req.VencedorID)
		if err != nil {
			respondError(w, BadRequest("invalid vencedor id"))
			return
		}
		outcome.VencedorID = &vencedorID
	}
	outcome.Resposta = req.Resposta

	if err := h.Resolucao.Resolver(r.Context(), provaID, outcome, req.PontosParticipante); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]string{"status": "resolvida"})
}

func (h *Handlers) handleReabrirProva(w http.ResponseWriter, r *http.Request) {
	provaID, err := uuid.Parse(chi.URLParam(r, "provaID"))
	if err != nil {
		respondError(w, BadRequest("invalid prova id"))
		return
	}

	if err := h.Resolucao.Reabrir(r.Context(), provaID); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]string{"status": "reaberta"})
}
