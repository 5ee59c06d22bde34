package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondOK(w, map[string]string{"status": "ok"})
	})

	// Public reads
	r.Get("/api/ranking", h.handleGetRanking)
	r.Get("/api/participantes", h.handleListParticipantes)
	r.Get("/api/provas", h.handleListProvas)
	r.Get("/api/provas/{provaID}", h.handleGetProva)
	r.Get("/api/provas/{provaID}/elegiveis", h.handleGetElegiveis)

	// Authenticated user routes
	r.Group(func(r chi.Router) {
		r.Use(h.RequireUser)

		r.Post("/api/register", h.handleRegister)
		r.Get("/api/me", h.handleGetMe)
		r.Get("/api/me/streak", h.handleGetMeuStreak)
		r.Get("/api/me/posicao", h.handleGetMinhaPosicao)

		r.Get("/api/provas/{provaID}/apostas", h.handleGetMinhasApostas)
		r.Post("/api/provas/{provaID}/apostas", h.handleFazerAposta)
		r.Post("/api/provas/{provaID}/apostas/binaria", h.handleFazerApostaBinaria)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAdmin)

		r.Post("/api/admin/provas", h.handleCreateProva)
		r.Post("/api/admin/provas/{provaID}/votacao", h.handleSetVotacao)
		r.Post("/api/admin/provas/{provaID}/emparedados", h.handleSetEmparedados)
		r.Post("/api/admin/provas/{provaID}/resolver", h.handleResolverProva)
		r.Post("/api/admin/provas/{provaID}/reabrir", h.handleReabrirProva)
		r.Post("/api/admin/provas/{provaID}/arquivar", h.handleArquivarProva)
		r.Delete("/api/admin/provas/{provaID}", h.handleDeleteProva)

		r.Post("/api/admin/participantes", h.handleCreateParticipante)
		r.Post("/api/admin/participantes/{participanteID}/ativo", h.handleSetParticipanteAtivo)
		r.Post("/api/admin/participantes/role", h.handleAssignRole)
	})

	return r
}
