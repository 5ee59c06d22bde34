package server

import (
	"net/http"

	"bolao/models"
)

// ProfileResponse is a profile plus its derived level breakdown
type ProfileResponse struct {
	*models.Profile
	XPNoNivel     int              `json:"xp_no_nivel"`
	XPParaProximo int              `json:"xp_para_proximo"`
	Tier          models.TierNivel `json:"tier"`
}

func profileResponse(p *models.Profile) ProfileResponse {
	info := models.NivelFromXP(p.XP)
	return ProfileResponse{
		Profile:       p,
		XPNoNivel:     info.XPNoNivel,
		XPParaProximo: info.XPParaProximo,
		Tier:          models.TierForNivel(p.Nivel),
	}
}

func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, Unauthorized("not authenticated"))
		return
	}

	var req RegisterRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	profile, err := h.Profiles.GetOrCreateProfile(r.Context(), userID, req.Username)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, profileResponse(profile))
}

func (h *Handlers) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, Unauthorized("not authenticated"))
		return
	}

	profile, err := h.Profiles.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, profileResponse(profile))
}

func (h *Handlers) handleGetMeuStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, Unauthorized("not authenticated"))
		return
	}

	streak, err := h.Profiles.GetStreak(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]int{
		"streak_atual": streak.StreakAtual,
		"maior_streak": streak.MaiorStreak,
	})
}

func (h *Handlers) handleGetMinhaPosicao(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, Unauthorized("not authenticated"))
		return
	}

	posicao, total, err := h.Ranking.GetPosicao(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]int{
		"posicao": posicao,
		"total":   total,
	})
}
