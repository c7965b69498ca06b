package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shoevote/api/internal/core/ports"
	"github.com/shoevote/api/internal/core/services"
)

const defaultLeaderboardSize = 10

type RankingHandler struct {
	ranking ports.RankingService
}

func NewRankingHandler(ranking ports.RankingService) *RankingHandler {
	return &RankingHandler{
		ranking: ranking,
	}
}

// Gallery serves the ranked items with the calling voter's own flags.
// The ?page= parameter is 1-based at this boundary; the core is
// 0-based and clamps out-of-range pages to the last valid one.
func (h *RankingHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	page, err := h.ranking.Gallery(r.Context(), identity.VoterKey, pageParam(r), services.DefaultPageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func (h *RankingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	page, err := h.ranking.Page(r.Context(), pageParam(r), services.DefaultPageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func (h *RankingHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	n := defaultLeaderboardSize
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid leaderboard size", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	top, err := h.ranking.TopN(r.Context(), n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(top)
}

// pageParam converts the 1-based ?page= query value to a 0-based
// index. Anything unparsable falls back to the first page; clamping of
// too-large values happens in the ranking service.
func pageParam(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 0
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0
	}
	return page - 1
}
