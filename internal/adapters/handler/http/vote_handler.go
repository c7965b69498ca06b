package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
	"github.com/shoevote/api/internal/metrics"
)

type VoteHandler struct {
	ledger ports.VoteLedger
}

func NewVoteHandler(ledger ports.VoteLedger) *VoteHandler {
	return &VoteHandler{
		ledger: ledger,
	}
}

func (h *VoteHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	itemID, err := itemIDParam(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	liked, err := h.ledger.ToggleLike(r.Context(), identity.VoterKey, itemID)
	if err != nil {
		metrics.IncVoteWrite("like", "error")
		if errors.Is(err, domain.ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.IncVoteWrite("like", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"liked": liked})
}

func (h *VoteHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	itemID, err := itemIDParam(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	change, err := h.ledger.SetFavorite(r.Context(), identity.VoterKey, itemID)
	if err != nil {
		metrics.IncVoteWrite("favorite", "error")
		if errors.Is(err, domain.ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.IncVoteWrite("favorite", string(change.Status))

	w.Header().Set("Content-Type", "application/json")
	if change.Status == domain.FavoriteNeedsConfirmation {
		// The caller must prompt the voter and confirm explicitly.
		w.WriteHeader(http.StatusConflict)
	}
	json.NewEncoder(w).Encode(change)
}

type confirmSwitchRequest struct {
	PreviousFavorite int64 `json:"previous_favorite"`
}

func (h *VoteHandler) ConfirmSwitchFavorite(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	itemID, err := itemIDParam(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	var req confirmSwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = h.ledger.ConfirmSwitchFavorite(r.Context(), identity.VoterKey, itemID, req.PreviousFavorite)
	if err != nil {
		metrics.IncVoteWrite("favorite_switch", "error")
		if errors.Is(err, domain.ErrFavoriteConflict) {
			http.Error(w, "favorite changed, re-fetch and retry the prompt", http.StatusConflict)
			return
		}
		if errors.Is(err, domain.ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.IncVoteWrite("favorite_switch", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "switched"})
}

func (h *VoteHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	itemID, found, err := h.ledger.GetFavorite(r.Context(), identity.VoterKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, domain.ErrNoFavorite.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"item_id": itemID})
}

func itemIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
