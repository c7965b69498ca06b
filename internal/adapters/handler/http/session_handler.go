package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

type createSessionRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Create issues a session cookie for a self-declared identity. The
// email is only an opaque voter key; nothing is verified.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.sessions.IssueToken(r.Context(), ports.Identity{
		VoterKey: req.Email,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyVoterKey) {
			http.Error(w, "email is required", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   12 * 60 * 60,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(identity)
}
