package http

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shoevote/api/internal/core/ports"
	"github.com/shoevote/api/internal/metrics"
)

type contextKey string

// IdentityKey carries the authenticated ports.Identity in the request
// context once SessionMiddleware has run.
const IdentityKey contextKey = "identity"

// SessionMiddleware resolves the session cookie into a voter identity.
// Requests without a valid session are rejected; the gallery and all
// vote mutations need to know who is acting.
func SessionMiddleware(sessions ports.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session_token")
			if err != nil || cookie.Value == "" {
				http.Error(w, "missing session", http.StatusUnauthorized)
				return
			}

			identity, err := sessions.ParseToken(r.Context(), cookie.Value)
			if err != nil {
				http.Error(w, "invalid session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly guards the admin surface with the shared admin secret
// supplied in the X-Admin-Secret header.
func AdminOnly(adminSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get("X-Admin-Secret")
			if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(adminSecret)) != 1 {
				http.Error(w, "admin secret required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MetricsMiddleware counts requests by method, route pattern and status.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		metrics.IncRequest(r.Method, path, rec.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func identityFromContext(ctx context.Context) (ports.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(ports.Identity)
	return identity, ok
}
