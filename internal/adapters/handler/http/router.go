package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shoevote/api/internal/core/ports"
)

func NewHandler(
	sessionHandler *SessionHandler,
	voteHandler *VoteHandler,
	rankingHandler *RankingHandler,
	catalogHandler *CatalogHandler,
	exportHandler *ExportHandler,
	sessions ports.SessionService,
	adminSecret string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", sessionHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(sessions))

			r.Get("/session/me", sessionHandler.Me)
			r.Get("/items", rankingHandler.Gallery)
			r.Get("/favorite", voteHandler.GetFavorite)

			r.Route("/items/{id}", func(r chi.Router) {
				r.Post("/like", voteHandler.ToggleLike)
				r.Post("/favorite", voteHandler.SetFavorite)
				r.Post("/favorite/confirm", voteHandler.ConfirmSwitchFavorite)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminOnly(adminSecret))

			r.Post("/items", catalogHandler.AddItems)
			r.Delete("/items", catalogHandler.Wipe)
			r.Delete("/items/{id}", catalogHandler.DeleteItem)
			r.Delete("/voters/{key}", catalogHandler.RemoveVoter)

			r.Get("/stats", rankingHandler.Stats)
			r.Get("/leaderboard", rankingHandler.Leaderboard)
			r.Get("/export", exportHandler.Export)
		})
	})

	return r
}
