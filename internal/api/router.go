package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Matrix/internal/hermes"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
)

// RouterConfig holds the boundary settings for NewRouter.
type RouterConfig struct {
	AdminToken         string
	RateLimitPerMinute int
}

func NewRouter(s store.Store, h hermes.Client, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	if cfg.RateLimitPerMinute > 0 {
		r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))
	}

	sessions := NewSessionsHandler(s, h, logger)
	rank := NewRankHandler(logger)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/rank", rank.Rank)

		r.Post("/sessions", sessions.Create)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessions.Get)
			r.Delete("/", sessions.Delete)

			r.Post("/criteria", sessions.AddCriterion)
			r.Patch("/criteria/{cid}", sessions.UpdateCriterion)
			r.Delete("/criteria/{cid}", sessions.RemoveCriterion)

			r.Post("/alternatives", sessions.AddAlternative)
			r.Patch("/alternatives/{aid}", sessions.UpdateAlternative)
			r.Delete("/alternatives/{aid}", sessions.RemoveAlternative)

			r.Put("/ratings", sessions.SetRating)

			r.Post("/advance", sessions.Advance)
			r.Post("/retreat", sessions.Retreat)
			r.Post("/reset", sessions.Reset)

			r.Get("/validation", sessions.Validation)
			r.Get("/export", sessions.Export)
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/admin/sessions", admin.Sessions)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
