package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nutriware/nutrirag/internal/api"
	"github.com/nutriware/nutrirag/internal/api/handlers"
	"github.com/nutriware/nutrirag/internal/api/middleware"
)

type RouterConfig struct {
	// APIKey enables static bearer auth when non-empty.
	APIKey        string
	QueryHandler  *handlers.QueryHandler
	CorpusHandler *handlers.CorpusHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.APIKey))

		r.Post("/ask", cfg.QueryHandler.Ask)
		r.Get("/corpus/stats", cfg.CorpusHandler.Stats)
	})

	return r
}
