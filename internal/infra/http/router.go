package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/alboomx-bot/internal/infra/http/handlers"
	"github.com/xavierca1/alboomx-bot/internal/infra/http/middleware"
)

// NewRouter serves the keep-alive surface: "/", "/health" and "/metrics".
func NewRouter(health *handlers.HealthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
	}))

	r.Get("/", handlers.KeepAlive)
	r.Head("/", handlers.KeepAlive)
	r.Get("/health", health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
