// Package api assembles the HTTP router.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/draft-analytics/internal/api/handler"
	"github.com/albapepper/draft-analytics/internal/cache"
	"github.com/albapepper/draft-analytics/internal/config"
)

// Version is reported by the root endpoint and the docs.
const Version = "1.0.0"

// NewRouter creates and configures the Chi router with all middleware and routes.
// metricsHandler serves /metrics; nil uses promhttp.Handler.
func NewRouter(data handler.Datasets, appCache *cache.Cache, cfg *config.Config, metricsHandler http.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(data, appCache, Version, logger)
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
		r.Delete("/cache", h.PurgeCache)
	})

	// Prometheus
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/correlations", h.GetCorrelations)
		r.Get("/team-seasons", h.GetTeamSeasons)
		r.Get("/positions", h.GetPositions)
		r.Get("/histogram", h.GetHistogram)
	})

	return r
}
