// Package handler provides HTTP handlers for all API endpoints.
// Datasets are computed by the analytics service, rendered once and served
// from the in-memory cache with ETags.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/draft-analytics/internal/analytics"
	"github.com/albapepper/draft-analytics/internal/api/respond"
	"github.com/albapepper/draft-analytics/internal/cache"
	"github.com/albapepper/draft-analytics/internal/correlation"
	"github.com/albapepper/draft-analytics/internal/draft"
	"github.com/albapepper/draft-analytics/internal/histogram"
	"github.com/albapepper/draft-analytics/internal/roster"
	"github.com/albapepper/draft-analytics/internal/stats"
	"github.com/albapepper/draft-analytics/internal/tabular"
)

// Datasets is the analytics surface the handlers serve.
type Datasets interface {
	Correlations(ctx context.Context) ([]correlation.Result, error)
	TeamSeasons(ctx context.Context) ([]roster.TeamSeason, error)
	Positions(ctx context.Context, q analytics.PositionQuery) ([]stats.PositionPoint, error)
	Histogram(ctx context.Context, q analytics.HistogramQuery) ([]histogram.Point, error)
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	data    Datasets
	cache   *cache.Cache
	logger  *slog.Logger
	version string
}

// New creates a Handler with shared dependencies.
func New(data Datasets, c *cache.Cache, version string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{data: data, cache: c, logger: logger, version: version}
}

// envelope wraps every dataset response.
type envelope struct {
	Count int `json:"count"`
	Data  any `json:"data"`
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and the dataset endpoints.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"name":    "NHL Draft Analytics API",
		"version": h.version,
		"status":  "running",
		"docs":    "/docs",
		"datasets": []string{
			"/api/v1/correlations",
			"/api/v1/team-seasons",
			"/api/v1/positions",
			"/api/v1/histogram",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// PurgeCache drops every cached dataset so the next request recomputes it.
// @Summary Purge cache
// @Description Drops every cached dataset response.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [delete]
func (h *Handler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	dropped := h.cache.Stats().TotalKeys
	h.cache.Purge()
	h.logger.Info("Cache purged", "keys", dropped)
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":  "purged",
		"dropped": dropped,
	})
}

// serveCached answers from the cache when possible, otherwise computes,
// renders and stores the dataset under key.
func serveCached[T any](h *Handler, w http.ResponseWriter, r *http.Request, key string, compute func(context.Context) ([]T, error)) {
	ttl := cache.TTLDataset

	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	rows, err := compute(r.Context())
	if err != nil {
		h.writeDatasetError(w, key, err)
		return
	}
	if rows == nil {
		rows = []T{}
	}
	raw, err := json.Marshal(envelope{Count: len(rows), Data: rows})
	if err != nil {
		h.writeDatasetError(w, key, err)
		return
	}

	etag := h.cache.Set(key, raw, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// writeDatasetError maps the error taxonomy onto HTTP statuses.
func (h *Handler) writeDatasetError(w http.ResponseWriter, key string, err error) {
	switch {
	case errors.Is(err, analytics.ErrInvalidQuery):
		respond.WriteErrorDetail(w, http.StatusBadRequest, respond.CodeBadRequest, "Invalid query", err.Error())
		return
	case errors.Is(err, tabular.ErrSourceUnavailable):
		respond.WriteError(w, http.StatusServiceUnavailable, respond.CodeSourceUnavailable, "Data source unavailable")
	case errors.Is(err, roster.ErrUnknownTeamCode):
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeUnknownTeamCode, "Standings reference an unknown team")
	case errors.Is(err, draft.ErrInvalidRecord), errors.Is(err, tabular.ErrMalformedRow):
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeInvalidRecord, "Data source contains an invalid record")
	default:
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to compute dataset")
	}
	h.logger.Error("Dataset request failed", "dataset", key, "error", err)
}
