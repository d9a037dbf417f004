package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/albapepper/draft-analytics/internal/analytics"
	"github.com/albapepper/draft-analytics/internal/api/respond"
	"github.com/albapepper/draft-analytics/internal/histogram"
	"github.com/albapepper/draft-analytics/internal/stats"
)

// GetCorrelations returns the per-year Spearman correlations.
// @Summary Get draft-order correlations
// @Description Spearman rank correlation between draft order and career totals, one row per draft year and stat. Goalies are excluded.
// @Tags datasets
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /correlations [get]
func (h *Handler) GetCorrelations(w http.ResponseWriter, r *http.Request) {
	serveCached(h, w, r, analytics.DatasetCorrelations, h.data.Correlations)
}

// GetTeamSeasons returns the joined team-season rows.
// @Summary Get team seasons
// @Description One row per team and season with standings points, first-round and top-five pick counts, and the champion flag.
// @Tags datasets
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /team-seasons [get]
func (h *Handler) GetTeamSeasons(w http.ResponseWriter, r *http.Request) {
	serveCached(h, w, r, analytics.DatasetTeamSeasons, h.data.TeamSeasons)
}

// GetPositions returns per-pick aggregates.
// @Summary Get per-pick aggregates
// @Description Mean and population standard deviation of a stat for every overall pick, optionally split into forwards, defense and goalies.
// @Tags datasets
// @Produce json
// @Param stat query string false "Metric name or regular_share" default(games_played)
// @Param split query bool false "Split by position group"
// @Param min_year query int false "First draft year"
// @Param max_year query int false "Last draft year"
// @Param max_pick query int false "Deepest overall pick"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /positions [get]
func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	q := analytics.PositionQuery{Stat: r.URL.Query().Get("stat")}
	if q.Stat == "" {
		q.Stat = "games_played"
	}
	var err error
	if q.Split, err = boolParam(r, "split"); err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
		return
	}
	if q.MinYear, err = intParam(r, "min_year"); err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
		return
	}
	if q.MaxYear, err = intParam(r, "max_year"); err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
		return
	}
	if q.MaxPick, err = intParam(r, "max_pick"); err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("%s:%s:%t:%d:%d:%d", analytics.DatasetPositions, q.Stat, q.Split, q.MinYear, q.MaxYear, q.MaxPick)
	serveCached(h, w, r, key, func(ctx context.Context) ([]stats.PositionPoint, error) {
		return h.data.Positions(ctx, q)
	})
}

// GetHistogram returns per-game rates binned by draft era.
// @Summary Get per-game histogram
// @Description Per-game points, goals or assists for every player with games played, tagged with a five-year draft era.
// @Tags datasets
// @Produce json
// @Param metric query string false "Scoring metric" Enums(points, goals, assists) default(points)
// @Param min_year query int false "First draft year"
// @Param max_year query int false "Last draft year"
// @Param positions query string false "Comma-separated position codes, e.g. C,LW"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /histogram [get]
func (h *Handler) GetHistogram(w http.ResponseWriter, r *http.Request) {
	q := analytics.HistogramQuery{Metric: r.URL.Query().Get("metric")}
	if q.Metric == "" {
		q.Metric = "points"
	}
	var err error
	if q.MinYear, err = intParam(r, "min_year"); err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
		return
	}
	if q.MaxYear, err = intParam(r, "max_year"); err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
		return
	}
	q.Positions = listParam(r, "positions")

	key := fmt.Sprintf("%s:%s:%d:%d:%s", analytics.DatasetHistogram, q.Metric, q.MinYear, q.MaxYear, strings.Join(q.Positions, ","))
	serveCached(h, w, r, key, func(ctx context.Context) ([]histogram.Point, error) {
		return h.data.Histogram(ctx, q)
	})
}

func intParam(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", name)
	}
	return b, nil
}

// listParam splits a comma-separated parameter, dropping blank items.
func listParam(r *http.Request, name string) []string {
	var out []string
	for _, item := range strings.Split(r.URL.Query().Get(name), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
