// Package correlation measures, per draft year, how well draft order
// predicts career output using Spearman rank correlation.
package correlation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/albapepper/draft-analytics/internal/draft"
	"github.com/albapepper/draft-analytics/internal/stats"
)

// Default year window and metrics.
const (
	DefaultMinYear = 1963
	DefaultMaxYear = 2018
)

// DefaultMetrics are the skater metrics correlated with draft order.
var DefaultMetrics = []draft.Metric{
	draft.MetricGamesPlayed,
	draft.MetricGoals,
	draft.MetricAssists,
	draft.MetricPoints,
}

// Result is the correlation for one (year, metric) pair.
type Result struct {
	Year        int          `json:"year"`
	Stat        draft.Metric `json:"stat"`
	Correlation float64      `json:"correlation"`
	SampleSize  int          `json:"sample_size"`
}

// Config bounds the years considered and lists the metrics.
type Config struct {
	MinYear int
	MaxYear int
	Metrics []draft.Metric
}

// DefaultConfig returns the 1963-2018 window over DefaultMetrics.
func DefaultConfig() Config {
	return Config{MinYear: DefaultMinYear, MaxYear: DefaultMaxYear, Metrics: DefaultMetrics}
}

// RecordSource supplies the draft dataset.
type RecordSource interface {
	All(ctx context.Context) ([]draft.Record, error)
}

// Engine computes correlation results. It holds no state between calls.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// New returns an Engine. Empty Metrics fall back to DefaultMetrics.
func New(cfg Config, logger *slog.Logger) *Engine {
	if len(cfg.Metrics) == 0 {
		cfg.Metrics = DefaultMetrics
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Run loads the dataset from src and computes every result.
func (e *Engine) Run(ctx context.Context, src RecordSource) ([]Result, error) {
	records, err := src.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	results := e.Compute(records)
	e.logger.Info("Rank correlations computed", "results", len(results),
		"min_year", e.cfg.MinYear, "max_year", e.cfg.MaxYear)
	return results, nil
}

// Compute returns one Result per (year, metric), years ascending and metrics
// in configured order. Goalies are excluded.
func (e *Engine) Compute(records []draft.Record) []Result {
	skaters := draft.FilterOutGoalies(draft.FilterByYearRange(records, e.cfg.MinYear, e.cfg.MaxYear))
	byYear := draft.GroupByYear(skaters)

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	results := make([]Result, 0, len(years)*len(e.cfg.Metrics))
	for _, year := range years {
		for _, m := range e.cfg.Metrics {
			results = append(results, ForYear(year, byYear[year], m))
		}
	}
	return results
}

// ForYear correlates draft order with metric over one year's records.
//
// Metric ranks follow a stable descending sort, so equal values keep input
// order. Draft ranks are the position of the first equal pick in the
// ascending pick list, so equal picks share a rank. The two variables
// therefore break ties differently.
func ForYear(year int, records []draft.Record, metric draft.Metric) Result {
	type ranked struct {
		pick  int
		value float64
	}
	present := make([]ranked, 0, len(records))
	for _, r := range records {
		if v, ok := r.Value(metric); ok {
			present = append(present, ranked{pick: r.OverallPick, value: v})
		}
	}
	n := len(present)
	res := Result{Year: year, Stat: metric, SampleSize: n}
	if n < 2 {
		return res
	}

	sort.SliceStable(present, func(i, j int) bool { return present[i].value > present[j].value })

	statRanks := make([]float64, n)
	picks := make([]int, n)
	for i, p := range present {
		statRanks[i] = float64(i + 1)
		picks[i] = p.pick
	}

	sorted := make([]int, n)
	copy(sorted, picks)
	sort.Ints(sorted)
	draftRanks := make([]float64, n)
	for i, pick := range picks {
		draftRanks[i] = float64(sort.SearchInts(sorted, pick) + 1)
	}

	res.Correlation = stats.Spearman(draftRanks, statRanks)
	return res
}
