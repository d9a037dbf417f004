// Package analytics wires the draft repository, the season joiner and the
// correlation engine into the datasets served by the CLI and the API.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/albapepper/draft-analytics/internal/correlation"
	"github.com/albapepper/draft-analytics/internal/draft"
	"github.com/albapepper/draft-analytics/internal/histogram"
	"github.com/albapepper/draft-analytics/internal/metrics"
	"github.com/albapepper/draft-analytics/internal/roster"
	"github.com/albapepper/draft-analytics/internal/stats"
)

// Dataset names, used as metric labels and cache keys.
const (
	DatasetCorrelations = "correlations"
	DatasetTeamSeasons  = "team_seasons"
	DatasetPositions    = "positions"
	DatasetHistogram    = "histogram"
)

// StatRegularShare selects the share of regular NHL players per pick
// instead of a plain metric average.
const StatRegularShare = "regular_share"

// ErrInvalidQuery wraps every query validation failure.
var ErrInvalidQuery = errors.New("invalid query")

var validate = validator.New()

// RecordSource supplies the draft dataset.
type RecordSource interface {
	All(ctx context.Context) ([]draft.Record, error)
}

// Joiner produces the team-season dataset.
type Joiner interface {
	Join(ctx context.Context) ([]roster.TeamSeason, error)
}

// Deps are the collaborators of a Service. Metrics and Logger may be nil.
type Deps struct {
	Records          RecordSource
	Joiner           Joiner
	Engine           *correlation.Engine
	Metrics          *metrics.Metrics
	Logger           *slog.Logger
	RegularThreshold int
}

// Service computes datasets on demand. It is safe for concurrent use.
type Service struct {
	records   RecordSource
	joiner    Joiner
	engine    *correlation.Engine
	metrics   *metrics.Metrics
	logger    *slog.Logger
	threshold int
}

// New returns a Service.
func New(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Engine == nil {
		d.Engine = correlation.New(correlation.DefaultConfig(), d.Logger)
	}
	if d.RegularThreshold <= 0 {
		d.RegularThreshold = draft.DefaultRegularThreshold
	}
	return &Service{
		records:   d.Records,
		joiner:    d.Joiner,
		engine:    d.Engine,
		metrics:   d.Metrics,
		logger:    d.Logger,
		threshold: d.RegularThreshold,
	}
}

// --------------------------------------------------------------------------
// Datasets
// --------------------------------------------------------------------------

// Correlations returns the per-year rank correlations.
func (s *Service) Correlations(ctx context.Context) ([]correlation.Result, error) {
	start := time.Now()
	results, err := s.engine.Run(ctx, s.records)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDataset(DatasetCorrelations, len(results), time.Since(start))
	return results, nil
}

// TeamSeasons returns the joined team-season rows.
func (s *Service) TeamSeasons(ctx context.Context) ([]roster.TeamSeason, error) {
	start := time.Now()
	rows, err := s.joiner.Join(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDataset(DatasetTeamSeasons, len(rows), time.Since(start))
	return rows, nil
}

// PositionQuery selects the per-pick summary. Stat is a metric name or
// StatRegularShare. Zero year bounds are open.
type PositionQuery struct {
	Stat    string `validate:"required"`
	Split   bool
	MinYear int `validate:"omitempty,gte=1900"`
	MaxYear int `validate:"omitempty,gte=1900,gtefield=MinYear"`
	MaxPick int `validate:"gte=0"`
}

// Positions summarizes players by overall pick.
func (s *Service) Positions(ctx context.Context, q PositionQuery) ([]stats.PositionPoint, error) {
	if err := validate.Struct(q); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	cfg, err := s.statConfig(q.Stat)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	records, err := s.records.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	records = yearRange(records, q.MinYear, q.MaxYear)

	points, err := stats.PositionAggregates(records, cfg, stats.PositionOptions{
		SplitByPosition: q.Split,
		MaxPick:         q.MaxPick,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	s.metrics.ObserveDataset(DatasetPositions, len(points), time.Since(start))
	return points, nil
}

// HistogramQuery selects the per-game histogram. Zero year bounds are open.
// A non-empty Positions keeps only those exact position codes.
type HistogramQuery struct {
	Metric    string   `validate:"required,oneof=points goals assists"`
	MinYear   int      `validate:"omitempty,gte=1900"`
	MaxYear   int      `validate:"omitempty,gte=1900,gtefield=MinYear"`
	Positions []string `validate:"omitempty,dive,required"`
}

// Histogram returns per-game rates with their five-year era.
func (s *Service) Histogram(ctx context.Context, q HistogramQuery) ([]histogram.Point, error) {
	if err := validate.Struct(q); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	start := time.Now()
	records, err := s.records.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	records = yearRange(records, q.MinYear, q.MaxYear)
	if len(q.Positions) > 0 {
		records = draft.FilterByPositions(records, q.Positions)
	}
	points, err := histogram.Build(records, draft.Metric(q.Metric))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	s.metrics.ObserveDataset(DatasetHistogram, len(points), time.Since(start))
	return points, nil
}

func (s *Service) statConfig(stat string) (stats.StatConfig, error) {
	if stat == StatRegularShare {
		return stats.StatConfig{
			Metric: draft.MetricGamesPlayed,
			Custom: stats.RegularPlayerShare(s.threshold),
		}, nil
	}
	m, err := draft.ParseMetric(stat)
	if err != nil {
		return stats.StatConfig{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return stats.StatConfig{Metric: m}, nil
}

func yearRange(records []draft.Record, minYear, maxYear int) []draft.Record {
	if minYear == 0 && maxYear == 0 {
		return records
	}
	if maxYear == 0 {
		maxYear = math.MaxInt
	}
	return draft.FilterByYearRange(records, minYear, maxYear)
}
