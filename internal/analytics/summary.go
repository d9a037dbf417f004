package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/albapepper/draft-analytics/internal/draft"
)

// Summary tracks dataset sizes and errors from a full run.
type Summary struct {
	DraftRecords    int           `json:"draft_records"`
	Correlations    int           `json:"correlations"`
	TeamSeasons     int           `json:"team_seasons"`
	PositionPoints  int           `json:"position_points"`
	HistogramPoints int           `json:"histogram_points"`
	Duration        time.Duration `json:"duration_ns"`
	Errors          []string      `json:"errors,omitempty"`
}

// AddErrorf records a formatted error message.
func (r *Summary) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Summary) Summary() string {
	return fmt.Sprintf(
		"draft_records=%d correlations=%d team_seasons=%d position_points=%d histogram_points=%d errors=%d",
		r.DraftRecords, r.Correlations, r.TeamSeasons,
		r.PositionPoints, r.HistogramPoints, len(r.Errors),
	)
}

// Summarize computes every dataset once with default queries. A failing
// dataset is recorded in Errors and the rest still run.
func (s *Service) Summarize(ctx context.Context) *Summary {
	start := time.Now()
	result := &Summary{}

	if records, err := s.records.All(ctx); err != nil {
		result.AddErrorf("draft: %v", err)
	} else {
		result.DraftRecords = len(records)
	}

	if rows, err := s.Correlations(ctx); err != nil {
		result.AddErrorf("%s: %v", DatasetCorrelations, err)
	} else {
		result.Correlations = len(rows)
	}

	if rows, err := s.TeamSeasons(ctx); err != nil {
		result.AddErrorf("%s: %v", DatasetTeamSeasons, err)
	} else {
		result.TeamSeasons = len(rows)
	}

	if rows, err := s.Positions(ctx, PositionQuery{Stat: string(draft.MetricGamesPlayed), Split: true}); err != nil {
		result.AddErrorf("%s: %v", DatasetPositions, err)
	} else {
		result.PositionPoints = len(rows)
	}

	if rows, err := s.Histogram(ctx, HistogramQuery{Metric: string(draft.MetricPoints)}); err != nil {
		result.AddErrorf("%s: %v", DatasetHistogram, err)
	} else {
		result.HistogramPoints = len(rows)
	}

	result.Duration = time.Since(start)
	s.logger.Info("Summary complete", "summary", result.Summary(),
		"duration", result.Duration.Round(time.Millisecond))
	return result
}
