package analytics

import (
	"fmt"
	"log/slog"

	"github.com/albapepper/draft-analytics/internal/config"
	"github.com/albapepper/draft-analytics/internal/correlation"
	"github.com/albapepper/draft-analytics/internal/draft"
	"github.com/albapepper/draft-analytics/internal/metrics"
	"github.com/albapepper/draft-analytics/internal/roster"
	"github.com/albapepper/draft-analytics/internal/tabular"
)

// FromConfig builds a Service reading files under cfg.DataDir. m may be nil.
func FromConfig(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	league, err := config.LoadLeague(cfg.LeagueFile)
	if err != nil {
		return nil, fmt.Errorf("load league: %w", err)
	}

	src := m.InstrumentSource(tabular.NewFileSource(cfg.DataDir))
	repo := draft.NewRepository(src, cfg.DraftFile, logger)
	engine := correlation.New(correlation.Config{
		MinYear: cfg.CorrelationMinYear,
		MaxYear: cfg.CorrelationMaxYear,
	}, logger)

	return New(Deps{
		Records:          repo,
		Joiner:           roster.NewJoiner(cfg.RosterConfig(league), repo, src, logger),
		Engine:           engine,
		Metrics:          m,
		Logger:           logger,
		RegularThreshold: cfg.RegularGamesThreshold,
	}), nil
}
