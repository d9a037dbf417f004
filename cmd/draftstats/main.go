// Command draftstats computes the NHL draft datasets from local files and
// prints them as JSON.
//
// Usage:
//
//	draftstats correlations
//	draftstats team-seasons
//	draftstats positions --stat goals --split --min-year 1990 --max-year 2010
//	draftstats histogram --metric assists
//	draftstats summary
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/draft-analytics/internal/analytics"
	"github.com/albapepper/draft-analytics/internal/config"
	"github.com/albapepper/draft-analytics/internal/draft"
	"github.com/albapepper/draft-analytics/internal/histogram"
)

// Logs go to stderr so stdout carries only JSON.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := rootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(out io.Writer) *cobra.Command {
	var pretty bool
	root := &cobra.Command{
		Use:          "draftstats",
		Short:        "NHL draft analytics CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "Indent JSON output")

	emit := func(v any) error {
		enc := json.NewEncoder(out)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	}

	root.AddCommand(correlationsCmd(emit))
	root.AddCommand(teamSeasonsCmd(emit))
	root.AddCommand(positionsCmd(emit))
	root.AddCommand(histogramCmd(emit))
	root.AddCommand(summaryCmd(emit))
	return root
}

type emitFunc func(v any) error

// --------------------------------------------------------------------------
// dataset commands
// --------------------------------------------------------------------------

func correlationsCmd(emit emitFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "correlations",
		Short: "Spearman correlation of draft order and career totals per draft year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(func(ctx context.Context, svc *analytics.Service) error {
				results, err := svc.Correlations(ctx)
				if err != nil {
					return err
				}
				return emit(results)
			})
		},
	}
}

func teamSeasonsCmd(emit emitFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "team-seasons",
		Short: "Team seasons with first-round and top-five pick counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(func(ctx context.Context, svc *analytics.Service) error {
				rows, err := svc.TeamSeasons(ctx)
				if err != nil {
					return err
				}
				return emit(rows)
			})
		},
	}
}

func positionsCmd(emit emitFunc) *cobra.Command {
	var q analytics.PositionQuery
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Per-pick mean and standard deviation of a stat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(func(ctx context.Context, svc *analytics.Service) error {
				points, err := svc.Positions(ctx, q)
				if err != nil {
					return err
				}
				return emit(points)
			})
		},
	}
	cmd.Flags().StringVar(&q.Stat, "stat", string(draft.MetricGamesPlayed), "Metric name or "+analytics.StatRegularShare)
	cmd.Flags().BoolVar(&q.Split, "split", false, "Split by forwards, defense and goalies")
	cmd.Flags().IntVar(&q.MinYear, "min-year", 0, "First draft year (0 = open)")
	cmd.Flags().IntVar(&q.MaxYear, "max-year", 0, "Last draft year (0 = open)")
	cmd.Flags().IntVar(&q.MaxPick, "max-pick", 0, "Deepest overall pick (0 = default)")
	return cmd
}

func histogramCmd(emit emitFunc) *cobra.Command {
	var q analytics.HistogramQuery
	var binned bool
	cmd := &cobra.Command{
		Use:   "histogram",
		Short: "Per-game scoring rates by five-year draft era",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(func(ctx context.Context, svc *analytics.Service) error {
				points, err := svc.Histogram(ctx, q)
				if err != nil {
					return err
				}
				if binned {
					return emit(histogram.Bins(points))
				}
				return emit(points)
			})
		},
	}
	cmd.Flags().StringVar(&q.Metric, "metric", string(draft.MetricPoints), "points, goals or assists")
	cmd.Flags().IntVar(&q.MinYear, "min-year", 0, "First draft year (0 = open)")
	cmd.Flags().IntVar(&q.MaxYear, "max-year", 0, "Last draft year (0 = open)")
	cmd.Flags().StringSliceVar(&q.Positions, "positions", nil, "Keep only these position codes, e.g. C,LW")
	cmd.Flags().BoolVar(&binned, "bins", false, "Emit (era, rate, count) bins instead of points")
	return cmd
}

func summaryCmd(emit emitFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Compute every dataset once and report sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(func(ctx context.Context, svc *analytics.Service) error {
				result := svc.Summarize(ctx)
				for _, e := range result.Errors {
					logger.Error("dataset error", "error", e)
				}
				if err := emit(result); err != nil {
					return err
				}
				if len(result.Errors) > 0 {
					return fmt.Errorf("%d dataset(s) failed", len(result.Errors))
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

func runDataset(fn func(ctx context.Context, svc *analytics.Service) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	svc, err := analytics.FromConfig(cfg, nil, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := fn(ctx, svc); err != nil {
		return err
	}
	logger.Debug("Command finished", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}
