package draft

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/albapepper/draft-analytics/internal/tabular"
)

// Repository loads the draft source once and serves the parsed records for
// the rest of the process lifetime.
type Repository struct {
	source tabular.Source
	name   string
	logger *slog.Logger

	// mu guards records; loaded distinguishes "not yet loaded" from an
	// empty source.
	mu      sync.RWMutex
	records []Record
	loaded  bool

	// sf collapses concurrent first calls into one load.
	sf singleflight.Group
}

// NewRepository returns a Repository reading the named table from source.
func NewRepository(source tabular.Source, name string, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{source: source, name: name, logger: logger}
}

// All returns every record. The first call loads and parses the source;
// later and concurrent calls share that result. A failed load is not
// cached. The returned slice is shared and must not be modified.
//
// The shared load ignores the cancellation of whichever caller started it;
// each caller stops waiting when its own ctx is done.
func (r *Repository) All(ctx context.Context) ([]Record, error) {
	if records, ok := r.cached(); ok {
		return records, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := r.sf.DoChan(r.name, func() (any, error) {
		// A flight that finished between cached() and DoChan already filled the cell.
		if records, ok := r.cached(); ok {
			return records, nil
		}

		start := time.Now()
		table, err := r.source.Load(loadCtx, r.name)
		if err != nil {
			return nil, fmt.Errorf("load draft source: %w", err)
		}
		records, err := ParseRecords(table)
		if err != nil {
			return nil, fmt.Errorf("parse draft source %s: %w", r.name, err)
		}

		r.mu.Lock()
		r.records = records
		r.loaded = true
		r.mu.Unlock()

		r.logger.Info("Draft records loaded",
			"source", r.name, "records", len(records),
			"duration", time.Since(start).Round(time.Millisecond))
		return records, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Record), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Repository) cached() ([]Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records, r.loaded
}
