// Package testutil provides in-memory fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/albapepper/draft-analytics/internal/tabular"
)

// MemorySource serves CSV text registered by name and counts every Load.
type MemorySource struct {
	mu    sync.RWMutex
	files map[string]string
	// Delay holds each Load open so concurrent callers overlap.
	Delay time.Duration

	loads  atomic.Int64
	byName sync.Map // name -> *atomic.Int64
}

// NewMemorySource returns a source serving the given name -> CSV text map.
func NewMemorySource(files map[string]string) *MemorySource {
	m := &MemorySource{files: make(map[string]string, len(files))}
	for k, v := range files {
		m.files[k] = v
	}
	return m
}

// Set registers or replaces a file.
func (m *MemorySource) Set(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = content
}

// Load implements tabular.Source. Unknown names fail with
// tabular.ErrSourceUnavailable.
func (m *MemorySource) Load(ctx context.Context, name string) (*tabular.Table, error) {
	m.loads.Add(1)
	counter, _ := m.byName.LoadOrStore(name, new(atomic.Int64))
	counter.(*atomic.Int64).Add(1)

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.RLock()
	content, ok := m.files[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s: not registered", tabular.ErrSourceUnavailable, name)
	}
	return tabular.ReadCSV(strings.NewReader(content), name)
}

// Loads returns the total number of Load calls.
func (m *MemorySource) Loads() int { return int(m.loads.Load()) }

// LoadsOf returns the number of Load calls for one name.
func (m *MemorySource) LoadsOf(name string) int {
	counter, ok := m.byName.Load(name)
	if !ok {
		return 0
	}
	return int(counter.(*atomic.Int64).Load())
}

// Float returns a pointer to v for optional record fields.
func Float(v float64) *float64 { return &v }

// DraftHeader is the column list of the draft source.
const DraftHeader = "id,year,overall_pick,team,player,nationality,position,age,to_year,amateur_team," +
	"games_played,goals,assists,points,plus_minus,penalties_minutes,goalie_games_played," +
	"goalie_wins,goalie_losses,goalie_ties_overtime,save_percentage,goals_against_average,point_shares"

// DraftRow renders one skater line of the draft source. Empty strings stay
// blank cells.
func DraftRow(id, year, pick int, player, position, gamesPlayed, goals, assists, points string) string {
	return fmt.Sprintf("%d,%d,%d,BOS,%s,CA,%s,18,,Junior,%s,%s,%s,%s,,,,,,,,,",
		id, year, pick, player, position, gamesPlayed, goals, assists, points)
}

// DraftCSV joins rows under the draft header.
func DraftCSV(rows ...string) string {
	return DraftHeader + "\n" + strings.Join(rows, "\n") + "\n"
}
