package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/draft-analytics/internal/draft"
	"github.com/albapepper/draft-analytics/internal/tabular"
)

// Default season window and file names.
const (
	DefaultFirstSeason   = 2008
	DefaultLastSeason    = 2021
	DefaultStandingsFile = "seasons.csv"
	DefaultRosterPattern = "skaters_%d.csv"
)

// Config carries the static tables and file layout of a join.
type Config struct {
	// Teams maps a team abbreviation to its full name.
	Teams map[string]string
	// Champions maps a season start year to the champion's full name.
	Champions map[int]string

	FirstSeason   int
	LastSeason    int
	StandingsFile string
	// RosterPattern is formatted with the season start year.
	RosterPattern string
}

// RecordSource supplies the draft dataset.
type RecordSource interface {
	All(ctx context.Context) ([]draft.Record, error)
}

// Joiner builds TeamSeason rows.
type Joiner struct {
	cfg     Config
	records RecordSource
	source  tabular.Source
	logger  *slog.Logger
}

// NewJoiner returns a Joiner. Zero-valued layout fields take the defaults.
func NewJoiner(cfg Config, records RecordSource, source tabular.Source, logger *slog.Logger) *Joiner {
	if cfg.FirstSeason == 0 {
		cfg.FirstSeason = DefaultFirstSeason
	}
	if cfg.LastSeason == 0 {
		cfg.LastSeason = DefaultLastSeason
	}
	if cfg.StandingsFile == "" {
		cfg.StandingsFile = DefaultStandingsFile
	}
	if cfg.RosterPattern == "" {
		cfg.RosterPattern = DefaultRosterPattern
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Joiner{cfg: cfg, records: records, source: source, logger: logger}
}

// Join loads the draft dataset, the standings and every roster in the
// season window concurrently, then merges them. Any load or schema error
// aborts the join and no rows are returned.
func (j *Joiner) Join(ctx context.Context) ([]TeamSeason, error) {
	start := time.Now()
	seasons := j.cfg.LastSeason - j.cfg.FirstSeason + 1
	if seasons < 0 {
		seasons = 0
	}

	var (
		records   []draft.Record
		standings *tabular.Table
		rosters   = make([]*tabular.Table, seasons)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = j.records.All(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		standings, err = j.source.Load(gctx, j.cfg.StandingsFile)
		if err != nil {
			return fmt.Errorf("load standings: %w", err)
		}
		return nil
	})
	for i := range seasons {
		name := fmt.Sprintf(j.cfg.RosterPattern, j.cfg.FirstSeason+i)
		g.Go(func() error {
			t, err := j.source.Load(gctx, name)
			if err != nil {
				return fmt.Errorf("load roster: %w", err)
			}
			rosters[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("season join: %w", err)
	}

	picks := PickLookup(records)
	counts := make(map[teamSeasonKey]*pickSets)
	entries := 0
	for i, table := range rosters {
		year := j.cfg.FirstSeason + i
		for _, e := range Entries(SeasonLabel(year), table) {
			entries++
			countEntry(counts, picks, year, e)
		}
	}

	rows, err := j.merge(standings, counts)
	if err != nil {
		return nil, fmt.Errorf("season join: %w", err)
	}

	j.logger.Info("Season join complete",
		"draft_records", len(records), "roster_entries", entries,
		"team_seasons", len(rows), "duration", time.Since(start).Round(time.Millisecond))
	return rows, nil
}

// PickLookup maps a normalized player name to an overall pick. When a name
// repeats, the last record wins.
func PickLookup(records []draft.Record) map[string]int {
	picks := make(map[string]int, len(records))
	for _, r := range records {
		picks[NameKey(r.Player)] = r.OverallPick
	}
	return picks
}

// Entries reads a roster table. Rows with a blank team or name are skipped.
func Entries(season string, table *tabular.Table) []Entry {
	if table == nil {
		return nil
	}
	out := make([]Entry, 0, len(table.Rows))
	for _, row := range table.Rows {
		team := strings.TrimSpace(row[TeamColumn])
		name := strings.TrimSpace(row[NameColumn])
		if team == "" || name == "" {
			continue
		}
		out = append(out, Entry{Season: season, TeamCode: team, PlayerName: name})
	}
	return out
}

// Standings reads a standings table: one row per season label, one column
// per team. Blank cells (team not in the league that season) are skipped.
// Rows whose season start year fails keep, or cannot be parsed, are dropped
// before their cells are read. A nil keep accepts every parsable season.
func Standings(table *tabular.Table, keep func(startYear int) bool) ([]Standing, []string, error) {
	var (
		out      []Standing
		dropped  []string
		seenDrop = map[string]bool{}
	)
	for i, row := range table.Rows {
		season := strings.TrimSpace(row[SeasonColumn])
		startYear, err := SeasonStartYear(season)
		if err != nil {
			if !seenDrop[season] {
				seenDrop[season] = true
				dropped = append(dropped, season)
			}
			continue
		}
		if keep != nil && !keep(startYear) {
			continue
		}
		for _, col := range table.Columns {
			if col == SeasonColumn {
				continue
			}
			raw := strings.TrimSpace(row[col])
			if raw == "" {
				continue
			}
			pts, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, nil, &draft.RecordError{Line: i + 2, Field: col, Value: raw, Err: err}
			}
			out = append(out, Standing{Season: season, StartYear: startYear, TeamCode: col, Points: pts})
		}
	}
	return out, dropped, nil
}

// teamSeasonKey uses the start year so standings labels such as "2008-09"
// and "2008-2009" match the same roster.
type teamSeasonKey struct {
	year int
	team string
}

// pickSets hold distinct normalized names so each player counts once per
// team-season.
type pickSets struct {
	firstRound map[string]struct{}
	topFive    map[string]struct{}
}

func countEntry(counts map[teamSeasonKey]*pickSets, picks map[string]int, year int, e Entry) {
	key := teamSeasonKey{year: year, team: e.TeamCode}
	sets, ok := counts[key]
	if !ok {
		sets = &pickSets{firstRound: map[string]struct{}{}, topFive: map[string]struct{}{}}
		counts[key] = sets
	}
	name := NameKey(e.PlayerName)
	pick, drafted := picks[name]
	if !drafted {
		return
	}
	if pick < FirstRoundCutoff {
		sets.firstRound[name] = struct{}{}
	}
	if pick < TopFiveCutoff {
		sets.topFive[name] = struct{}{}
	}
}

func (j *Joiner) merge(standings *tabular.Table, counts map[teamSeasonKey]*pickSets) ([]TeamSeason, error) {
	list, unparsable, err := Standings(standings, j.inWindow)
	if err != nil {
		return nil, fmt.Errorf("parse standings: %w", err)
	}
	for _, season := range unparsable {
		j.logger.Warn("Skipping unparsable season", "season", season)
	}

	rows := make([]TeamSeason, 0, len(list))
	for _, s := range list {
		fullName, ok := j.cfg.Teams[s.TeamCode]
		if !ok {
			return nil, &TeamCodeError{Code: s.TeamCode, Season: s.Season}
		}

		row := TeamSeason{
			Season:       s.Season,
			TeamCode:     s.TeamCode,
			TeamFullName: fullName,
			Points:       s.Points,
		}
		row.IsChampion = j.cfg.Champions[s.StartYear] == fullName
		if sets, ok := counts[teamSeasonKey{year: s.StartYear, team: s.TeamCode}]; ok {
			row.FirstRoundPickCount = len(sets.firstRound)
			row.TopFivePickCount = len(sets.topFive)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (j *Joiner) inWindow(startYear int) bool {
	return startYear >= j.cfg.FirstSeason && startYear <= j.cfg.LastSeason
}
