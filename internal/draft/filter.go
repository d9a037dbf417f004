package draft

// DefaultRegularThreshold is the career games-played mark of a regular player.
const DefaultRegularThreshold = 300

// FilterByYearRange returns the records drafted in [minYear, maxYear].
func FilterByYearRange(records []Record, minYear, maxYear int) []Record {
	out := []Record{}
	for _, r := range records {
		if r.Year >= minYear && r.Year <= maxYear {
			out = append(out, r)
		}
	}
	return out
}

// FilterOutGoalies drops goalies.
func FilterOutGoalies(records []Record) []Record {
	out := []Record{}
	for _, r := range records {
		if !r.IsGoalie() {
			out = append(out, r)
		}
	}
	return out
}

// FilterByPositions keeps records whose exact position code is listed.
func FilterByPositions(records []Record, positions []string) []Record {
	allowed := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		allowed[p] = struct{}{}
	}
	out := []Record{}
	for _, r := range records {
		if _, ok := allowed[r.Position]; ok {
			out = append(out, r)
		}
	}
	return out
}

// GroupByYear buckets records by draft year, preserving input order within
// each bucket.
func GroupByYear(records []Record) map[int][]Record {
	groups := make(map[int][]Record)
	for _, r := range records {
		groups[r.Year] = append(groups[r.Year], r)
	}
	return groups
}

// IsRegularPlayer reports whether games played is recorded and reaches
// threshold.
func IsRegularPlayer(r Record, threshold int) bool {
	return r.GamesPlayed != nil && *r.GamesPlayed >= float64(threshold)
}

// PerGameStats are career scoring rates.
type PerGameStats struct {
	GoalsPerGame   float64
	AssistsPerGame float64
	PointsPerGame  float64
}

// PerGame returns per-game scoring rates. ok is false when games played is
// absent or zero; a missing scoring column counts as no scoring once the
// player has games on record.
func PerGame(r Record) (stats PerGameStats, ok bool) {
	if r.GamesPlayed == nil || *r.GamesPlayed == 0 {
		return PerGameStats{}, false
	}
	gp := *r.GamesPlayed
	return PerGameStats{
		GoalsPerGame:   deref(r.Goals) / gp,
		AssistsPerGame: deref(r.Assists) / gp,
		PointsPerGame:  deref(r.Points) / gp,
	}, true
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
