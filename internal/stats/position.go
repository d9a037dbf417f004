package stats

import (
	"errors"
	"sort"

	"github.com/albapepper/draft-analytics/internal/draft"
)

// MaxDraftPosition is the deepest overall pick summarized per position.
const MaxDraftPosition = 217

// StatConfig selects what a position summary shows. Custom, when set,
// produces Value; Metric still drives StandardDeviation.
type StatConfig struct {
	Metric draft.Metric
	Custom AggregateFunc
}

// PositionOptions controls grouping.
type PositionOptions struct {
	// SplitByPosition adds forwards, defense and goalies rows next to "all".
	SplitByPosition bool
	// MaxPick overrides MaxDraftPosition when positive.
	MaxPick int
}

// PositionPoint summarizes the players taken at one overall pick.
type PositionPoint struct {
	DraftPosition     int         `json:"draft_position"`
	Group             draft.Group `json:"group"`
	Value             float64     `json:"value"`
	StandardDeviation float64     `json:"standard_deviation"`
	Count             int         `json:"count"`
}

var splitGroups = []draft.Group{draft.GroupForwards, draft.GroupDefense, draft.GroupGoalies}

// PositionAggregates groups records by overall pick and summarizes each
// group. Output is ordered by pick, then all/forwards/defense/goalies.
func PositionAggregates(records []draft.Record, cfg StatConfig, opts PositionOptions) ([]PositionPoint, error) {
	if cfg.Metric == "" && cfg.Custom == nil {
		return nil, errors.New("position aggregates: metric or custom aggregate required")
	}
	maxPick := opts.MaxPick
	if maxPick <= 0 {
		maxPick = MaxDraftPosition
	}

	byPick := make(map[int][]draft.Record)
	for _, r := range records {
		if r.OverallPick < 1 || r.OverallPick > maxPick {
			continue
		}
		byPick[r.OverallPick] = append(byPick[r.OverallPick], r)
	}
	picks := make([]int, 0, len(byPick))
	for p := range byPick {
		picks = append(picks, p)
	}
	sort.Ints(picks)

	var out []PositionPoint
	for _, pick := range picks {
		group := byPick[pick]
		out = append(out, summarize(pick, draft.GroupAll, group, cfg))
		if !opts.SplitByPosition {
			continue
		}
		for _, g := range splitGroups {
			out = append(out, summarize(pick, g, inGroup(group, g), cfg))
		}
	}
	return out, nil
}

func summarize(pick int, g draft.Group, records []draft.Record, cfg StatConfig) PositionPoint {
	p := PositionPoint{DraftPosition: pick, Group: g, Count: len(records)}
	if cfg.Custom != nil {
		p.Value = CustomAggregate(records, cfg.Custom)
	} else {
		p.Value = RankAverage(records, cfg.Metric)
	}
	if cfg.Metric != "" {
		p.StandardDeviation = PopulationStdDev(Values(records, cfg.Metric))
	}
	return p
}

func inGroup(records []draft.Record, g draft.Group) []draft.Record {
	var out []draft.Record
	for _, r := range records {
		if draft.PositionGroup(r.Position) == g {
			out = append(out, r)
		}
	}
	return out
}
