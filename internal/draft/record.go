// Package draft holds the drafted-player dataset: the typed Record, its
// validated parse from a tabular row, and the memoized Repository every
// engine reads from.
package draft

import (
	"fmt"
	"strings"
)

// DefaultAge is assumed when a row carries no usable age.
const DefaultAge = 19

// Position codes as they appear in the draft source.
const (
	PositionCenter    = "C"
	PositionLeftWing  = "LW"
	PositionRightWing = "RW"
	PositionDefense   = "D"
	PositionGoalie    = "G"
)

// Group is the coarse position bucket used by per-pick summaries.
type Group string

const (
	GroupAll      Group = "all"
	GroupForwards Group = "forwards"
	GroupDefense  Group = "defense"
	GroupGoalies  Group = "goalies"
	GroupOther    Group = "other"
)

// Record is one drafted player. Optional numeric fields are nil when the
// source cell was blank; nil is never read as zero.
type Record struct {
	ID          int    `json:"id"`
	Year        int    `json:"year"`
	OverallPick int    `json:"overall_pick"`
	Team        string `json:"team"`
	Player      string `json:"player"`
	Nationality string `json:"nationality"`
	Position    string `json:"position"`
	Age         int    `json:"age"`
	ToYear      *int   `json:"to_year,omitempty"`
	AmateurTeam string `json:"amateur_team,omitempty"`

	GamesPlayed         *float64 `json:"games_played,omitempty"`
	Goals               *float64 `json:"goals,omitempty"`
	Assists             *float64 `json:"assists,omitempty"`
	Points              *float64 `json:"points,omitempty"`
	PlusMinus           *float64 `json:"plus_minus,omitempty"`
	PenaltyMinutes      *float64 `json:"penalties_minutes,omitempty"`
	GoalieGamesPlayed   *float64 `json:"goalie_games_played,omitempty"`
	GoalieWins          *float64 `json:"goalie_wins,omitempty"`
	GoalieLosses        *float64 `json:"goalie_losses,omitempty"`
	GoalieTiesOvertime  *float64 `json:"goalie_ties_overtime,omitempty"`
	SavePercentage      *float64 `json:"save_percentage,omitempty"`
	GoalsAgainstAverage *float64 `json:"goals_against_average,omitempty"`
	PointShares         *float64 `json:"point_shares,omitempty"`
}

// Key is the natural identity of a record within the dataset.
type Key struct {
	Year        int
	OverallPick int
}

// Key returns the (year, overall pick) pair.
func (r Record) Key() Key { return Key{Year: r.Year, OverallPick: r.OverallPick} }

// IsGoalie reports whether the record is a goalie.
func (r Record) IsGoalie() bool { return PositionGroup(r.Position) == GroupGoalies }

// Value returns the named metric and whether it is present.
func (r Record) Value(m Metric) (float64, bool) {
	if m == MetricAge {
		return float64(r.Age), true
	}
	p := r.field(m)
	if p == nil {
		return 0, false
	}
	return *p, true
}

func (r Record) field(m Metric) *float64 {
	switch m {
	case MetricGamesPlayed:
		return r.GamesPlayed
	case MetricGoals:
		return r.Goals
	case MetricAssists:
		return r.Assists
	case MetricPoints:
		return r.Points
	case MetricPlusMinus:
		return r.PlusMinus
	case MetricPenaltyMinutes:
		return r.PenaltyMinutes
	case MetricGoalieGamesPlayed:
		return r.GoalieGamesPlayed
	case MetricGoalieWins:
		return r.GoalieWins
	case MetricGoalieLosses:
		return r.GoalieLosses
	case MetricGoalieTiesOvertime:
		return r.GoalieTiesOvertime
	case MetricSavePercentage:
		return r.SavePercentage
	case MetricGoalsAgainstAverage:
		return r.GoalsAgainstAverage
	case MetricPointShares:
		return r.PointShares
	}
	return nil
}

// PositionGroup maps a position code to its bucket. Compound codes such as
// "C/LW" are classified by their first component.
func PositionGroup(position string) Group {
	code := strings.ToUpper(strings.TrimSpace(position))
	if i := strings.IndexAny(code, "/ "); i > 0 {
		code = code[:i]
	}
	switch code {
	case PositionCenter, PositionLeftWing, PositionRightWing:
		return GroupForwards
	case PositionDefense:
		return GroupDefense
	case PositionGoalie:
		return GroupGoalies
	}
	return GroupOther
}

// Metric names a numeric column of the draft source.
type Metric string

const (
	MetricGamesPlayed         Metric = "games_played"
	MetricGoals               Metric = "goals"
	MetricAssists             Metric = "assists"
	MetricPoints              Metric = "points"
	MetricPlusMinus           Metric = "plus_minus"
	MetricPenaltyMinutes      Metric = "penalties_minutes"
	MetricGoalieGamesPlayed   Metric = "goalie_games_played"
	MetricGoalieWins          Metric = "goalie_wins"
	MetricGoalieLosses        Metric = "goalie_losses"
	MetricGoalieTiesOvertime  Metric = "goalie_ties_overtime"
	MetricSavePercentage      Metric = "save_percentage"
	MetricGoalsAgainstAverage Metric = "goals_against_average"
	MetricPointShares         Metric = "point_shares"
	MetricAge                 Metric = "age"
)

var metrics = []Metric{
	MetricGamesPlayed, MetricGoals, MetricAssists, MetricPoints,
	MetricPlusMinus, MetricPenaltyMinutes, MetricGoalieGamesPlayed,
	MetricGoalieWins, MetricGoalieLosses, MetricGoalieTiesOvertime,
	MetricSavePercentage, MetricGoalsAgainstAverage, MetricPointShares,
	MetricAge,
}

// Metrics lists every known metric in source column order.
func Metrics() []Metric {
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}

// ParseMetric validates a metric name.
func ParseMetric(s string) (Metric, error) {
	for _, m := range metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}
