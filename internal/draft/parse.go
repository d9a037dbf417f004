package draft

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/albapepper/draft-analytics/internal/tabular"
)

// ErrInvalidRecord means a required identity field failed to parse.
var ErrInvalidRecord = errors.New("invalid record")

// RecordError names the field that made a row unusable.
type RecordError struct {
	Line  int // 0 when the row is not tied to a file line
	Field string
	Value string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %s=%q: %v", e.Line, ErrInvalidRecord, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%v: %s=%q: %v", ErrInvalidRecord, e.Field, e.Value, e.Err)
}

// Unwrap exposes ErrInvalidRecord and the strconv cause.
func (e *RecordError) Unwrap() []error { return []error{ErrInvalidRecord, e.Err} }

// ParseRecord builds a Record from a raw draft row. id, year and
// overall_pick are required; every other numeric column degrades to nil.
func ParseRecord(row tabular.Row) (Record, error) {
	id, err := requiredInt(row, "id")
	if err != nil {
		return Record{}, err
	}
	year, err := requiredInt(row, "year")
	if err != nil {
		return Record{}, err
	}
	pick, err := requiredInt(row, "overall_pick")
	if err != nil {
		return Record{}, err
	}

	age := DefaultAge
	if v, ok := optionalInt(row["age"]); ok {
		age = v
	}
	var toYear *int
	if v, ok := optionalInt(row["to_year"]); ok {
		toYear = &v
	}

	return Record{
		ID:          id,
		Year:        year,
		OverallPick: pick,
		Team:        strings.TrimSpace(row["team"]),
		Player:      strings.TrimSpace(row["player"]),
		Nationality: strings.TrimSpace(row["nationality"]),
		Position:    strings.TrimSpace(row["position"]),
		Age:         age,
		ToYear:      toYear,
		AmateurTeam: strings.TrimSpace(row["amateur_team"]),

		GamesPlayed:         optionalFloat(row["games_played"]),
		Goals:               optionalFloat(row["goals"]),
		Assists:             optionalFloat(row["assists"]),
		Points:              optionalFloat(row["points"]),
		PlusMinus:           optionalFloat(row["plus_minus"]),
		PenaltyMinutes:      optionalFloat(row["penalties_minutes"]),
		GoalieGamesPlayed:   optionalFloat(row["goalie_games_played"]),
		GoalieWins:          optionalFloat(row["goalie_wins"]),
		GoalieLosses:        optionalFloat(row["goalie_losses"]),
		GoalieTiesOvertime:  optionalFloat(row["goalie_ties_overtime"]),
		SavePercentage:      optionalFloat(row["save_percentage"]),
		GoalsAgainstAverage: optionalFloat(row["goals_against_average"]),
		PointShares:         optionalFloat(row["point_shares"]),
	}, nil
}

// ParseRecords parses every row of a draft table. The first invalid row
// aborts the parse; its file line is reported.
func ParseRecords(table *tabular.Table) ([]Record, error) {
	records := make([]Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		rec, err := ParseRecord(row)
		if err != nil {
			var re *RecordError
			if errors.As(err, &re) {
				re.Line = i + 2 // header is line 1
			}
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func requiredInt(row tabular.Row, field string) (int, error) {
	raw := row[field]
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &RecordError{Field: field, Value: raw, Err: err}
	}
	return n, nil
}

func optionalInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

func optionalFloat(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
