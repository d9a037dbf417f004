// Package roster joins season standings, per-season skater rosters and the
// draft dataset into one row per team-season counting early draft picks.
package roster

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Pick thresholds: a first-round pick is under 31, a top-five pick under 5.
const (
	FirstRoundCutoff = 31
	TopFiveCutoff    = 5
)

// Column names of the standings and roster sources.
const (
	SeasonColumn = "Season"
	TeamColumn   = "team"
	NameColumn   = "name"
)

// ErrUnknownTeamCode means a source names a team missing from the
// configured full-name table.
var ErrUnknownTeamCode = errors.New("unknown team code")

// TeamCodeError reports the offending code and season.
type TeamCodeError struct {
	Code   string
	Season string
}

func (e *TeamCodeError) Error() string {
	return fmt.Sprintf("%v %q in season %s", ErrUnknownTeamCode, e.Code, e.Season)
}

func (e *TeamCodeError) Unwrap() error { return ErrUnknownTeamCode }

// Standing is one team's point total for one season.
type Standing struct {
	Season    string
	StartYear int
	TeamCode  string
	Points    float64
}

// Entry records that a player was on a team's roster in a season.
type Entry struct {
	Season     string
	TeamCode   string
	PlayerName string
}

// TeamSeason is the joined row for one team in one season.
type TeamSeason struct {
	Season              string  `json:"season"`
	TeamCode            string  `json:"team_code"`
	TeamFullName        string  `json:"team_full_name"`
	FirstRoundPickCount int     `json:"first_round_pick_count"`
	TopFivePickCount    int     `json:"top_five_pick_count"`
	Points              float64 `json:"points"`
	IsChampion          bool    `json:"is_champion"`
}

// SeasonLabel renders a start year as a season label, e.g. 2008 -> "2008-09".
func SeasonLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// SeasonStartYear parses the leading four-digit year of a season label.
func SeasonStartYear(label string) (int, error) {
	label = strings.TrimSpace(label)
	if len(label) < 4 {
		return 0, fmt.Errorf("season label %q too short", label)
	}
	y, err := strconv.Atoi(label[:4])
	if err != nil {
		return 0, fmt.Errorf("season label %q: %w", label, err)
	}
	return y, nil
}

// NameKey normalizes a player name for matching across sources.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
