package config

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/albapepper/draft-analytics/internal/roster"
)

// --------------------------------------------------------------------------
// League tables: team names and Stanley Cup champions
// --------------------------------------------------------------------------

// League holds the static lookup tables of the season join.
type League struct {
	// Teams maps abbreviation to full name.
	Teams map[string]string `yaml:"teams" validate:"required,min=1,dive,keys,required,endkeys,required"`
	// Champions maps season start year to the champion's full name.
	Champions map[int]string `yaml:"champions" validate:"dive,keys,gte=1900,endkeys,required"`
}

var defaultTeams = map[string]string{
	"ANA": "Anaheim Ducks",
	"ARI": "Arizona Coyotes",
	"ATL": "Atlanta Thrashers",
	"BOS": "Boston Bruins",
	"BUF": "Buffalo Sabres",
	"CAR": "Carolina Hurricanes",
	"CBJ": "Columbus Blue Jackets",
	"CGY": "Calgary Flames",
	"CHI": "Chicago Blackhawks",
	"COL": "Colorado Avalanche",
	"DAL": "Dallas Stars",
	"DET": "Detroit Red Wings",
	"EDM": "Edmonton Oilers",
	"FLA": "Florida Panthers",
	"LAK": "Los Angeles Kings",
	"MIN": "Minnesota Wild",
	"MTL": "Montreal Canadiens",
	"NJD": "New Jersey Devils",
	"NSH": "Nashville Predators",
	"NYI": "New York Islanders",
	"NYR": "New York Rangers",
	"OTT": "Ottawa Senators",
	"PHI": "Philadelphia Flyers",
	"PHX": "Phoenix Coyotes",
	"PIT": "Pittsburgh Penguins",
	"SEA": "Seattle Kraken",
	"SJS": "San Jose Sharks",
	"STL": "St. Louis Blues",
	"TBL": "Tampa Bay Lightning",
	"TOR": "Toronto Maple Leafs",
	"VAN": "Vancouver Canucks",
	"VEG": "Vegas Golden Knights",
	"WPG": "Winnipeg Jets",
	"WSH": "Washington Capitals",
}

var defaultChampions = map[int]string{
	2008: "Detroit Red Wings",
	2009: "Pittsburgh Penguins",
	2010: "Chicago Blackhawks",
	2011: "Boston Bruins",
	2012: "Los Angeles Kings",
	2013: "Chicago Blackhawks",
	2014: "Los Angeles Kings",
	2015: "Chicago Blackhawks",
	2016: "Pittsburgh Penguins",
	2017: "Pittsburgh Penguins",
	2018: "Washington Capitals",
	2019: "St. Louis Blues",
	2020: "Tampa Bay Lightning",
	2021: "Tampa Bay Lightning",
}

// DefaultLeague returns a copy of the built-in tables.
func DefaultLeague() League {
	return League{Teams: maps.Clone(defaultTeams), Champions: maps.Clone(defaultChampions)}
}

// LoadLeague reads a YAML league file. Entries in the file are merged over
// the defaults, so a file may add or rename teams without restating all.
// An empty path returns DefaultLeague.
func LoadLeague(path string) (League, error) {
	league := DefaultLeague()
	if path == "" {
		return league, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return League{}, fmt.Errorf("read league file: %w", err)
	}
	var override League
	if err := yaml.Unmarshal(data, &override); err != nil {
		return League{}, fmt.Errorf("parse league file %s: %w", path, err)
	}
	maps.Copy(league.Teams, override.Teams)
	maps.Copy(league.Champions, override.Champions)

	if err := validate.Struct(league); err != nil {
		return League{}, fmt.Errorf("league validation failed: %w", err)
	}
	return league, nil
}

// RosterConfig builds the season join configuration.
func (c *Config) RosterConfig(league League) roster.Config {
	return roster.Config{
		Teams:         league.Teams,
		Champions:     league.Champions,
		FirstSeason:   c.FirstSeason,
		LastSeason:    c.LastSeason,
		StandingsFile: c.StandingsFile,
		RosterPattern: c.RosterPattern,
	}
}
