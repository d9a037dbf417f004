package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "nhldraft.csv", cfg.DraftFile)
	assert.Equal(t, "seasons.csv", cfg.StandingsFile)
	assert.Equal(t, "skaters_%d.csv", cfg.RosterPattern)
	assert.Equal(t, 2008, cfg.FirstSeason)
	assert.Equal(t, 2021, cfg.LastSeason)
	assert.Equal(t, 1963, cfg.CorrelationMinYear)
	assert.Equal(t, 2018, cfg.CorrelationMaxYear)
	assert.Equal(t, 300, cfg.RegularGamesThreshold)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/nhl")
	t.Setenv("FIRST_SEASON", "2010")
	t.Setenv("LAST_SEASON", "2012")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/nhl", cfg.DataDir)
	assert.Equal(t, 2010, cfg.FirstSeason)
	assert.Equal(t, 2012, cfg.LastSeason)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.CacheEnabled)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"inverted season window", "LAST_SEASON", "2000"},
		{"inverted correlation window", "CORRELATION_MAX_YEAR", "1900"},
		{"pattern without year verb", "ROSTER_PATTERN", "skaters.csv"},
		{"unknown environment", "ENVIRONMENT", "qa"},
		{"zero threshold", "REGULAR_GAMES_THRESHOLD", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.ErrorContains(t, err, "configuration validation failed")
		})
	}
}

func TestDefaultLeague(t *testing.T) {
	league := DefaultLeague()
	assert.Len(t, league.Teams, 34)
	assert.Equal(t, "Boston Bruins", league.Teams["BOS"])
	assert.Equal(t, "Atlanta Thrashers", league.Teams["ATL"])
	assert.Len(t, league.Champions, 14)
	assert.Equal(t, "Boston Bruins", league.Champions[2011])

	for year, champ := range league.Champions {
		assert.Contains(t, mapValues(league.Teams), champ, "champion %d must be a known team", year)
	}

	league.Teams["BOS"] = "changed"
	assert.Equal(t, "Boston Bruins", DefaultLeague().Teams["BOS"], "defaults are copied")
}

func TestLoadLeague(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		league, err := LoadLeague("")
		require.NoError(t, err)
		assert.Equal(t, DefaultLeague(), league)
	})

	t.Run("merges over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "league.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"teams:\n  UTA: Utah Hockey Club\n  ARI: Arizona Coyotes\nchampions:\n  2022: Colorado Avalanche\n"), 0o644))

		league, err := LoadLeague(path)
		require.NoError(t, err)
		assert.Equal(t, "Utah Hockey Club", league.Teams["UTA"])
		assert.Equal(t, "Boston Bruins", league.Teams["BOS"])
		assert.Equal(t, "Colorado Avalanche", league.Champions[2022])
	})

	t.Run("blank champion rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "league.yaml")
		require.NoError(t, os.WriteFile(path, []byte("champions:\n  2022: \"\"\n"), 0o644))

		_, err := LoadLeague(path)
		assert.ErrorContains(t, err, "league validation failed")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLeague(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "league.yaml")
		require.NoError(t, os.WriteFile(path, []byte("teams: [unclosed"), 0o644))
		_, err := LoadLeague(path)
		assert.ErrorContains(t, err, "parse league file")
	})
}

func TestRosterConfig(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	rc := cfg.RosterConfig(DefaultLeague())
	assert.Equal(t, 2008, rc.FirstSeason)
	assert.Equal(t, "skaters_%d.csv", rc.RosterPattern)
	assert.Equal(t, "Tampa Bay Lightning", rc.Champions[2021])
}

func mapValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
