package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/draft-analytics/internal/testutil"
)

func writeData(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"nhldraft.csv": testutil.DraftCSV(
			testutil.DraftRow(1, 2008, 1, "Steven Stamkos", "C", "1000", "500", "450", "950"),
			testutil.DraftRow(2, 2008, 2, "Drew Doughty", "D", "1100", "150", "450", "600"),
		),
		"seasons.csv":      "Season,TBL\n2008-09,66\n",
		"skaters_2008.csv": "team,name\nTBL,Steven Stamkos\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	t.Setenv("DATA_DIR", dir)
	t.Setenv("FIRST_SEASON", "2008")
	t.Setenv("LAST_SEASON", "2008")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestCorrelationsCommand(t *testing.T) {
	writeData(t)
	out, err := run(t, "correlations")
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 4)
	assert.Equal(t, "games_played", results[0]["stat"])
}

func TestTeamSeasonsCommand(t *testing.T) {
	writeData(t)
	out, err := run(t, "team-seasons", "--pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  {")
	assert.Contains(t, out, `"top_five_pick_count": 1`)
}

func TestPositionsCommand(t *testing.T) {
	writeData(t)
	out, err := run(t, "positions", "--stat", "goals", "--split")
	require.NoError(t, err)

	var points []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	assert.Len(t, points, 8)

	_, err = run(t, "positions", "--stat", "hits")
	assert.Error(t, err)
}

func TestHistogramCommand(t *testing.T) {
	writeData(t)
	out, err := run(t, "histogram", "--metric", "goals", "--bins")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"year_group":"2008-2012","stat":0.14,"count":1},{"year_group":"2008-2012","stat":0.5,"count":1}]`,
		out)

	out, err = run(t, "histogram", "--metric", "goals", "--positions", "C")
	require.NoError(t, err)
	var points []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	require.Len(t, points, 1)
	assert.Equal(t, 0.5, points[0]["stat"])
}

func TestSummaryCommand(t *testing.T) {
	writeData(t)
	out, err := run(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, `"team_seasons":1`)

	t.Setenv("DATA_DIR", t.TempDir())
	_, err = run(t, "summary")
	assert.ErrorContains(t, err, "5 dataset(s) failed")
}
