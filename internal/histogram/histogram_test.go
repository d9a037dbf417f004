package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/draft-analytics/internal/draft"
	"github.com/albapepper/draft-analytics/internal/testutil"
)

func TestYearGroup(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{1963, "1963-1967"},
		{1967, "1963-1967"},
		{1968, "1968-1972"},
		{2003, "2003-2007"},
		{2018, "2018-2022"},
		{2022, "2018-2022"},
		{2023, "2023-2027"},
		{1962, "1958-1962"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, YearGroup(tt.year), "year %d", tt.year)
	}
}

func TestBuild(t *testing.T) {
	records := []draft.Record{
		{Year: 2000, Player: "A", GamesPlayed: testutil.Float(3), Points: testutil.Float(2), Goals: testutil.Float(1)},
		{Year: 2001, Player: "B", GamesPlayed: testutil.Float(0), Points: testutil.Float(5)},
		{Year: 2002, Player: "C", Points: testutil.Float(5)},
		{Year: 1970, Player: "D", GamesPlayed: testutil.Float(1000), Points: testutil.Float(1)},
		{Year: 1970, Player: "E", GamesPlayed: testutil.Float(100)},
	}

	points, err := Build(records, draft.MetricPoints)
	require.NoError(t, err)
	require.Len(t, points, 1, "no games, zero rate and absent scoring are dropped")
	assert.Equal(t, Point{Year: 2000, Player: "A", Stat: 0.67, YearGroup: "1998-2002"}, points[0])

	goals, err := Build(records, draft.MetricGoals)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 0.33, goals[0].Stat)

	_, err = Build(records, draft.MetricAge)
	assert.ErrorIs(t, err, ErrUnsupportedMetric)
}

func TestBins(t *testing.T) {
	points := []Point{
		{YearGroup: "2003-2007", Stat: 0.5},
		{YearGroup: "1963-1967", Stat: 0.9},
		{YearGroup: "2003-2007", Stat: 0.5},
		{YearGroup: "2003-2007", Stat: 0.1},
	}
	assert.Equal(t, []Bin{
		{YearGroup: "1963-1967", Stat: 0.9, Count: 1},
		{YearGroup: "2003-2007", Stat: 0.1, Count: 1},
		{YearGroup: "2003-2007", Stat: 0.5, Count: 2},
	}, Bins(points))
	assert.Empty(t, Bins(nil))
}
