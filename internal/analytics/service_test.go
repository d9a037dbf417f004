package analytics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/draft-analytics/internal/correlation"
	"github.com/albapepper/draft-analytics/internal/draft"
	"github.com/albapepper/draft-analytics/internal/metrics"
	"github.com/albapepper/draft-analytics/internal/roster"
	"github.com/albapepper/draft-analytics/internal/tabular"
	"github.com/albapepper/draft-analytics/internal/testutil"
)

func fixtureSource() *testutil.MemorySource {
	return testutil.NewMemorySource(map[string]string{
		"nhldraft.csv": testutil.DraftCSV(
			testutil.DraftRow(1, 2008, 1, "Steven Stamkos", "C", "1000", "500", "450", "950"),
			testutil.DraftRow(2, 2008, 2, "Drew Doughty", "D", "1100", "150", "450", "600"),
			testutil.DraftRow(3, 2008, 3, "Zach Bogosian", "D", "800", "60", "180", "240"),
			testutil.DraftRow(4, 2008, 40, "Late Pick", "LW", "", "", "", ""),
		),
		"seasons.csv":      "Season,TBL,LAK\n2010-11,103,98\n",
		"skaters_2010.csv": "team,name\nTBL,Steven Stamkos\nLAK,Drew Doughty\nLAK,Unknown Player\n",
	})
}

func newService(t *testing.T, src tabular.Source) *Service {
	t.Helper()
	repo := draft.NewRepository(src, "nhldraft.csv", nil)
	joiner := roster.NewJoiner(roster.Config{
		Teams:       map[string]string{"TBL": "Tampa Bay Lightning", "LAK": "Los Angeles Kings"},
		Champions:   map[int]string{2010: "Chicago Blackhawks"},
		FirstSeason: 2010,
		LastSeason:  2010,
	}, repo, src, nil)
	return New(Deps{
		Records: repo,
		Joiner:  joiner,
		Engine:  correlation.New(correlation.Config{MinYear: 2008, MaxYear: 2008}, nil),
		Metrics: metrics.New(prometheus.NewRegistry()),
	})
}

func TestService_Correlations(t *testing.T) {
	svc := newService(t, fixtureSource())
	results, err := svc.Correlations(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	points := results[3]
	assert.Equal(t, draft.MetricPoints, points.Stat)
	assert.Equal(t, 3, points.SampleSize)
	assert.Equal(t, 1.0, points.Correlation)
}

func TestService_TeamSeasons(t *testing.T) {
	svc := newService(t, fixtureSource())
	rows, err := svc.TeamSeasons(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "TBL", rows[0].TeamCode)
	assert.Equal(t, 1, rows[0].TopFivePickCount)
	assert.Equal(t, "LAK", rows[1].TeamCode)
	assert.Equal(t, 1, rows[1].FirstRoundPickCount)
	assert.False(t, rows[1].IsChampion)
}

func TestService_Positions(t *testing.T) {
	svc := newService(t, fixtureSource())

	t.Run("metric", func(t *testing.T) {
		points, err := svc.Positions(context.Background(), PositionQuery{Stat: "goals"})
		require.NoError(t, err)
		require.Len(t, points, 4)
		assert.Equal(t, 500.0, points[0].Value)
	})

	t.Run("regular share", func(t *testing.T) {
		points, err := svc.Positions(context.Background(), PositionQuery{Stat: StatRegularShare})
		require.NoError(t, err)
		assert.Equal(t, 100.0, points[0].Value)
		assert.Equal(t, 0.0, points[3].Value)
	})

	t.Run("year range excludes everything", func(t *testing.T) {
		points, err := svc.Positions(context.Background(), PositionQuery{Stat: "goals", MinYear: 2010, MaxYear: 2012})
		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, q := range []PositionQuery{
			{},
			{Stat: "hits"},
			{Stat: "goals", MinYear: 2010, MaxYear: 2000},
		} {
			points, err := svc.Positions(context.Background(), q)
			assert.ErrorIs(t, err, ErrInvalidQuery, "%+v", q)
			assert.Nil(t, points)
		}
	})
}

func TestService_Histogram(t *testing.T) {
	svc := newService(t, fixtureSource())

	points, err := svc.Histogram(context.Background(), HistogramQuery{Metric: "points"})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 0.95, points[0].Stat)
	assert.Equal(t, "2008-2012", points[0].YearGroup)

	_, err = svc.Histogram(context.Background(), HistogramQuery{Metric: "games_played"})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	defense, err := svc.Histogram(context.Background(), HistogramQuery{Metric: "points", Positions: []string{"D"}})
	require.NoError(t, err)
	assert.Len(t, defense, 2)

	_, err = svc.Histogram(context.Background(), HistogramQuery{Metric: "points", Positions: []string{""}})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestService_SourceFailureReturnsNil(t *testing.T) {
	src := fixtureSource()
	src.Set("seasons.csv", "Season,TBL\n2010-11,103,1\n")
	svc := newService(t, src)

	rows, err := svc.TeamSeasons(context.Background())
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, tabular.ErrMalformedRow)

	missing := newService(t, testutil.NewMemorySource(nil))
	results, err := missing.Correlations(context.Background())
	assert.Nil(t, results)
	assert.ErrorIs(t, err, tabular.ErrSourceUnavailable)
}

func TestService_Summarize(t *testing.T) {
	svc := newService(t, fixtureSource())
	sum := svc.Summarize(context.Background())

	assert.Equal(t, 4, sum.DraftRecords)
	assert.Equal(t, 4, sum.Correlations)
	assert.Equal(t, 2, sum.TeamSeasons)
	assert.Equal(t, 16, sum.PositionPoints)
	assert.Equal(t, 3, sum.HistogramPoints)
	assert.Empty(t, sum.Errors)
	assert.Equal(t,
		"draft_records=4 correlations=4 team_seasons=2 position_points=16 histogram_points=3 errors=0",
		sum.Summary())

	broken := newService(t, testutil.NewMemorySource(nil)).Summarize(context.Background())
	assert.Len(t, broken.Errors, 5)
	assert.Contains(t, broken.Summary(), "errors=5")
}
