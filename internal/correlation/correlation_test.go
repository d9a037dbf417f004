package correlation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/draft-analytics/internal/draft"
	"github.com/albapepper/draft-analytics/internal/testutil"
)

func skater(year, pick int, points float64) draft.Record {
	return draft.Record{Year: year, OverallPick: pick, Position: "C", Points: testutil.Float(points)}
}

func TestForYear(t *testing.T) {
	t.Run("inverse order gives -1", func(t *testing.T) {
		records := []draft.Record{skater(2000, 1, 10), skater(2000, 2, 20), skater(2000, 3, 30)}
		res := ForYear(2000, records, draft.MetricPoints)
		assert.Equal(t, -1.0, res.Correlation)
		assert.Equal(t, 3, res.SampleSize)
	})

	t.Run("aligned order gives +1", func(t *testing.T) {
		records := []draft.Record{skater(2000, 1, 30), skater(2000, 2, 20), skater(2000, 3, 10)}
		res := ForYear(2000, records, draft.MetricPoints)
		assert.Equal(t, 1.0, res.Correlation)
	})

	t.Run("single skater", func(t *testing.T) {
		res := ForYear(2000, []draft.Record{skater(2000, 1, 30)}, draft.MetricPoints)
		assert.Equal(t, 0.0, res.Correlation)
		assert.Equal(t, 1, res.SampleSize)
	})

	t.Run("absent metric excluded from sample", func(t *testing.T) {
		records := []draft.Record{
			skater(2000, 1, 30),
			{Year: 2000, OverallPick: 2, Position: "C"},
			skater(2000, 3, 10),
		}
		res := ForYear(2000, records, draft.MetricPoints)
		assert.Equal(t, 2, res.SampleSize)
		assert.Equal(t, 1.0, res.Correlation, "picks 1 and 3 rank 1 and 2")
	})

	t.Run("metric ties keep input order", func(t *testing.T) {
		// Equal points: stat ranks follow input order (pick 2 first, then 1).
		records := []draft.Record{skater(2000, 2, 10), skater(2000, 1, 10)}
		res := ForYear(2000, records, draft.MetricPoints)
		assert.Equal(t, -1.0, res.Correlation)
	})

	t.Run("pick ties share a rank", func(t *testing.T) {
		records := []draft.Record{skater(2000, 5, 30), skater(2000, 5, 20), skater(2000, 9, 10)}
		res := ForYear(2000, records, draft.MetricPoints)
		// draft ranks 1,1,3 vs stat ranks 1,2,3: sum d^2 = 1.
		assert.InDelta(t, 1-6.0/24, res.Correlation, 1e-12)
	})
}

func TestEngine_Compute(t *testing.T) {
	records := []draft.Record{
		skater(1962, 1, 100), // before window
		skater(1990, 1, 300),
		skater(1990, 2, 200),
		{Year: 1990, OverallPick: 3, Position: "G", Points: testutil.Float(999)},
		skater(1991, 1, 5),
		skater(2019, 1, 1), // after window
	}
	results := New(DefaultConfig(), nil).Compute(records)

	require.Len(t, results, 8)
	assert.Equal(t, 1990, results[0].Year)
	assert.Equal(t, draft.MetricGamesPlayed, results[0].Stat)
	assert.Equal(t, 0, results[0].SampleSize)

	points1990 := results[3]
	assert.Equal(t, draft.MetricPoints, points1990.Stat)
	assert.Equal(t, 2, points1990.SampleSize, "goalie excluded")
	assert.Equal(t, 1.0, points1990.Correlation)

	assert.Equal(t, 1991, results[4].Year)
	assert.Equal(t, 1, results[7].SampleSize)
	assert.Equal(t, 0.0, results[7].Correlation)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.Correlation, -1.0)
		assert.LessOrEqual(t, r.Correlation, 1.0)
		assert.GreaterOrEqual(t, r.SampleSize, 0)
	}
}

func TestEngine_CustomMetrics(t *testing.T) {
	eng := New(Config{MinYear: 2000, MaxYear: 2000, Metrics: []draft.Metric{draft.MetricPoints}}, nil)
	results := eng.Compute([]draft.Record{skater(2000, 1, 1), skater(2000, 2, 2)})
	require.Len(t, results, 1)
	assert.Equal(t, -1.0, results[0].Correlation)
}

type fakeSource struct {
	records []draft.Record
	err     error
}

func (f fakeSource) All(context.Context) ([]draft.Record, error) { return f.records, f.err }

func TestEngine_Run(t *testing.T) {
	eng := New(DefaultConfig(), nil)

	results, err := eng.Run(context.Background(), fakeSource{records: []draft.Record{skater(2000, 1, 1)}})
	require.NoError(t, err)
	assert.Len(t, results, 4)

	boom := errors.New("boom")
	results, err = eng.Run(context.Background(), fakeSource{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, results)
}
