package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/draft-analytics/internal/testutil"
)

func TestInstrumentSource(t *testing.T) {
	m := New(prometheus.NewRegistry())
	mem := testutil.NewMemorySource(map[string]string{
		"ok.csv":  "a,b\n1,2\n3,4\n",
		"bad.csv": "a,b\n1,2,3\n",
	})
	src := m.InstrumentSource(mem)

	table, err := src.Load(context.Background(), "ok.csv")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)

	_, err = src.Load(context.Background(), "bad.csv")
	require.Error(t, err)
	_, err = src.Load(context.Background(), "missing.csv")
	require.Error(t, err)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.sourceLoads.WithLabelValues("ok.csv", "success")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.sourceLoads.WithLabelValues("bad.csv", "malformed")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.sourceLoads.WithLabelValues("missing.csv", "unavailable")))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.sourceRows.WithLabelValues("ok.csv")))
	assert.Equal(t, 3, promtest.CollectAndCount(m.sourceLoadDuration))
	assert.Equal(t, 3, mem.Loads())
}

func TestObserveDataset(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveDataset("correlations", 224, 15*time.Millisecond)
	m.ObserveDataset("correlations", 220, 5*time.Millisecond)

	assert.Equal(t, 220.0, promtest.ToFloat64(m.datasetRows.WithLabelValues("correlations")))
	assert.Equal(t, 1, promtest.CollectAndCount(m.datasetDuration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	mem := testutil.NewMemorySource(nil)
	assert.Same(t, mem, m.InstrumentSource(mem))
	assert.NotPanics(t, func() { m.ObserveDataset("x", 1, time.Second) })
}
