// Package metrics exposes Prometheus instrumentation for source loads and
// the computed datasets.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/albapepper/draft-analytics/internal/tabular"
)

// Metrics holds the collectors. A nil *Metrics records nothing.
type Metrics struct {
	sourceLoads        *prometheus.CounterVec
	sourceLoadDuration *prometheus.HistogramVec
	sourceRows         *prometheus.GaugeVec
	datasetRows        *prometheus.GaugeVec
	datasetDuration    *prometheus.HistogramVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// to serve them from promhttp.Handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		sourceLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "draft_source_loads_total",
				Help: "Total number of tabular source loads by outcome.",
			},
			[]string{"source", "status"},
		),
		sourceLoadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "draft_source_load_duration_seconds",
				Help:    "Time spent reading and parsing one tabular source.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		sourceRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "draft_source_rows",
				Help: "Data rows in the last successful load of a source.",
			},
			[]string{"source"},
		),
		datasetRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "draft_dataset_rows",
				Help: "Rows in the last computed dataset.",
			},
			[]string{"dataset"},
		),
		datasetDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "draft_dataset_compute_duration_seconds",
				Help:    "Time spent computing a dataset, including source loads.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"dataset"},
		),
	}
}

// ObserveDataset records the size and compute time of a dataset.
func (m *Metrics) ObserveDataset(dataset string, rows int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.datasetRows.WithLabelValues(dataset).Set(float64(rows))
	m.datasetDuration.WithLabelValues(dataset).Observe(elapsed.Seconds())
}

// InstrumentSource wraps src so every Load is counted and timed.
func (m *Metrics) InstrumentSource(src tabular.Source) tabular.Source {
	if m == nil {
		return src
	}
	return &instrumentedSource{next: src, m: m}
}

type instrumentedSource struct {
	next tabular.Source
	m    *Metrics
}

func (s *instrumentedSource) Load(ctx context.Context, name string) (*tabular.Table, error) {
	start := time.Now()
	t, err := s.next.Load(ctx, name)
	s.m.sourceLoadDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	s.m.sourceLoads.WithLabelValues(name, loadStatus(err)).Inc()
	if err == nil {
		s.m.sourceRows.WithLabelValues(name).Set(float64(len(t.Rows)))
	}
	return t, err
}

func loadStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, tabular.ErrSourceUnavailable):
		return "unavailable"
	case errors.Is(err, tabular.ErrMalformedRow):
		return "malformed"
	default:
		return "error"
	}
}
