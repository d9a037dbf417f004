// Package stats implements the group aggregates used by the analytics
// engines: mean, population standard deviation, Spearman rank correlation,
// and per-pick position summaries.
//
// Absent values are excluded by callers (or by Values) before they reach
// these functions; nothing here reads a missing value as zero.
package stats

import (
	"math"

	"github.com/albapepper/draft-analytics/internal/draft"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationStdDev returns the standard deviation with divisor N. Fewer than
// two values yield 0.
func PopulationStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// Values collects the present values of metric across records.
func Values(records []draft.Record, metric draft.Metric) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := r.Value(metric); ok {
			out = append(out, v)
		}
	}
	return out
}

// RankAverage is the mean of metric over the records that carry it.
func RankAverage(records []draft.Record, metric draft.Metric) float64 {
	return Mean(Values(records, metric))
}

// AggregateFunc reduces a group of records to one displayed value.
type AggregateFunc func(records []draft.Record) float64

// CustomAggregate applies fn to records. It lets derived metrics such as a
// regular-player percentage flow through the same summaries as column
// averages.
func CustomAggregate(records []draft.Record, fn AggregateFunc) float64 {
	if fn == nil {
		return 0
	}
	return fn(records)
}

// RegularPlayerShare returns an aggregate giving the percentage (0-100) of a
// group whose games played reach threshold.
func RegularPlayerShare(threshold int) AggregateFunc {
	return func(records []draft.Record) float64 {
		if len(records) == 0 {
			return 0
		}
		regular := 0
		for _, r := range records {
			if draft.IsRegularPlayer(r, threshold) {
				regular++
			}
		}
		return 100 * float64(regular) / float64(len(records))
	}
}

// Spearman computes 1 - 6*sum(d^2) / (n*(n^2-1)) over two rank sequences.
// Mismatched lengths or fewer than two ranks yield 0. The result is clamped
// to [-1, 1], which tied ranks can otherwise escape.
func Spearman(xRanks, yRanks []float64) float64 {
	n := len(xRanks)
	if n != len(yRanks) || n < 2 {
		return 0
	}
	var sumSq float64
	for i := range xRanks {
		d := xRanks[i] - yRanks[i]
		sumSq += d * d
	}
	nf := float64(n)
	rho := 1 - (6*sumSq)/(nf*(nf*nf-1))
	return math.Max(-1, math.Min(1, rho))
}
