// Package histogram bins per-game scoring rates by five-year draft era.
package histogram

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/albapepper/draft-analytics/internal/draft"
)

// Era boundaries.
const (
	FirstDraftYear = 1963
	LastDraftYear  = 2022
	EraLength      = 5
)

// ErrUnsupportedMetric is returned for metrics without a per-game rate.
var ErrUnsupportedMetric = errors.New("histogram: unsupported metric")

// Point is one player's per-game rate.
type Point struct {
	Year        int     `json:"year"`
	Player      string  `json:"player"`
	Nationality string  `json:"nationality"`
	Age         int     `json:"age"`
	Stat        float64 `json:"stat"`
	YearGroup   string  `json:"year_group"`
}

// Bin stacks the players of one era sharing one rounded rate.
type Bin struct {
	YearGroup string  `json:"year_group"`
	Stat      float64 `json:"stat"`
	Count     int     `json:"count"`
}

// Metrics lists the metrics Build accepts.
func Metrics() []draft.Metric {
	return []draft.Metric{draft.MetricPoints, draft.MetricGoals, draft.MetricAssists}
}

// Build converts records into points for metric. Players without games
// played, or whose rounded rate is not positive, are dropped. Input order is
// kept.
func Build(records []draft.Record, metric draft.Metric) ([]Point, error) {
	pick, err := selector(metric)
	if err != nil {
		return nil, err
	}
	points := make([]Point, 0, len(records))
	for _, r := range records {
		pg, ok := draft.PerGame(r)
		if !ok {
			continue
		}
		stat := math.Round(pick(pg)*100) / 100
		if stat <= 0 {
			continue
		}
		points = append(points, Point{
			Year:        r.Year,
			Player:      r.Player,
			Nationality: r.Nationality,
			Age:         r.Age,
			Stat:        stat,
			YearGroup:   YearGroup(r.Year),
		})
	}
	return points, nil
}

// YearGroup labels the five-year era containing year, e.g. "2003-2007".
// The era holding LastDraftYear ends there.
func YearGroup(year int) string {
	idx := floorDiv(year-FirstDraftYear, EraLength)
	start := FirstDraftYear + idx*EraLength
	end := start + EraLength - 1
	if start <= LastDraftYear {
		end = min(end, LastDraftYear)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

// Bins groups points by era and rate. Eras ascend by start year and rates
// ascend within an era.
func Bins(points []Point) []Bin {
	type key struct {
		group string
		stat  float64
	}
	counts := make(map[key]int)
	for _, p := range points {
		counts[key{p.YearGroup, p.Stat}]++
	}
	bins := make([]Bin, 0, len(counts))
	for k, n := range counts {
		bins = append(bins, Bin{YearGroup: k.group, Stat: k.stat, Count: n})
	}
	sort.Slice(bins, func(i, j int) bool {
		si, sj := groupStart(bins[i].YearGroup), groupStart(bins[j].YearGroup)
		if si != sj {
			return si < sj
		}
		return bins[i].Stat < bins[j].Stat
	})
	return bins
}

func selector(metric draft.Metric) (func(draft.PerGameStats) float64, error) {
	switch metric {
	case draft.MetricPoints:
		return func(s draft.PerGameStats) float64 { return s.PointsPerGame }, nil
	case draft.MetricGoals:
		return func(s draft.PerGameStats) float64 { return s.GoalsPerGame }, nil
	case draft.MetricAssists:
		return func(s draft.PerGameStats) float64 { return s.AssistsPerGame }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMetric, metric)
	}
}

func groupStart(label string) int {
	head, _, _ := strings.Cut(label, "-")
	n, _ := strconv.Atoi(head)
	return n
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
