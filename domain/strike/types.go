package strike

import (
	"fmt"
	"math"
	"time"

	"mtstrike/domain/core"
	"mtstrike/domain/sounding"
)

// FoldMode selects the angular convention used for an entire run.
type FoldMode string

const (
	// Folded resolves the 180-degree ambiguity into (-90, 90].
	Folded FoldMode = "folded"
	// Unfolded keeps the full circle, [0, 360).
	Unfolded FoldMode = "unfolded"
)

// Valid reports whether the fold mode is a known convention.
func (m FoldMode) Valid() bool {
	return m == Folded || m == Unfolded
}

// Domain returns the angular domain active under this fold mode.
func (m FoldMode) Domain() AngleDomain {
	if m == Unfolded {
		return AngleDomain{Min: 0, Max: 360}
	}
	return AngleDomain{Min: -90, Max: 90}
}

// AngleDomain is a half-open-on-the-left angular range (Min, Max] for the
// folded convention and [Min, Max) for the unfolded one. Width is Max-Min.
type AngleDomain struct {
	Min float64
	Max float64
}

// Width returns the angular width of the domain in degrees.
func (d AngleDomain) Width() float64 {
	return d.Max - d.Min
}

// DecadeSpan is a half-open exponent range [Lo, Hi) in log10(period) space.
// A one-wide span is a single decade; a wider span is an aggregate bucket.
type DecadeSpan struct {
	Lo int
	Hi int
}

// Label renders the span for table headers, e.g. "1e+00-1e+01".
func (d DecadeSpan) Label() string {
	return fmt.Sprintf("1e%+03d-1e%+03d", d.Lo, d.Hi)
}

// Covers reports whether another span lies entirely inside this one.
func (d DecadeSpan) Covers(other DecadeSpan) bool {
	return other.Lo >= d.Lo && other.Hi <= d.Hi
}

// Width returns the number of decades spanned.
func (d DecadeSpan) Width() int {
	return d.Hi - d.Lo
}

// Histogram is a fixed-width count histogram over an angular domain.
// Edges has len(Counts)+1 entries; bin k covers [Edges[k], Edges[k+1]).
type Histogram struct {
	Edges  []float64
	Counts []int
	Width  float64
}

// Total returns the sum of all bin counts.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// StrikeStatistic holds the per-bin descriptive statistics, in degrees.
// Mean, Median and Mode are NaN when Count is zero.
type StrikeStatistic struct {
	Mean   float64
	Median float64
	Mode   float64
	Count  int
}

// Undefined returns the zero-sample sentinel statistic.
func Undefined() StrikeStatistic {
	nan := math.NaN()
	return StrikeStatistic{Mean: nan, Median: nan, Mode: nan, Count: 0}
}

// Defined reports whether the statistic was computed from any samples.
func (s StrikeStatistic) Defined() bool {
	return s.Count > 0
}

// DecadeRow is the per-(decade, estimator) result cell of a report.
type DecadeRow struct {
	Decade    DecadeSpan
	Estimator sounding.Estimator
	Stat      StrikeStatistic
	Histogram Histogram
}

// MatchCount is the alignment diagnostic for one station and estimator.
type MatchCount struct {
	Matched int
	Total   int
}

// StationSummary carries per-station alignment diagnostics.
type StationSummary struct {
	StationID string
	Matches   map[sounding.Estimator]MatchCount
}

// StationCell is one station-by-decade statistic triple for the text table.
type StationCell struct {
	Stat StrikeStatistic
}

// StationTable is the station x decade value table for one estimator,
// consumed by the external text-report writer.
type StationTable struct {
	Estimator sounding.Estimator
	Stations  []string
	Decades   []DecadeSpan
	// Cells is indexed [station][decade].
	Cells [][]StationCell
}

// EmptyBin records a non-fatal empty decade/estimator combination.
type EmptyBin struct {
	Decade    DecadeSpan
	Estimator sounding.Estimator
	Err       error
}

// Report is the fully materialized output of one analysis run.
type Report struct {
	RunID     core.RunID
	CreatedAt time.Time

	FoldMode FoldMode
	Grid     []float64
	Decades  []DecadeSpan

	// Rows holds one entry per (decade, estimator) pair in decade-major order.
	Rows []DecadeRow
	// Aggregate holds one row per estimator spanning the requested range.
	Aggregate []DecadeRow

	Stations  []StationSummary
	Tables    []StationTable
	EmptyBins []EmptyBin
}

// Row returns the result for a (decade, estimator) pair, if present.
func (r *Report) Row(d DecadeSpan, e sounding.Estimator) (DecadeRow, bool) {
	for _, row := range r.Rows {
		if row.Decade == d && row.Estimator == e {
			return row, true
		}
	}
	return DecadeRow{}, false
}

// Table returns the station table for an estimator, if present.
func (r *Report) Table(e sounding.Estimator) (StationTable, bool) {
	for _, t := range r.Tables {
		if t.Estimator == e {
			return t, true
		}
	}
	return StationTable{}, false
}
