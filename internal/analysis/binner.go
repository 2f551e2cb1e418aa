package analysis

import (
	"math"

	"mtstrike/domain/strike"
)

// decadeEpsilon guards floor(log10) against values that sit a few ulps away
// from an exact power of ten (0.01 is not exactly representable in binary).
const decadeEpsilon = 1e-9

// Decades derives the decade spans covering the grid: one span per power of
// ten from floor(log10(pmin)) up to and including the decade holding pmax.
// A maximum period sitting exactly on a power of ten therefore opens one
// more span instead of being orphaned on a closed edge. A non-nil requested
// range overrides the data-derived bounds.
func Decades(grid []float64, requested *strike.DecadeSpan) []strike.DecadeSpan {
	lo, hi := decadeBounds(grid, requested)
	spans := make([]strike.DecadeSpan, 0, hi-lo)
	for k := lo; k < hi; k++ {
		spans = append(spans, strike.DecadeSpan{Lo: k, Hi: k + 1})
	}
	return spans
}

// AggregateSpan returns the single bucket spanning the requested range, or
// the full data range when no range was requested.
func AggregateSpan(grid []float64, requested *strike.DecadeSpan) strike.DecadeSpan {
	lo, hi := decadeBounds(grid, requested)
	return strike.DecadeSpan{Lo: lo, Hi: hi}
}

func decadeBounds(grid []float64, requested *strike.DecadeSpan) (int, int) {
	if requested != nil {
		return requested.Lo, requested.Hi
	}
	lo := math.MaxInt
	hi := math.MinInt
	for _, p := range grid {
		k := int(math.Floor(snapExponent(math.Log10(p))))
		if k < lo {
			lo = k
		}
		if k+1 > hi {
			hi = k + 1
		}
	}
	return lo, hi
}

// PartitionGrid assigns every grid index to at most one span of a contiguous
// decade partition; indices outside a requested range are left out.
func PartitionGrid(grid []float64, spans []strike.DecadeSpan) [][]int {
	part := make([][]int, len(spans))
	if len(spans) == 0 {
		return part
	}
	lo := spans[0].Lo
	hi := spans[len(spans)-1].Hi

	for i, p := range grid {
		k := int(math.Floor(snapExponent(math.Log10(p))))
		if k < lo || k >= hi {
			continue
		}
		part[k-lo] = append(part[k-lo], i)
	}
	return part
}

// snapExponent rounds a log10 exponent to the nearest integer when it is
// within decadeEpsilon of one.
func snapExponent(e float64) float64 {
	if r := math.Round(e); math.Abs(e-r) < decadeEpsilon {
		return r
	}
	return e
}
