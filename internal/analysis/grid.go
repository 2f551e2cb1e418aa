package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"mtstrike/domain/sounding"
)

// BuildCanonicalGrid derives the canonical period grid for a station set:
// N points evenly spaced in log10(period) between the global minimum and
// maximum period, inclusive, where N is the length of the longest record.
func BuildCanonicalGrid(records []sounding.StationRecord) ([]float64, error) {
	if err := sounding.ValidateSet(records); err != nil {
		return nil, err
	}

	pmin := math.Inf(1)
	pmax := math.Inf(-1)
	n := 0
	for i := range records {
		for _, p := range records[i].Periods {
			if p < pmin {
				pmin = p
			}
			if p > pmax {
				pmax = p
			}
		}
		if len(records[i].Periods) > n {
			n = len(records[i].Periods)
		}
	}

	// A degenerate span would repeat the same period n times; the grid must
	// stay strictly increasing, so it collapses to the single shared point.
	if n == 1 || pmin == pmax {
		return []float64{pmin}, nil
	}
	return floats.LogSpan(make([]float64, n), pmin, pmax), nil
}
