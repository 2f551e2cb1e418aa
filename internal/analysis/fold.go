package analysis

import (
	"math"

	"mtstrike/domain/sounding"
	"mtstrike/domain/strike"
)

// ToStrikePolarity converts a raw estimator angle (counter-clockwise from
// east) to the clockwise-from-north polarity shared by all downstream
// statistics. The tipper angle is orthogonal by convention, so it is negated
// rather than offset.
func ToStrikePolarity(e sounding.Estimator, raw float64) float64 {
	if e == sounding.EstimatorTipper {
		return -raw
	}
	return 90 - raw
}

// Fold maps an angle into the active domain of the fold mode:
// (-90, 90] for Folded, [0, 360) for Unfolded. NaN passes through.
func Fold(v float64, mode strike.FoldMode) float64 {
	if math.IsNaN(v) {
		return v
	}
	if mode == strike.Unfolded {
		for v < 0 {
			v += 360
		}
		for v >= 360 {
			v -= 360
		}
		return v
	}
	for v > 90 {
		v -= 180
	}
	// -90 itself folds up to +90 so the domain stays half-open.
	for v <= -90 {
		v += 180
	}
	return v
}

// FoldTable applies the polarity transform and fold to every occupied cell,
// producing a new table; the input is left untouched.
func FoldTable(t *AlignedTable, mode strike.FoldMode) *AlignedTable {
	out := &AlignedTable{
		Grid:      t.Grid,
		Stations:  t.Stations,
		Cells:     make(map[sounding.Estimator][][]Cell, len(t.Cells)),
		Summaries: t.Summaries,
	}
	for e, cells := range t.Cells {
		folded := make([][]Cell, len(cells))
		for i := range cells {
			folded[i] = make([]Cell, len(cells[i]))
			for s, c := range cells[i] {
				if !c.OK {
					continue
				}
				folded[i][s] = Cell{
					Value: Fold(ToStrikePolarity(e, c.Value), mode),
					OK:    true,
				}
			}
		}
		out.Cells[e] = folded
	}
	return out
}
