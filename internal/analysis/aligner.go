package analysis

import (
	"math"

	"mtstrike/domain/sounding"
	"mtstrike/domain/strike"
)

// Cell is one aligned angle value. OK distinguishes "no sample matched" from
// a genuine angle, including a genuine 0 degrees; the legacy 0.0 sentinel is
// deliberately not used.
type Cell struct {
	Value float64
	OK    bool
}

// AlignedTable maps station samples onto the canonical grid, independently
// per estimator: Cells[e][i][s] is station s's value at grid index i.
type AlignedTable struct {
	Grid     []float64
	Stations []string
	Cells    map[sounding.Estimator][][]Cell

	// Summaries carries the per-station matched/total diagnostics that make
	// the silent-drop alignment policy observable.
	Summaries []strike.StationSummary
}

// AlignStations resamples every station onto the canonical grid. A sample
// (p', v) matches grid index i when |p' - grid[i]| < tol*grid[i]; the first
// free grid index satisfying the tolerance wins, and at most one station
// sample occupies a grid cell. A sample goes unmatched only when every cell
// within tolerance is already taken; unmatched samples are dropped, counted
// in the station summaries.
//
// When errorFloorDeg is set, phase-tensor azimuth samples whose variance
// exceeds the floor are replaced with 0.0 rather than excluded, matching the
// legacy threshold-exclude convention.
func AlignStations(grid []float64, records []sounding.StationRecord, tol float64, errorFloorDeg *float64) (*AlignedTable, error) {
	table := &AlignedTable{
		Grid:     grid,
		Stations: make([]string, len(records)),
		Cells:    make(map[sounding.Estimator][][]Cell, 3),
	}
	for _, e := range sounding.Estimators() {
		cells := make([][]Cell, len(grid))
		for i := range cells {
			cells[i] = make([]Cell, len(records))
		}
		table.Cells[e] = cells
	}

	for s := range records {
		rec := &records[s]
		table.Stations[s] = rec.StationID

		summary := strike.StationSummary{
			StationID: rec.StationID,
			Matches:   make(map[sounding.Estimator]strike.MatchCount, 3),
		}

		for _, e := range sounding.Estimators() {
			angles, err := rec.Angles(e)
			if err != nil {
				return nil, err
			}

			count := strike.MatchCount{Total: len(rec.Periods)}
			cells := table.Cells[e]
			for j, p := range rec.Periods {
				v := angles[j]
				if math.IsNaN(v) {
					continue
				}
				if e == sounding.EstimatorPTAzimuth && errorFloorDeg != nil && rec.PTAzimuthVar != nil {
					if rec.PTAzimuthVar[j] > *errorFloorDeg {
						v = 0.0
					}
				}

				i, ok := matchGridIndex(grid, p, tol, cells, s)
				if !ok {
					continue
				}
				cells[i][s] = Cell{Value: v, OK: true}
				count.Matched++
			}
			summary.Matches[e] = count
		}

		table.Summaries = append(table.Summaries, summary)
	}

	return table, nil
}

// matchGridIndex returns the first unoccupied grid index within relative
// tolerance of p for station s. This mirrors the legacy first-match policy
// rather than a nearest-match search; occupied cells are passed over so a
// widened tolerance can add matched samples but never lose one.
func matchGridIndex(grid []float64, p, tol float64, cells [][]Cell, s int) (int, bool) {
	for i, g := range grid {
		if math.Abs(p-g) < tol*g && !cells[i][s].OK {
			return i, true
		}
	}
	return 0, false
}
