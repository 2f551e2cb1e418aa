package analysis

import (
	"math"
	"testing"

	"mtstrike/domain/sounding"
)

func TestAlignStations_ToleranceMatching(t *testing.T) {
	grid := []float64{1, 10, 100}
	records := []sounding.StationRecord{
		station("s1", []float64{1.02, 9.8, 300}, []float64{10, 20, 30}),
	}

	table, err := AlignStations(grid, records, 0.05, nil)
	if err != nil {
		t.Fatalf("AlignStations failed: %v", err)
	}

	cells := table.Cells[sounding.EstimatorInvariant]
	if !cells[0][0].OK || cells[0][0].Value != 10 {
		t.Errorf("Expected 1.02 to match grid[0] with value 10, got %+v", cells[0][0])
	}
	if !cells[1][0].OK || cells[1][0].Value != 20 {
		t.Errorf("Expected 9.8 to match grid[1] with value 20, got %+v", cells[1][0])
	}
	if cells[2][0].OK {
		t.Errorf("Expected 300 to be dropped (outside tolerance), got %+v", cells[2][0])
	}

	m := table.Summaries[0].Matches[sounding.EstimatorInvariant]
	if m.Matched != 2 || m.Total != 3 {
		t.Errorf("Expected 2/3 matched samples, got %d/%d", m.Matched, m.Total)
	}
}

func TestAlignStations_ToleranceIsStrict(t *testing.T) {
	// |105 - 100| = 5 is exactly 5% of the grid period; the match condition
	// is strict, so this sample is dropped.
	grid := []float64{100}
	records := []sounding.StationRecord{
		station("s1", []float64{105}, []float64{1}),
	}

	table, err := AlignStations(grid, records, 0.05, nil)
	if err != nil {
		t.Fatalf("AlignStations failed: %v", err)
	}
	if table.Cells[sounding.EstimatorInvariant][0][0].OK {
		t.Error("Expected sample at exactly tolerance boundary to be dropped")
	}
}

func TestAlignStations_ToleranceMonotonic(t *testing.T) {
	grid := []float64{1, 10, 100}
	rec := station("s1", []float64{1.1, 8.7, 96, 430}, []float64{1, 2, 3, 4})

	prev := -1
	for _, tol := range []float64{0.01, 0.05, 0.1, 0.15, 0.2} {
		table, err := AlignStations(grid, []sounding.StationRecord{rec}, tol, nil)
		if err != nil {
			t.Fatalf("AlignStations failed at tol=%g: %v", tol, err)
		}
		matched := table.Summaries[0].Matches[sounding.EstimatorInvariant].Matched
		if matched < prev {
			t.Errorf("Matched count decreased from %d to %d when tolerance grew to %g", prev, matched, tol)
		}
		prev = matched
	}
}

func TestAlignStations_ToleranceMonotonicUnderCollision(t *testing.T) {
	// At tol=0.05 the second sample only reaches grid[1]. At tol=0.10 its
	// first in-tolerance index becomes grid[0], which the first sample
	// already holds; the matcher must pass over the taken cell instead of
	// dropping the sample, so the matched count never shrinks.
	grid := []float64{100, 110}
	rec := station("s1", []float64{100, 109}, []float64{1, 2})

	for _, tol := range []float64{0.05, 0.10} {
		table, err := AlignStations(grid, []sounding.StationRecord{rec}, tol, nil)
		if err != nil {
			t.Fatalf("AlignStations failed at tol=%g: %v", tol, err)
		}
		m := table.Summaries[0].Matches[sounding.EstimatorInvariant]
		if m.Matched != 2 {
			t.Errorf("Expected 2 matched samples at tol=%g, got %d", tol, m.Matched)
		}
		cell := table.Cells[sounding.EstimatorInvariant][1][0]
		if !cell.OK || cell.Value != 2 {
			t.Errorf("Expected second sample in grid[1] at tol=%g, got %+v", tol, cell)
		}
	}
}

func TestAlignStations_FirstMatchWins(t *testing.T) {
	// Both samples satisfy the tolerance for grid[0] and no other cell is in
	// reach; the first in iteration order wins and the second is dropped.
	grid := []float64{10}
	records := []sounding.StationRecord{
		station("s1", []float64{9.8, 10.2}, []float64{111, 222}),
	}

	table, err := AlignStations(grid, records, 0.05, nil)
	if err != nil {
		t.Fatalf("AlignStations failed: %v", err)
	}

	cell := table.Cells[sounding.EstimatorInvariant][0][0]
	if !cell.OK || cell.Value != 111 {
		t.Errorf("Expected first sample (111) to win grid[0], got %+v", cell)
	}
	if m := table.Summaries[0].Matches[sounding.EstimatorInvariant]; m.Matched != 1 {
		t.Errorf("Expected 1 matched sample, got %d", m.Matched)
	}
}

func TestAlignStations_IndependentPerEstimator(t *testing.T) {
	// Tipper undefined (NaN) where the impedance estimators are defined.
	grid := []float64{1, 10}
	rec := sounding.StationRecord{
		StationID:      "s1",
		Periods:        []float64{1, 10},
		InvariantAngle: []float64{5, 6},
		PTAzimuth:      []float64{7, 8},
		TipperAngle:    []float64{math.NaN(), 9},
	}

	table, err := AlignStations(grid, []sounding.StationRecord{rec}, 0.05, nil)
	if err != nil {
		t.Fatalf("AlignStations failed: %v", err)
	}

	if !table.Cells[sounding.EstimatorInvariant][0][0].OK {
		t.Error("Expected invariant sample at grid[0] to be present")
	}
	if table.Cells[sounding.EstimatorTipper][0][0].OK {
		t.Error("Expected NaN tipper sample at grid[0] to be absent")
	}
	if !table.Cells[sounding.EstimatorTipper][1][0].OK {
		t.Error("Expected tipper sample at grid[1] to be present")
	}

	tm := table.Summaries[0].Matches[sounding.EstimatorTipper]
	if tm.Matched != 1 || tm.Total != 2 {
		t.Errorf("Expected tipper 1/2 matched, got %d/%d", tm.Matched, tm.Total)
	}
}

func TestAlignStations_ErrorFloorZeroesNoisyAzimuth(t *testing.T) {
	grid := []float64{1, 10}
	floor := 10.0
	rec := sounding.StationRecord{
		StationID:      "s1",
		Periods:        []float64{1, 10},
		InvariantAngle: []float64{40, 41},
		PTAzimuth:      []float64{42, 43},
		TipperAngle:    []float64{44, 45},
		PTAzimuthVar:   []float64{25, 4},
	}

	table, err := AlignStations(grid, []sounding.StationRecord{rec}, 0.05, &floor)
	if err != nil {
		t.Fatalf("AlignStations failed: %v", err)
	}

	noisy := table.Cells[sounding.EstimatorPTAzimuth][0][0]
	if !noisy.OK || noisy.Value != 0 {
		t.Errorf("Expected noisy azimuth sample replaced with 0.0, got %+v", noisy)
	}
	clean := table.Cells[sounding.EstimatorPTAzimuth][1][0]
	if !clean.OK || clean.Value != 43 {
		t.Errorf("Expected quiet azimuth sample kept as 43, got %+v", clean)
	}
	// The floor only touches the phase-tensor azimuth.
	if v := table.Cells[sounding.EstimatorInvariant][0][0]; v.Value != 40 {
		t.Errorf("Expected invariant sample untouched, got %+v", v)
	}
}
