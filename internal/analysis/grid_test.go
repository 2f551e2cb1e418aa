package analysis

import (
	"math"
	"testing"

	"mtstrike/domain/core"
	"mtstrike/domain/sounding"
)

func station(id string, periods []float64, angles []float64) sounding.StationRecord {
	return sounding.StationRecord{
		StationID:      id,
		Periods:        periods,
		InvariantAngle: angles,
		PTAzimuth:      angles,
		TipperAngle:    angles,
	}
}

func TestBuildCanonicalGrid_SpansGlobalRange(t *testing.T) {
	records := []sounding.StationRecord{
		station("s1", []float64{1, 10, 100}, []float64{0, 0, 0}),
		station("s2", []float64{0.1, 1000}, []float64{0, 0}),
	}

	grid, err := BuildCanonicalGrid(records)
	if err != nil {
		t.Fatalf("BuildCanonicalGrid failed: %v", err)
	}

	if len(grid) != 3 {
		t.Fatalf("Expected grid length 3 (longest record), got %d", len(grid))
	}
	if grid[0] != 0.1 {
		t.Errorf("Expected grid to start at global minimum 0.1, got %g", grid[0])
	}
	if grid[len(grid)-1] != 1000 {
		t.Errorf("Expected grid to end at global maximum 1000, got %g", grid[len(grid)-1])
	}

	// Log spacing: equal ratios between consecutive points.
	r1 := grid[1] / grid[0]
	r2 := grid[2] / grid[1]
	if math.Abs(r1-r2) > 1e-9*r1 {
		t.Errorf("Expected logarithmic spacing, got ratios %g and %g", r1, r2)
	}

	// Strictly increasing.
	for i := 1; i < len(grid); i++ {
		if grid[i] <= grid[i-1] {
			t.Errorf("Grid not strictly increasing at index %d: %g <= %g", i, grid[i], grid[i-1])
		}
	}
}

func TestBuildCanonicalGrid_EmptyStationSet(t *testing.T) {
	_, err := BuildCanonicalGrid(nil)
	if !core.IsInvalidInputError(err) {
		t.Fatalf("Expected invalid input error for empty station set, got %v", err)
	}
}

func TestBuildCanonicalGrid_ZeroLengthPeriods(t *testing.T) {
	records := []sounding.StationRecord{
		station("s1", []float64{1, 10}, []float64{0, 0}),
		station("broken", nil, nil),
	}
	_, err := BuildCanonicalGrid(records)
	if !core.IsInvalidInputError(err) {
		t.Fatalf("Expected invalid input error for zero-length period series, got %v", err)
	}
}

func TestBuildCanonicalGrid_SinglePoint(t *testing.T) {
	records := []sounding.StationRecord{
		station("s1", []float64{42}, []float64{0}),
	}
	grid, err := BuildCanonicalGrid(records)
	if err != nil {
		t.Fatalf("BuildCanonicalGrid failed: %v", err)
	}
	if len(grid) != 1 || grid[0] != 42 {
		t.Errorf("Expected single-point grid [42], got %v", grid)
	}
}

func TestBuildCanonicalGrid_DegenerateSpanCollapses(t *testing.T) {
	// Every period identical: a multi-point grid would repeat the same value,
	// so the grid collapses to that one point.
	records := []sounding.StationRecord{
		station("s1", []float64{5, 5}, []float64{0, 0}),
		station("s2", []float64{5}, []float64{0}),
	}
	grid, err := BuildCanonicalGrid(records)
	if err != nil {
		t.Fatalf("BuildCanonicalGrid failed: %v", err)
	}
	if len(grid) != 1 || grid[0] != 5 {
		t.Errorf("Expected degenerate span to collapse to [5], got %v", grid)
	}
}
