package analysis

import (
	"context"

	"mtstrike/domain/run"
	"mtstrike/domain/sounding"
	"mtstrike/domain/strike"
)

// Engine is the period-alignment and circular-statistics pipeline:
// CanonicalGrid -> AlignedTable -> FoldedTable -> Histograms -> Report.
// A run is a pure batch transform; the engine holds no state between runs
// and the same inputs always produce the same report body.
type Engine struct{}

// NewEngine creates the analysis engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Run executes one full analysis over the station set.
func (e *Engine) Run(ctx context.Context, records []sounding.StationRecord, cfg run.Config) (*strike.Report, *run.Manifest, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, nil, err
	}

	grid, err := BuildCanonicalGrid(records)
	if err != nil {
		return nil, nil, err
	}

	aligned, err := AlignStations(grid, records, cfg.Tolerance, cfg.ErrorFloorDeg)
	if err != nil {
		return nil, nil, err
	}
	folded := FoldTable(aligned, cfg.FoldMode)

	spans := Decades(grid, cfg.DecadeRange)
	builder := &reportBuilder{
		table:     folded,
		spans:     spans,
		partition: PartitionGrid(grid, spans),
		aggregate: AggregateSpan(grid, cfg.DecadeRange),
		binWidth:  cfg.BinWidthDeg,
		foldMode:  cfg.FoldMode,
	}

	report, err := builder.build(ctx)
	if err != nil {
		return nil, nil, err
	}

	manifest := run.NewManifest(cfg)
	manifest.StationCount = len(records)
	manifest.GridLength = len(grid)
	manifest.PeriodMin = grid[0]
	manifest.PeriodMax = grid[len(grid)-1]

	report.RunID = manifest.ID
	report.CreatedAt = manifest.CreatedAt
	return report, &manifest, nil
}
