package analysis

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"mtstrike/domain/core"
	"mtstrike/domain/sounding"
	"mtstrike/domain/strike"
)

// reportBuilder assembles the per-decade statistic tables from a folded
// aligned table. Estimators are independent, so they are computed in
// parallel; results are merged back in canonical estimator order.
type reportBuilder struct {
	table     *AlignedTable
	spans     []strike.DecadeSpan
	partition [][]int
	aggregate strike.DecadeSpan
	binWidth  float64
	foldMode  strike.FoldMode
}

type estimatorResult struct {
	rows      []strike.DecadeRow
	aggregate strike.DecadeRow
	table     strike.StationTable
	empty     []strike.EmptyBin
}

func (b *reportBuilder) build(ctx context.Context) (*strike.Report, error) {
	estimators := sounding.Estimators()
	results := make([]estimatorResult, len(estimators))

	g, _ := errgroup.WithContext(ctx)
	for idx, e := range estimators {
		g.Go(func() error {
			results[idx] = b.buildEstimator(e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &strike.Report{
		FoldMode: b.foldMode,
		Grid:     b.table.Grid,
		Decades:  b.spans,
		Stations: b.table.Summaries,
	}
	// Decade-major row order: all estimators for decade 0, then decade 1, ...
	for d := range b.spans {
		for idx := range estimators {
			report.Rows = append(report.Rows, results[idx].rows[d])
		}
	}
	for idx := range estimators {
		report.Aggregate = append(report.Aggregate, results[idx].aggregate)
		report.Tables = append(report.Tables, results[idx].table)
		report.EmptyBins = append(report.EmptyBins, results[idx].empty...)
	}
	sort.SliceStable(report.EmptyBins, func(i, j int) bool {
		return report.EmptyBins[i].Decade.Lo < report.EmptyBins[j].Decade.Lo
	})
	return report, nil
}

func (b *reportBuilder) buildEstimator(e sounding.Estimator) estimatorResult {
	cells := b.table.Cells[e]
	domain := b.foldMode.Domain()
	res := estimatorResult{}

	for d, span := range b.spans {
		samples := b.gather(cells, b.partition[d], -1)
		hist := NewHistogram(samples, b.binWidth, domain)
		stat, err := Statistics(samples, hist, b.foldMode)
		if err != nil {
			res.empty = append(res.empty, strike.EmptyBin{
				Decade:    span,
				Estimator: e,
				Err:       core.NewEmptyBinError(span.Label(), e.String()),
			})
		}
		res.rows = append(res.rows, strike.DecadeRow{
			Decade:    span,
			Estimator: e,
			Stat:      stat,
			Histogram: hist,
		})
	}

	res.aggregate = b.buildAggregate(e, cells, domain)
	res.table = b.buildStationTable(e, cells, domain)
	return res
}

func (b *reportBuilder) buildAggregate(e sounding.Estimator, cells [][]Cell, domain strike.AngleDomain) strike.DecadeRow {
	var indices []int
	for d, span := range b.spans {
		if b.aggregate.Covers(span) {
			indices = append(indices, b.partition[d]...)
		}
	}
	samples := b.gather(cells, indices, -1)
	hist := NewHistogram(samples, b.binWidth, domain)
	// EmptyBins records per-decade gaps only; an empty aggregate or station
	// cell just carries the undefined statistic.
	stat, _ := Statistics(samples, hist, b.foldMode)
	return strike.DecadeRow{
		Decade:    b.aggregate,
		Estimator: e,
		Stat:      stat,
		Histogram: hist,
	}
}

func (b *reportBuilder) buildStationTable(e sounding.Estimator, cells [][]Cell, domain strike.AngleDomain) strike.StationTable {
	t := strike.StationTable{
		Estimator: e,
		Stations:  b.table.Stations,
		Decades:   b.spans,
		Cells:     make([][]strike.StationCell, len(b.table.Stations)),
	}
	for s := range b.table.Stations {
		row := make([]strike.StationCell, len(b.spans))
		for d := range b.spans {
			samples := b.gather(cells, b.partition[d], s)
			hist := NewHistogram(samples, b.binWidth, domain)
			stat, _ := Statistics(samples, hist, b.foldMode)
			row[d] = strike.StationCell{Stat: stat}
		}
		t.Cells[s] = row
	}
	return t
}

// gather collects occupied cell values at the given grid indices. A station
// index >= 0 restricts the scan to that station's column.
func (b *reportBuilder) gather(cells [][]Cell, indices []int, station int) []float64 {
	var out []float64
	for _, i := range indices {
		if station >= 0 {
			if c := cells[i][station]; c.OK {
				out = append(out, c.Value)
			}
			continue
		}
		for _, c := range cells[i] {
			if c.OK {
				out = append(out, c.Value)
			}
		}
	}
	return out
}
