package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"mtstrike/domain/strike"
)

// TextWriter serializes a strike report as fixed-width delimited tables,
// one table per estimator: a station id column followed by one column per
// decade, each cell a mean/median/mode triple.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a writer targeting w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

const (
	stationColWidth = 12
	cellWidth       = 24
)

// Write renders the full report.
func (t *TextWriter) Write(rep *strike.Report) error {
	if _, err := fmt.Fprintf(t.w, "strike statistics run %s (%s, tolerance-aligned, %s fold)\n\n",
		rep.RunID, rep.CreatedAt.Format("2006-01-02 15:04:05"), rep.FoldMode); err != nil {
		return err
	}

	for _, table := range rep.Tables {
		if err := t.writeStationTable(table); err != nil {
			return err
		}
	}
	return t.writeSummary(rep)
}

func (t *TextWriter) writeStationTable(table strike.StationTable) error {
	var b strings.Builder

	fmt.Fprintf(&b, "estimator: %s\n", table.Estimator)
	fmt.Fprintf(&b, "%-*s", stationColWidth, "station")
	for _, d := range table.Decades {
		fmt.Fprintf(&b, "%-*s", cellWidth, d.Label())
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", stationColWidth+cellWidth*len(table.Decades)))
	b.WriteByte('\n')

	for s, id := range table.Stations {
		fmt.Fprintf(&b, "%-*s", stationColWidth, id)
		for _, cell := range table.Cells[s] {
			fmt.Fprintf(&b, "%-*s", cellWidth, formatTriple(cell.Stat))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *TextWriter) writeSummary(rep *strike.Report) error {
	var b strings.Builder

	b.WriteString("per-decade summary (all stations)\n")
	fmt.Fprintf(&b, "%-*s%-12s%-24s%8s\n", stationColWidth+2, "decade", "estimator", "mean/median/mode", "count")
	for _, row := range rep.Rows {
		fmt.Fprintf(&b, "%-*s%-12s%-24s%8d\n",
			stationColWidth+2, row.Decade.Label(), row.Estimator, formatTriple(row.Stat), row.Stat.Count)
	}

	b.WriteString("\naggregate ")
	if len(rep.Aggregate) > 0 {
		fmt.Fprintf(&b, "%s\n", rep.Aggregate[0].Decade.Label())
	} else {
		b.WriteByte('\n')
	}
	for _, row := range rep.Aggregate {
		fmt.Fprintf(&b, "%-*s%-12s%-24s%8d\n",
			stationColWidth+2, "", row.Estimator, formatTriple(row.Stat), row.Stat.Count)
	}

	if len(rep.EmptyBins) > 0 {
		b.WriteByte('\n')
		for _, eb := range rep.EmptyBins {
			fmt.Fprintf(&b, "note: %v\n", eb.Err)
		}
	}

	_, err := io.WriteString(t.w, b.String())
	return err
}

// formatTriple renders "mean/median/mode" with one decimal place, or a dash
// placeholder for undefined statistics.
func formatTriple(s strike.StrikeStatistic) string {
	if !s.Defined() {
		return "--/--/--"
	}
	return fmt.Sprintf("%s/%s/%s", formatAngle(s.Mean), formatAngle(s.Median), formatAngle(s.Mode))
}

func formatAngle(v float64) string {
	if math.IsNaN(v) {
		return "--"
	}
	return fmt.Sprintf("%.1f", v)
}
