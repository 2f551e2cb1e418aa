package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"mtstrike/domain/sounding"
)

// SoundingReader loads station soundings from Excel or CSV survey workbooks.
// Expected columns (header row, case-insensitive):
//
//	station, period, invariant_angle, pt_azimuth, tipper_angle[, pt_azimuth_var]
//
// Rows are grouped by station in first-seen order; within a station, sample
// order is preserved exactly as the workbook lists it, since the alignment
// policy is order-sensitive.
type SoundingReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSoundingReader creates a reader that handles both Excel and CSV files.
func NewSoundingReader(filePath string) *SoundingReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &SoundingReader{filePath: filePath, fileType: fileType}
}

// ReadStations reads and validates the full station set.
func (r *SoundingReader) ReadStations() ([]sounding.StationRecord, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("survey file must have a header row and at least one data row")
	}

	records, err := r.assembleRecords(rows)
	if err != nil {
		return nil, err
	}
	if err := sounding.ValidateSet(records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *SoundingReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return rows, nil
}

func (r *SoundingReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

// column indices resolved from the header row
type columns struct {
	station   int
	period    int
	invariant int
	ptAzimuth int
	tipper    int
	ptVar     int // -1 when absent
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{station: -1, period: -1, invariant: -1, ptAzimuth: -1, tipper: -1, ptVar: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "station":
			cols.station = i
		case "period":
			cols.period = i
		case "invariant_angle":
			cols.invariant = i
		case "pt_azimuth":
			cols.ptAzimuth = i
		case "tipper_angle":
			cols.tipper = i
		case "pt_azimuth_var":
			cols.ptVar = i
		}
	}
	if cols.station < 0 || cols.period < 0 || cols.invariant < 0 || cols.ptAzimuth < 0 || cols.tipper < 0 {
		return cols, fmt.Errorf("missing required columns; need station, period, invariant_angle, pt_azimuth, tipper_angle")
	}
	return cols, nil
}

func (r *SoundingReader) assembleRecords(rows [][]string) ([]sounding.StationRecord, error) {
	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	order := []string{}
	byStation := map[string]*sounding.StationRecord{}

	for rowNum, row := range rows[1:] {
		id := cellAt(row, cols.station)
		if id == "" {
			continue // blank separator row
		}

		rec, ok := byStation[id]
		if !ok {
			rec = &sounding.StationRecord{StationID: id}
			if cols.ptVar >= 0 {
				rec.PTAzimuthVar = []float64{}
			}
			byStation[id] = rec
			order = append(order, id)
		}

		period, err := parseCell(row, cols.period, rowNum+2)
		if err != nil {
			return nil, err
		}
		inv, err := parseCell(row, cols.invariant, rowNum+2)
		if err != nil {
			return nil, err
		}
		pt, err := parseCell(row, cols.ptAzimuth, rowNum+2)
		if err != nil {
			return nil, err
		}
		tip, err := parseCell(row, cols.tipper, rowNum+2)
		if err != nil {
			return nil, err
		}

		rec.Periods = append(rec.Periods, period)
		rec.InvariantAngle = append(rec.InvariantAngle, inv)
		rec.PTAzimuth = append(rec.PTAzimuth, pt)
		rec.TipperAngle = append(rec.TipperAngle, tip)
		if cols.ptVar >= 0 {
			v, err := parseCell(row, cols.ptVar, rowNum+2)
			if err != nil {
				return nil, err
			}
			rec.PTAzimuthVar = append(rec.PTAzimuthVar, v)
		}
	}

	records := make([]sounding.StationRecord, 0, len(order))
	for _, id := range order {
		records = append(records, *byStation[id])
	}
	return records, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseCell converts one cell to a float; an empty cell becomes NaN, which
// the aligner treats as a missing sample.
func parseCell(row []string, i, rowNum int) (float64, error) {
	raw := cellAt(row, i)
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid numeric value %q", rowNum, raw)
	}
	return v, nil
}
