package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mtstrike/domain/run"
	"mtstrike/domain/strike"
)

// runRepository persists analysis runs and their per-decade statistics.
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *runRepository {
	return &runRepository{db: db}
}

// EnsureSchema creates the result tables if they do not exist.
func (r *runRepository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS strike_runs (
		id            TEXT PRIMARY KEY,
		created_at    TIMESTAMPTZ NOT NULL,
		station_count INTEGER NOT NULL,
		grid_length   INTEGER NOT NULL,
		period_min    DOUBLE PRECISION NOT NULL,
		period_max    DOUBLE PRECISION NOT NULL,
		tolerance     DOUBLE PRECISION NOT NULL,
		bin_width_deg DOUBLE PRECISION NOT NULL,
		fold_mode     TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS strike_decade_stats (
		run_id       TEXT NOT NULL REFERENCES strike_runs(id) ON DELETE CASCADE,
		decade_lo    INTEGER NOT NULL,
		decade_hi    INTEGER NOT NULL,
		estimator    TEXT NOT NULL,
		aggregate    BOOLEAN NOT NULL,
		mean_deg     DOUBLE PRECISION,
		median_deg   DOUBLE PRECISION,
		mode_deg     DOUBLE PRECISION,
		sample_count INTEGER NOT NULL,
		PRIMARY KEY (run_id, decade_lo, decade_hi, estimator, aggregate)
	);`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure strike schema: %w", err)
	}
	return nil
}

// SaveRun stores the manifest and every decade and aggregate row of a report.
// Undefined statistics are stored as NULLs rather than NaN, which postgres
// would otherwise reject.
func (r *runRepository) SaveRun(ctx context.Context, m *run.Manifest, rep *strike.Report) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO strike_runs (
		id, created_at, station_count, grid_length, period_min, period_max,
		tolerance, bin_width_deg, fold_mode
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = tx.ExecContext(ctx, query,
		m.ID, m.CreatedAt, m.StationCount, m.GridLength, m.PeriodMin, m.PeriodMax,
		m.Tolerance, m.BinWidthDeg, m.FoldMode,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", m.ID, err)
	}

	for _, row := range rep.Rows {
		if err := r.insertRow(ctx, tx, m, row, false); err != nil {
			return err
		}
	}
	for _, row := range rep.Aggregate {
		if err := r.insertRow(ctx, tx, m, row, true); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *runRepository) insertRow(ctx context.Context, tx *sqlx.Tx, m *run.Manifest, row strike.DecadeRow, aggregate bool) error {
	query := `INSERT INTO strike_decade_stats (
		run_id, decade_lo, decade_hi, estimator, aggregate,
		mean_deg, median_deg, mode_deg, sample_count
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.ExecContext(ctx, query,
		m.ID, row.Decade.Lo, row.Decade.Hi, row.Estimator.String(), aggregate,
		nullableAngle(row.Stat, row.Stat.Mean),
		nullableAngle(row.Stat, row.Stat.Median),
		nullableAngle(row.Stat, row.Stat.Mode),
		row.Stat.Count,
	)
	if err != nil {
		return fmt.Errorf("failed to insert decade stats for run %s: %w", m.ID, err)
	}
	return nil
}

func nullableAngle(s strike.StrikeStatistic, v float64) interface{} {
	if !s.Defined() {
		return nil
	}
	return v
}
