package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"mtstrike/adapters/excel"
	"mtstrike/adapters/postgres"
	"mtstrike/adapters/report"
	"mtstrike/internal"
	"mtstrike/internal/analysis"
	"mtstrike/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "strike: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.DefaultLogger.Named("strike")
	ctx := context.Background()

	logger.Info("reading soundings from %s", cfg.Paths.InputFile)
	reader := excel.NewSoundingReader(cfg.Paths.InputFile)
	records, err := reader.ReadStations()
	if err != nil {
		return fmt.Errorf("failed to read soundings: %w", err)
	}
	logger.Info("loaded %d stations", len(records))

	engine := analysis.NewEngine()
	rep, manifest, err := engine.Run(ctx, records, cfg.Run)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	for _, s := range rep.Stations {
		for e, m := range s.Matches {
			logger.Debug("station %s %s: %d/%d samples matched", s.StationID, e, m.Matched, m.Total)
		}
	}
	for _, eb := range rep.EmptyBins {
		logger.Warn("%v", eb.Err)
	}

	out := os.Stdout
	if cfg.Paths.OutputFile != "" {
		f, err := os.Create(cfg.Paths.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.NewTextWriter(out).Write(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.DB.URL != "" {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DB.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to results database: %w", err)
		}
		defer db.Close()

		repo := postgres.NewRunRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := repo.SaveRun(ctx, manifest, rep); err != nil {
			return err
		}
		logger.Info("run %s persisted", manifest.ID)
	}

	return nil
}
