package config

import (
	"os"
	"strconv"

	"mtstrike/domain/run"
	"mtstrike/domain/strike"
	"mtstrike/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Run   run.Config
	Paths PathConfig
	DB    DatabaseConfig
}

// PathConfig holds file system paths
type PathConfig struct {
	// InputFile is the survey workbook (.xlsx or .csv) with station soundings.
	InputFile string
	// OutputFile receives the text report; empty means stdout.
	OutputFile string
}

// DatabaseConfig holds the optional results database settings.
// Persistence is skipped entirely when URL is empty.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Run: run.Default(),
		Paths: PathConfig{
			InputFile:  os.Getenv("STRIKE_INPUT_FILE"),
			OutputFile: os.Getenv("STRIKE_OUTPUT_FILE"),
		},
		DB: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	if err := loadRunConfig(&cfg.Run); err != nil {
		return nil, errors.WithCode(err, errors.CodeBadConfig, "failed to load run configuration")
	}

	if cfg.Paths.InputFile == "" {
		return nil, errors.New(errors.CodeBadConfig, "STRIKE_INPUT_FILE is required")
	}

	return cfg, nil
}

func loadRunConfig(rc *run.Config) error {
	var err error

	if rc.Tolerance, err = floatEnv("STRIKE_TOLERANCE", rc.Tolerance); err != nil {
		return err
	}
	if rc.BinWidthDeg, err = floatEnv("STRIKE_BIN_WIDTH_DEG", rc.BinWidthDeg); err != nil {
		return err
	}
	if v := os.Getenv("STRIKE_FOLD_MODE"); v != "" {
		rc.FoldMode = strike.FoldMode(v)
	}
	if v := os.Getenv("STRIKE_ERROR_FLOOR_DEG"); v != "" {
		floor, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid STRIKE_ERROR_FLOOR_DEG %q", v)
		}
		rc.ErrorFloorDeg = &floor
	}

	lo, hasLo := os.LookupEnv("STRIKE_DECADE_MIN")
	hi, hasHi := os.LookupEnv("STRIKE_DECADE_MAX")
	if hasLo != hasHi {
		return errors.New(errors.CodeBadConfig, "STRIKE_DECADE_MIN and STRIKE_DECADE_MAX must be set together")
	}
	if hasLo {
		span := strike.DecadeSpan{}
		if span.Lo, err = strconv.Atoi(lo); err != nil {
			return errors.Wrapf(err, "invalid STRIKE_DECADE_MIN %q", lo)
		}
		if span.Hi, err = strconv.Atoi(hi); err != nil {
			return errors.Wrapf(err, "invalid STRIKE_DECADE_MAX %q", hi)
		}
		rc.DecadeRange = &span
	}

	return rc.Normalize()
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s %q", key, v)
	}
	return f, nil
}
