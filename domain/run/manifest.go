package run

import (
	"time"

	"mtstrike/domain/core"
)

// Manifest records the identity and shape of one analysis run for
// diagnostics and persistence. It never changes after the run completes.
type Manifest struct {
	ID        core.RunID
	CreatedAt time.Time

	StationCount int
	GridLength   int
	PeriodMin    float64
	PeriodMax    float64

	Tolerance   float64
	BinWidthDeg float64
	FoldMode    string
}

// NewManifest stamps a fresh run identity.
func NewManifest(cfg Config) Manifest {
	return Manifest{
		ID:          core.NewID(),
		CreatedAt:   time.Now().UTC(),
		Tolerance:   cfg.Tolerance,
		BinWidthDeg: cfg.BinWidthDeg,
		FoldMode:    string(cfg.FoldMode),
	}
}
