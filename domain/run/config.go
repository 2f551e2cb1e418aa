package run

import (
	"mtstrike/domain/core"
	"mtstrike/domain/strike"
)

// Defaults for the analysis configuration.
const (
	DefaultTolerance = 0.05
	DefaultBinWidth  = 5.0
)

// Config is the full configuration of one analysis run. A zero DecadeRange
// means "auto": derive the aggregate span from the data itself.
type Config struct {
	// Tolerance is the relative period-matching tolerance, in (0, 1).
	Tolerance float64
	// BinWidthDeg is the histogram bin width in degrees, > 0.
	BinWidthDeg float64
	// FoldMode fixes the angular convention for the whole run.
	FoldMode strike.FoldMode
	// DecadeRange optionally restricts analysis to [Lo, Hi) in log10(period).
	// Nil selects the full data range.
	DecadeRange *strike.DecadeSpan
	// ErrorFloorDeg optionally zeroes phase-tensor azimuth samples whose
	// variance exceeds the floor. Nil disables the filter.
	ErrorFloorDeg *float64
}

// Default returns the configuration used when the caller specifies nothing.
func Default() Config {
	return Config{
		Tolerance:   DefaultTolerance,
		BinWidthDeg: DefaultBinWidth,
		FoldMode:    strike.Folded,
	}
}

// Normalize fills unset numeric fields with defaults and validates the result.
func (c *Config) Normalize() error {
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.BinWidthDeg == 0 {
		c.BinWidthDeg = DefaultBinWidth
	}
	if c.FoldMode == "" {
		c.FoldMode = strike.Folded
	}
	return c.Validate()
}

// Validate checks configuration invariants.
func (c Config) Validate() error {
	if c.Tolerance <= 0 || c.Tolerance >= 1 {
		return core.NewConfigError("tolerance", "must be in (0, 1)")
	}
	if c.BinWidthDeg <= 0 {
		return core.NewConfigError("bin_width_degrees", "must be > 0")
	}
	if !c.FoldMode.Valid() {
		return core.NewConfigError("fold_mode", "must be folded or unfolded")
	}
	if c.DecadeRange != nil && c.DecadeRange.Hi <= c.DecadeRange.Lo {
		return core.NewConfigError("decade_range", "upper bound must exceed lower bound")
	}
	if c.ErrorFloorDeg != nil && *c.ErrorFloorDeg < 0 {
		return core.NewConfigError("error_floor_degrees", "must be >= 0")
	}
	return nil
}
