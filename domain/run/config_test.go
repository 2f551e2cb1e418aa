package run

import (
	"testing"

	"mtstrike/domain/core"
	"mtstrike/domain/strike"
)

func TestConfig_NormalizeFillsDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cfg.Tolerance != DefaultTolerance {
		t.Errorf("Expected default tolerance %g, got %g", DefaultTolerance, cfg.Tolerance)
	}
	if cfg.BinWidthDeg != DefaultBinWidth {
		t.Errorf("Expected default bin width %g, got %g", DefaultBinWidth, cfg.BinWidthDeg)
	}
	if cfg.FoldMode != strike.Folded {
		t.Errorf("Expected default fold mode folded, got %s", cfg.FoldMode)
	}
}

func TestConfig_Validate(t *testing.T) {
	negFloor := -1.0
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid defaults", Default(), false},
		{"tolerance too large", Config{Tolerance: 1, BinWidthDeg: 5, FoldMode: strike.Folded}, true},
		{"tolerance negative", Config{Tolerance: -0.1, BinWidthDeg: 5, FoldMode: strike.Folded}, true},
		{"zero bin width", Config{Tolerance: 0.05, BinWidthDeg: 0, FoldMode: strike.Folded}, true},
		{"bad fold mode", Config{Tolerance: 0.05, BinWidthDeg: 5, FoldMode: "sideways"}, true},
		{
			"inverted decade range",
			Config{Tolerance: 0.05, BinWidthDeg: 5, FoldMode: strike.Folded,
				DecadeRange: &strike.DecadeSpan{Lo: 2, Hi: 2}},
			true,
		},
		{
			"negative error floor",
			Config{Tolerance: 0.05, BinWidthDeg: 5, FoldMode: strike.Folded, ErrorFloorDeg: &negFloor},
			true,
		},
		{
			"unfolded with explicit range",
			Config{Tolerance: 0.05, BinWidthDeg: 10, FoldMode: strike.Unfolded,
				DecadeRange: &strike.DecadeSpan{Lo: -1, Hi: 3}},
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && !core.IsConfigError(err) {
				t.Errorf("Expected config error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected valid config, got %v", err)
			}
		})
	}
}
