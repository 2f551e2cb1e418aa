package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoStations        = fmt.Errorf("%w: empty station set", ErrInvalidInput)
	ErrEmptyPeriodSeries = fmt.Errorf("%w: zero-length period series", ErrInvalidInput)
	ErrSeriesLength      = fmt.Errorf("%w: estimator series length mismatch", ErrInvalidInput)
	ErrNonPositivePeriod = fmt.Errorf("%w: non-positive period", ErrInvalidInput)

	// Analysis errors
	ErrEmptyBin         = errors.New("no samples in bin")
	ErrUnknownEstimator = errors.New("unknown strike estimator")
	ErrUnknownFoldMode  = errors.New("unknown fold mode")

	// Configuration errors
	ErrBadConfig = errors.New("invalid run configuration")
)

// Error constructors with context
func NewInvalidInputError(station string, reason string) error {
	return fmt.Errorf("%w: station %s: %s", ErrInvalidInput, station, reason)
}

func NewEmptyBinError(decade string, estimator string) error {
	return fmt.Errorf("%w: decade %s, estimator %s", ErrEmptyBin, decade, estimator)
}

func NewConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrBadConfig, field, reason)
}

// Error checking helpers
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsEmptyBinError(err error) bool {
	return errors.Is(err, ErrEmptyBin)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrBadConfig)
}
