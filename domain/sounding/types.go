package sounding

import (
	"fmt"

	"mtstrike/domain/core"
)

// Estimator identifies which of the three strike estimators a value came from.
type Estimator string

const (
	EstimatorInvariant Estimator = "invariant"  // impedance-tensor invariant strike
	EstimatorPTAzimuth Estimator = "pt_azimuth" // phase-tensor azimuth
	EstimatorTipper    Estimator = "tipper"     // tipper-derived strike
)

// Estimators lists all estimators in canonical order.
func Estimators() []Estimator {
	return []Estimator{EstimatorInvariant, EstimatorPTAzimuth, EstimatorTipper}
}

// Valid reports whether the estimator is one of the three known kinds.
func (e Estimator) Valid() bool {
	switch e {
	case EstimatorInvariant, EstimatorPTAzimuth, EstimatorTipper:
		return true
	}
	return false
}

func (e Estimator) String() string {
	return string(e)
}

// StationRecord is one MT sounding as delivered by the sounding reader.
// Periods may be ascending or descending; all estimator series are parallel
// to Periods. Records are immutable after ingestion.
type StationRecord struct {
	StationID      string
	Periods        []float64
	InvariantAngle []float64
	PTAzimuth      []float64
	TipperAngle    []float64

	// PTAzimuthVar is optional; when present it has the same length as
	// PTAzimuth and carries the per-sample azimuth variance.
	PTAzimuthVar []float64
}

// Angles returns the raw angle series for an estimator.
func (r *StationRecord) Angles(e Estimator) ([]float64, error) {
	switch e {
	case EstimatorInvariant:
		return r.InvariantAngle, nil
	case EstimatorPTAzimuth:
		return r.PTAzimuth, nil
	case EstimatorTipper:
		return r.TipperAngle, nil
	}
	return nil, fmt.Errorf("%w: %s", core.ErrUnknownEstimator, e)
}

// Validate checks the structural invariants of a record.
func (r *StationRecord) Validate() error {
	if len(r.Periods) == 0 {
		return fmt.Errorf("station %s: %w", r.StationID, core.ErrEmptyPeriodSeries)
	}
	for i, p := range r.Periods {
		if p <= 0 {
			return fmt.Errorf("station %s: period[%d]=%g: %w", r.StationID, i, p, core.ErrNonPositivePeriod)
		}
	}
	n := len(r.Periods)
	if len(r.InvariantAngle) != n || len(r.PTAzimuth) != n || len(r.TipperAngle) != n {
		return fmt.Errorf("station %s: %w", r.StationID, core.ErrSeriesLength)
	}
	if r.PTAzimuthVar != nil && len(r.PTAzimuthVar) != n {
		return fmt.Errorf("station %s: pt azimuth variance: %w", r.StationID, core.ErrSeriesLength)
	}
	return nil
}

// ValidateSet validates a whole station set, rejecting empty sets.
func ValidateSet(records []StationRecord) error {
	if len(records) == 0 {
		return core.ErrNoStations
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
