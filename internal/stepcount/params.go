package stepcount

// Default parameter values. The cutoff is 2 Hz gait cadence over the 25 Hz
// sampling rate of the recording hardware, expressed without any explicit
// sampling-rate parameter.
const (
	DefaultCutoffNorm    = 2.0 / 25.0
	DefaultOrder         = 4
	DefaultMinDistance   = 20
	DefaultMinProminence = 0.1
)

// Params configures the filter and the peak refinement stages.
type Params struct {
	// CutoffNorm is the low-pass cutoff as a fraction of Nyquist, in (0, 1).
	CutoffNorm float64
	// Order is the Butterworth filter order.
	Order int
	// MinDistance is the minimum spacing in samples between adjacent peaks.
	MinDistance int
	// MinProminence is the minimum peak prominence, in signal units (g).
	MinProminence float64
}

// DefaultParams returns the parameters used for walking recordings.
func DefaultParams() Params {
	return Params{
		CutoffNorm:    DefaultCutoffNorm,
		Order:         DefaultOrder,
		MinDistance:   DefaultMinDistance,
		MinProminence: DefaultMinProminence,
	}
}

// Validate checks every parameter before any processing starts.
func (p Params) Validate() error {
	if err := validateFilter(p.CutoffNorm, p.Order); err != nil {
		return err
	}
	if p.MinDistance <= 0 {
		return &InvalidParameterError{Name: "min_distance", Value: float64(p.MinDistance), Reason: "must be positive"}
	}
	if !(p.MinProminence > 0) {
		return &InvalidParameterError{Name: "min_prominence", Value: p.MinProminence, Reason: "must be positive"}
	}
	return nil
}

func validateFilter(cutoff float64, order int) error {
	// Written as a negated range check so NaN is rejected as well.
	if !(cutoff > 0 && cutoff < 1) {
		return &InvalidParameterError{Name: "cutoff_norm", Value: cutoff, Reason: "must be in the open interval (0, 1)"}
	}
	if order < 1 {
		return &InvalidParameterError{Name: "order", Value: float64(order), Reason: "must be at least 1"}
	}
	return nil
}
