package stepcount

import (
	"errors"
	"fmt"
)

// ErrEmptySignal is returned when the flattened signal has no samples.
var ErrEmptySignal = errors.New("empty signal")

// ErrSignalTooShort is returned when a signal is not longer than the padding
// required by forward-backward filtering.
var ErrSignalTooShort = errors.New("signal too short for zero-phase filtering")

// InvalidShapeError reports a malformed RawWindowedSignal.
type InvalidShapeError struct {
	Window   int
	Channels int
	Samples  int
	Reason   string
}

func (e *InvalidShapeError) Error() string {
	if e.Samples > 0 {
		return fmt.Sprintf("invalid signal shape at window %d (%d channels, %d samples): %s",
			e.Window, e.Channels, e.Samples, e.Reason)
	}
	return fmt.Sprintf("invalid signal shape at window %d (%d channels): %s",
		e.Window, e.Channels, e.Reason)
}

// InvalidParameterError reports a filter or refinement parameter outside its domain.
type InvalidParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}
