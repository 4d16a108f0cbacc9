// Package stepcount estimates walking steps from the vertical accelerometer
// axis of a windowed activity recording.
//
// The computation runs in two stages: a zero-phase Butterworth low-pass
// filter with a normalised cutoff, then local-maximum detection refined by a
// minimum inter-peak distance and a minimum prominence. Count is pure; the
// Analyzer wraps it with optional reporters for plots, storage and the
// human-readable summary.
package stepcount

import (
	"github.com/banshee-data/stepcount/internal/monitoring"
)

// VerticalChannel is the channel index holding vertical (Z axis) acceleration.
const VerticalChannel = 2

// RawWindowedSignal holds non-overlapping windows of multi-channel IMU data
// indexed as [window][channel][sample]. Windows are in increasing time order.
type RawWindowedSignal [][][]float64

// FlatSignal is the vertical channel of every window concatenated in window order.
type FlatSignal []float64

// FilteredSignal is a low-pass filtered FlatSignal sharing its index space.
type FilteredSignal []float64

// Shape returns the (windows, channels, samples) dimensions of the first
// window. It does not check that the array is rectangular.
func (r RawWindowedSignal) Shape() (windows, channels, samples int) {
	windows = len(r)
	if windows == 0 {
		return 0, 0, 0
	}
	channels = len(r[0])
	if channels == 0 {
		return windows, 0, 0
	}
	return windows, channels, len(r[0][0])
}

// ExtractVertical selects VerticalChannel from each window and concatenates
// the rows in window order. Windows are assumed to be produced without
// overlap, so the result is the original continuous signal.
//
// An empty input yields an empty FlatSignal and no error; Count rejects it
// with ErrEmptySignal.
func ExtractVertical(raw RawWindowedSignal) (FlatSignal, error) {
	if len(raw) == 0 {
		return FlatSignal{}, nil
	}

	channels := len(raw[0])
	if channels <= VerticalChannel {
		return nil, &InvalidShapeError{
			Window:   0,
			Channels: channels,
			Reason:   "vertical axis requires at least 3 channels",
		}
	}
	samples := len(raw[0][VerticalChannel])

	for i, window := range raw {
		if len(window) != channels {
			return nil, &InvalidShapeError{
				Window:   i,
				Channels: len(window),
				Reason:   "channel count differs from first window",
			}
		}
		for _, row := range window {
			if len(row) != samples {
				return nil, &InvalidShapeError{
					Window:   i,
					Channels: len(window),
					Samples:  len(row),
					Reason:   "window length differs from first window",
				}
			}
		}
	}

	monitoring.Logf("vertical acceleration windows shape: (%d, %d)", len(raw), samples)

	flat := make(FlatSignal, 0, len(raw)*samples)
	for _, window := range raw {
		flat = append(flat, window[VerticalChannel]...)
	}
	return flat, nil
}
