// Package testutil provides shared test utilities and fixtures.
//
// It centralises the assertion helpers and the synthetic accelerometer
// signals used by the step counting tests.
package testutil

import (
	"math"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Cosine returns n samples of amp*cos(2*pi*i/period). Its maxima fall
// exactly on multiples of period.
func Cosine(n int, period, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Cos(2*math.Pi*float64(i)/period)
	}
	return out
}

// Constant returns n samples of value v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// AddTriangle adds a triangular bump of the given height centred on center,
// falling linearly to zero halfWidth samples either side.
func AddTriangle(signal []float64, center int, height float64, halfWidth int) {
	for d := -halfWidth + 1; d < halfWidth; d++ {
		i := center + d
		if i < 0 || i >= len(signal) {
			continue
		}
		signal[i] += height * (1 - math.Abs(float64(d))/float64(halfWidth))
	}
}

// Windowed splits signal into windows of windowLen samples with the given
// channel count, placing the signal on channel 2 and a constant on the
// others. A trailing partial window is dropped.
func Windowed(signal []float64, windowLen, channels int) [][][]float64 {
	windows := make([][][]float64, 0, len(signal)/windowLen)
	for start := 0; start+windowLen <= len(signal); start += windowLen {
		w := make([][]float64, channels)
		for c := range w {
			if c == 2 {
				w[c] = append([]float64(nil), signal[start:start+windowLen]...)
				continue
			}
			w[c] = Constant(windowLen, float64(c))
		}
		windows = append(windows, w)
	}
	return windows
}
