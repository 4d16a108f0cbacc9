package stepcount

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Coefficients holds the transfer function of a digital IIR filter with
// A[0] normalised to 1.
type Coefficients struct {
	B []float64
	A []float64
}

// DesignButterworth returns a digital low-pass Butterworth filter of the given
// order. cutoff is normalised to the Nyquist frequency, so the design never
// needs the sampling rate.
//
// The analog prototype poles are scaled to the pre-warped cutoff and mapped
// through the bilinear transform; all zeros land on z = -1.
func DesignButterworth(order int, cutoff float64) (Coefficients, error) {
	if err := validateFilter(cutoff, order); err != nil {
		return Coefficients{}, err
	}

	// Normalised frequencies imply fs = 2, hence the bilinear constant 2*fs = 4.
	const fs2 = 4.0
	warped := fs2 * math.Tan(math.Pi*cutoff/2)

	poles := make([]complex128, order)
	den := complex(1, 0)
	for k := 0; k < order; k++ {
		m := float64(2*k - order + 1)
		p := -cmplx.Exp(complex(0, math.Pi*m/float64(2*order))) * complex(warped, 0)
		den *= complex(fs2, 0) - p
		poles[k] = (complex(fs2, 0) + p) / (complex(fs2, 0) - p)
	}
	gain := math.Pow(warped, float64(order)) * real(1/den)

	b := make([]float64, order+1)
	for i := range b {
		b[i] = gain * binomial(order, i)
	}

	a := make([]float64, order+1)
	for i, c := range polyFromRoots(poles) {
		a[i] = real(c)
	}
	return Coefficients{B: b, A: a}, nil
}

// polyFromRoots expands prod(z - r) into coefficients, highest power first.
func polyFromRoots(roots []complex128) []complex128 {
	c := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(c)+1)
		for i, v := range c {
			next[i] += v
			next[i+1] -= v * r
		}
		c = next
	}
	return c
}

func binomial(n, k int) float64 {
	res := 1.0
	for i := 1; i <= k; i++ {
		res = res * float64(n-k+i) / float64(i)
	}
	return res
}

// Filter runs the filter once over x in direct form II transposed, starting
// from state zi (nil means zero state). x is not modified.
func (c Coefficients) Filter(x []float64, zi []float64) []float64 {
	n := len(c.A)
	z := make([]float64, n-1)
	copy(z, zi)

	y := make([]float64, len(x))
	for i, xi := range x {
		yi := c.B[0]*xi + z[0]
		for k := 0; k < n-2; k++ {
			z[k] = c.B[k+1]*xi + z[k+1] - c.A[k+1]*yi
		}
		z[n-2] = c.B[n-1]*xi - c.A[n-1]*yi
		y[i] = yi
	}
	return y
}

// SteadyState returns the initial filter state for a unit step input, i.e.
// the solution of (I - Aᵀ)·zi = B[1:] - A[1:]·B[0] where A is the companion
// matrix of the denominator.
func (c Coefficients) SteadyState() ([]float64, error) {
	n := len(c.A) - 1
	m := mat.NewDense(n, n, nil)
	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
		// Transposed companion: first column holds -a[1:], superdiagonal is 1.
		m.Set(i, 0, m.At(i, 0)+c.A[i+1])
		if i+1 < n {
			m.Set(i, i+1, m.At(i, i+1)-1)
		}
		rhs.SetVec(i, c.B[i+1]-c.A[i+1]*c.B[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(m, rhs); err != nil {
		return nil, fmt.Errorf("solve steady state: %w", err)
	}
	return zi.RawVector().Data, nil
}

// PadLength is the number of samples reflected at each end by FiltFilt.
func (c Coefficients) PadLength() int {
	return 3 * max(len(c.A), len(c.B))
}

// FiltFilt applies the filter forward and then backward so the output has
// zero phase and the same length as x. Both ends are extended by an odd
// reflection of PadLength samples and each pass starts from the steady state
// scaled to its first sample.
func (c Coefficients) FiltFilt(x []float64) ([]float64, error) {
	pad := c.PadLength()
	if len(x) <= pad {
		return nil, fmt.Errorf("%w: %d samples, need more than %d", ErrSignalTooShort, len(x), pad)
	}

	zi, err := c.SteadyState()
	if err != nil {
		return nil, err
	}

	state := make([]float64, len(zi))
	ext := oddExtend(x, pad)
	y := c.Filter(ext, floats.ScaleTo(state, ext[0], zi))
	slices.Reverse(y)
	y = c.Filter(y, floats.ScaleTo(state, y[0], zi))
	slices.Reverse(y)
	return y[pad : pad+len(x)], nil
}

// LowPass smooths signal with a zero-phase Butterworth low-pass filter.
func LowPass(signal FlatSignal, cutoff float64, order int) (FilteredSignal, error) {
	coeffs, err := DesignButterworth(order, cutoff)
	if err != nil {
		return nil, err
	}
	y, err := coeffs.FiltFilt(signal)
	if err != nil {
		return nil, err
	}
	return FilteredSignal(y), nil
}

// oddExtend mirrors n samples around each endpoint: 2*x[0]-x[n..1] before
// the signal and 2*x[last]-x[last-1..last-n] after it.
func oddExtend(x []float64, n int) []float64 {
	last := len(x) - 1
	ext := make([]float64, 0, len(x)+2*n)
	for i := n; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := 1; i <= n; i++ {
		ext = append(ext, 2*x[last]-x[last-i])
	}
	return ext
}
