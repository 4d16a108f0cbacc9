package stepcount

// PeakSet is a strictly increasing list of sample indices into a signal.
type PeakSet []int

// FindPeaks returns every sample strictly greater than both of its immediate
// neighbours. The first and last samples are never peaks.
func FindPeaks(signal []float64) PeakSet {
	peaks := PeakSet{}
	for i := 1; i < len(signal)-1; i++ {
		if signal[i] > signal[i-1] && signal[i] > signal[i+1] {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// FilterByDistance drops the later peak of every adjacent pair closer than
// minDistance samples.
//
// The differences are taken once over the input set and every flagged peak
// is removed in a single pass; nothing is re-evaluated after a removal. In a
// chain such as 100, 115, 130 with minDistance 20 both 115 and 130 are
// dropped even though 130 is far enough from the surviving 100.
func FilterByDistance(peaks PeakSet, minDistance int) PeakSet {
	out := make(PeakSet, 0, len(peaks))
	for i, p := range peaks {
		if i > 0 && p-peaks[i-1] < minDistance {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Prominences returns the prominence of each peak: its height above the
// higher of the two lowest points reached walking left and right from it
// until a strictly higher sample or the signal edge.
func Prominences(signal []float64, peaks PeakSet) []float64 {
	out := make([]float64, len(peaks))
	for i, p := range peaks {
		out[i] = prominence(signal, p)
	}
	return out
}

func prominence(signal []float64, peak int) float64 {
	height := signal[peak]

	leftMin := height
	for i := peak; i >= 0 && signal[i] <= height; i-- {
		if signal[i] < leftMin {
			leftMin = signal[i]
		}
	}

	rightMin := height
	for i := peak; i < len(signal) && signal[i] <= height; i++ {
		if signal[i] < rightMin {
			rightMin = signal[i]
		}
	}

	return height - max(leftMin, rightMin)
}

// FilterByProminence keeps the peaks whose prominence is at least threshold
// and returns them together with their prominences.
func FilterByProminence(signal []float64, peaks PeakSet, threshold float64) (PeakSet, []float64) {
	kept := make(PeakSet, 0, len(peaks))
	proms := make([]float64, 0, len(peaks))
	for i, prom := range Prominences(signal, peaks) {
		if prom >= threshold {
			kept = append(kept, peaks[i])
			proms = append(proms, prom)
		}
	}
	return kept, proms
}

// Refinement records the peak set after each refinement stage.
type Refinement struct {
	Raw         PeakSet
	Distance    PeakSet
	Final       PeakSet
	Prominences []float64 // aligned with Final
}

// Refine runs candidate detection, the minimum-distance rule and the
// prominence threshold over an already filtered signal.
func Refine(signal []float64, params Params) (*Refinement, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	raw := FindPeaks(signal)
	spaced := FilterByDistance(raw, params.MinDistance)
	final, proms := FilterByProminence(signal, spaced, params.MinProminence)
	return &Refinement{
		Raw:         raw,
		Distance:    spaced,
		Final:       final,
		Prominences: proms,
	}, nil
}
