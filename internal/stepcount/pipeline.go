package stepcount

import (
	"fmt"
	"io"

	"github.com/banshee-data/stepcount/internal/monitoring"
)

// Result is the outcome of one step counting run. All slices share the
// index space of Flat.
type Result struct {
	Params        Params
	Flat          FlatSignal
	Filtered      FilteredSignal
	RawPeaks      PeakSet
	DistancePeaks PeakSet
	Peaks         PeakSet
	Prominences   []float64 // aligned with Peaks
	Steps         int
}

// Count estimates the number of steps in raw. It validates params, extracts
// the vertical axis, low-pass filters it and refines the local maxima. No
// partial result is returned on error.
func Count(raw RawWindowedSignal, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	flat, err := ExtractVertical(raw)
	if err != nil {
		return nil, err
	}
	if len(flat) == 0 {
		return nil, ErrEmptySignal
	}

	filtered, err := LowPass(flat, params.CutoffNorm, params.Order)
	if err != nil {
		return nil, fmt.Errorf("low-pass filter: %w", err)
	}

	ref, err := Refine(filtered, params)
	if err != nil {
		return nil, err
	}

	return &Result{
		Params:        params,
		Flat:          flat,
		Filtered:      filtered,
		RawPeaks:      ref.Raw,
		DistancePeaks: ref.Distance,
		Peaks:         ref.Final,
		Prominences:   ref.Prominences,
		Steps:         len(ref.Final),
	}, nil
}

// SummaryLine formats the human-readable step count report.
func SummaryLine(datasetID string, steps int) string {
	return fmt.Sprintf("El número de pasos dados por el sujeto del dataset %s durante la actividad es: %d pasos.", datasetID, steps)
}

// Reporter consumes a finished Result, e.g. to render a plot or store it.
type Reporter interface {
	Report(datasetID string, res *Result) error
}

// Analyzer runs Count and hands the result to its reporters. Reporters are
// only invoked after a successful count.
type Analyzer struct {
	Params    Params
	Reporters []Reporter
	// Summary receives SummaryLine for every analysed recording when set.
	Summary io.Writer
}

// NewAnalyzer returns an Analyzer with the given parameters and reporters.
func NewAnalyzer(params Params, reporters ...Reporter) *Analyzer {
	return &Analyzer{Params: params, Reporters: reporters}
}

// Analyze counts the steps of one recording identified by datasetID.
func (a *Analyzer) Analyze(datasetID string, raw RawWindowedSignal) (*Result, error) {
	res, err := Count(raw, a.Params)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", datasetID, err)
	}

	for _, r := range a.Reporters {
		if err := r.Report(datasetID, res); err != nil {
			return nil, fmt.Errorf("dataset %s: report: %w", datasetID, err)
		}
	}

	monitoring.Logf("dataset %s: %d raw peaks, %d after distance filter, %d steps",
		datasetID, len(res.RawPeaks), len(res.DistancePeaks), res.Steps)
	if a.Summary != nil {
		if _, err := fmt.Fprintln(a.Summary, SummaryLine(datasetID, res.Steps)); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}
	return res, nil
}
