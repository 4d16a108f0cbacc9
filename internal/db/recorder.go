package db

import (
	"github.com/google/uuid"

	"github.com/banshee-data/stepcount/internal/stepcount"
	"github.com/banshee-data/stepcount/internal/timeutil"
)

// Recorder stores every analysed dataset under a shared run ID.
type Recorder struct {
	DB    *DB
	RunID string
	Clock timeutil.Clock
}

// NewRecorder returns a Recorder with a fresh run ID.
func NewRecorder(db *DB) *Recorder {
	return &Recorder{DB: db, RunID: uuid.NewString(), Clock: timeutil.RealClock{}}
}

func (r *Recorder) Report(datasetID string, res *stepcount.Result) error {
	return r.DB.RecordResult(&StepResult{
		RunID:         r.RunID,
		DatasetID:     datasetID,
		Steps:         res.Steps,
		Samples:       len(res.Flat),
		RawPeaks:      len(res.RawPeaks),
		DistancePeaks: len(res.DistancePeaks),
		CutoffNorm:    res.Params.CutoffNorm,
		FilterOrder:   res.Params.Order,
		MinDistance:   res.Params.MinDistance,
		MinProminence: res.Params.MinProminence,
		CreatedAt:     r.Clock.Now(),
	})
}
