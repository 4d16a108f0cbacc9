package db

import (
	"fmt"
	"time"
)

// StepResult is one persisted dataset analysis.
type StepResult struct {
	ID            int64
	RunID         string
	DatasetID     string
	Steps         int
	Samples       int
	RawPeaks      int
	DistancePeaks int
	CutoffNorm    float64
	FilterOrder   int
	MinDistance   int
	MinProminence float64
	CreatedAt     time.Time
}

// RecordResult inserts r and sets its ID. A zero CreatedAt is stamped
// with the current time.
func (db *DB) RecordResult(r *StepResult) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	res, err := db.Exec(`
		INSERT INTO step_results (
			run_id, dataset_id, steps, samples, raw_peaks, distance_peaks,
			cutoff_norm, filter_order, min_distance, min_prominence, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.DatasetID, r.Steps, r.Samples, r.RawPeaks, r.DistancePeaks,
		r.CutoffNorm, r.FilterOrder, r.MinDistance, r.MinProminence, r.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert step result for %s: %w", r.DatasetID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("step result id: %w", err)
	}
	r.ID = id
	return nil
}

// ListResults returns the results of runID in insertion order, or every
// stored result when runID is empty.
func (db *DB) ListResults(runID string) ([]StepResult, error) {
	query := `
		SELECT result_id, run_id, dataset_id, steps, samples, raw_peaks, distance_peaks,
		       cutoff_norm, filter_order, min_distance, min_prominence, created_at
		FROM step_results`
	var args []interface{}
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY result_id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query step results: %w", err)
	}
	defer rows.Close()

	var out []StepResult
	for rows.Next() {
		var r StepResult
		var created int64
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.DatasetID, &r.Steps, &r.Samples, &r.RawPeaks, &r.DistancePeaks,
			&r.CutoffNorm, &r.FilterOrder, &r.MinDistance, &r.MinProminence, &created,
		); err != nil {
			return nil, fmt.Errorf("scan step result: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}
