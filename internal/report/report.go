// Package report renders step counting results as diagnostic charts.
//
// Both renderers draw the same two panels: the raw vertical acceleration,
// then the filtered signal with every counted step marked by a dashed
// vertical line and annotated with the total.
package report

import (
	"fmt"
	"path/filepath"

	"github.com/banshee-data/stepcount/internal/fsutil"
	"github.com/banshee-data/stepcount/internal/security"
)

const (
	sampleAxisLabel   = "Sample [-]"
	rawAxisLabel      = "Accelerometer data [g]. Z axis"
	filteredAxisLabel = "Accelerometer data filtered [g]. Z axis"
	peaksLegend       = "Máximos Detectados"
)

// RawTitle is the title of the raw acceleration panel.
func RawTitle(datasetID string) string {
	return fmt.Sprintf("Acc Z. %s dataset", datasetID)
}

// FilteredTitle is the title of the filtered signal panel.
func FilteredTitle(datasetID string) string {
	return fmt.Sprintf("Vertical component of acceleration (FILTERED). %s dataset", datasetID)
}

// StepAnnotation is the step count text drawn on the filtered panel.
func StepAnnotation(steps int) string {
	return fmt.Sprintf("Número de pasos contabilizados: %d", steps)
}

// FileName returns a filesystem-safe output name for a dataset.
func FileName(datasetID, ext string) string {
	safe := security.SanitizeFilename(datasetID)
	if safe == "" {
		safe = "dataset"
	}
	return "stepcount_" + safe + ext
}

// outputPath ensures dir exists and returns the report path inside it.
func outputPath(fsys fsutil.FileSystem, dir, datasetID, ext string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("no output directory configured")
	}
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	return filepath.Join(dir, FileName(datasetID, ext)), nil
}
