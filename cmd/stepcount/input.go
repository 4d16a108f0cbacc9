package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/stepcount/internal/fsutil"
	"github.com/banshee-data/stepcount/internal/stepcount"
)

// Recording is one dataset loaded from disk.
type Recording struct {
	ID      string
	Windows stepcount.RawWindowedSignal
}

// recordingFile is the object form of an input file. A bare
// [windows][channels][samples] array is accepted as well.
type recordingFile struct {
	Dataset string         `json:"dataset"`
	Windows *[][][]float64 `json:"windows"`
}

// loadRecording reads a JSON recording. The dataset ID falls back to the
// file name without its extension.
func loadRecording(fsys fsutil.FileSystem, path string) (*Recording, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}

	rec := &Recording{ID: datasetIDFromPath(path)}
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("recording %s is empty", path)
	case trimmed[0] == '[':
		var windows [][][]float64
		if err := json.Unmarshal(trimmed, &windows); err != nil {
			return nil, fmt.Errorf("failed to parse recording %s: %w", path, err)
		}
		rec.Windows = windows
	default:
		var f recordingFile
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return nil, fmt.Errorf("failed to parse recording %s: %w", path, err)
		}
		if f.Windows == nil {
			return nil, fmt.Errorf("recording %s has no \"windows\" field", path)
		}
		rec.Windows = *f.Windows
		if f.Dataset != "" {
			rec.ID = f.Dataset
		}
	}
	return rec, nil
}

func datasetIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
