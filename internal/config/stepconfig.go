package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/stepcount/internal/stepcount"
)

// DefaultConfigPath is the path to the canonical step counting defaults file.
const DefaultConfigPath = "config/stepcount.defaults.json"

// StepConfig represents the JSON configuration of the step counter. Every
// field is optional; the Get* methods fall back to the built-in defaults.
type StepConfig struct {
	// Low-pass filter
	CutoffNorm  *float64 `json:"cutoff_norm,omitempty"` // fraction of Nyquist, e.g. 2 Hz / 25 Hz
	FilterOrder *int     `json:"filter_order,omitempty"`

	// Peak refinement
	MinPeakDistance *int     `json:"min_peak_distance,omitempty"` // samples
	MinProminence   *float64 `json:"min_prominence,omitempty"`    // g
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyStepConfig returns a StepConfig with all fields set to nil.
func EmptyStepConfig() *StepConfig {
	return &StepConfig{}
}

// DefaultStepConfig returns a StepConfig with every field populated from
// the built-in defaults.
func DefaultStepConfig() *StepConfig {
	return &StepConfig{
		CutoffNorm:      ptrFloat64(stepcount.DefaultCutoffNorm),
		FilterOrder:     ptrInt(stepcount.DefaultOrder),
		MinPeakDistance: ptrInt(stepcount.DefaultMinDistance),
		MinProminence:   ptrFloat64(stepcount.DefaultMinProminence),
	}
}

// LoadStepConfig loads a StepConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadStepConfig(path string) (*StepConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyStepConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents up to the repo root.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *StepConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadStepConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the configured values through the same rules the step
// counter applies before processing.
func (c *StepConfig) Validate() error {
	return c.ToParams().Validate()
}

// GetCutoffNorm returns the cutoff_norm value or the default.
func (c *StepConfig) GetCutoffNorm() float64 {
	if c.CutoffNorm == nil {
		return stepcount.DefaultCutoffNorm
	}
	return *c.CutoffNorm
}

// GetFilterOrder returns the filter_order value or the default.
func (c *StepConfig) GetFilterOrder() int {
	if c.FilterOrder == nil {
		return stepcount.DefaultOrder
	}
	return *c.FilterOrder
}

// GetMinPeakDistance returns the min_peak_distance value or the default.
func (c *StepConfig) GetMinPeakDistance() int {
	if c.MinPeakDistance == nil {
		return stepcount.DefaultMinDistance
	}
	return *c.MinPeakDistance
}

// GetMinProminence returns the min_prominence value or the default.
func (c *StepConfig) GetMinProminence() float64 {
	if c.MinProminence == nil {
		return stepcount.DefaultMinProminence
	}
	return *c.MinProminence
}

// ToParams converts the config into step counter parameters.
func (c *StepConfig) ToParams() stepcount.Params {
	return stepcount.Params{
		CutoffNorm:    c.GetCutoffNorm(),
		Order:         c.GetFilterOrder(),
		MinDistance:   c.GetMinPeakDistance(),
		MinProminence: c.GetMinProminence(),
	}
}
