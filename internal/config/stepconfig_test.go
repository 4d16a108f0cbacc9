package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/stepcount/internal/stepcount"
)

func TestDefaultStepConfig(t *testing.T) {
	cfg := DefaultStepConfig()

	if cfg.CutoffNorm == nil || *cfg.CutoffNorm != 0.08 {
		t.Errorf("Expected CutoffNorm 0.08, got %v", cfg.CutoffNorm)
	}
	if cfg.FilterOrder == nil || *cfg.FilterOrder != 4 {
		t.Errorf("Expected FilterOrder 4, got %v", cfg.FilterOrder)
	}
	if cfg.MinPeakDistance == nil || *cfg.MinPeakDistance != 20 {
		t.Errorf("Expected MinPeakDistance 20, got %v", cfg.MinPeakDistance)
	}
	if cfg.MinProminence == nil || *cfg.MinProminence != 0.1 {
		t.Errorf("Expected MinProminence 0.1, got %v", cfg.MinProminence)
	}

	assert.Equal(t, stepcount.DefaultParams(), cfg.ToParams())
}

func TestEmptyStepConfig_UsesDefaults(t *testing.T) {
	cfg := EmptyStepConfig()

	assert.Equal(t, 0.08, cfg.GetCutoffNorm())
	assert.Equal(t, 4, cfg.GetFilterOrder())
	assert.Equal(t, 20, cfg.GetMinPeakDistance())
	assert.Equal(t, 0.1, cfg.GetMinProminence())
	assert.NoError(t, cfg.Validate())
}

func TestLoadStepConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "cutoff_norm": 0.1,
  "min_peak_distance": 12
}`
	require.NoError(t, os.WriteFile(configPath, []byte(testJSON), 0644))

	cfg, err := LoadStepConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.GetCutoffNorm())
	assert.Equal(t, 12, cfg.GetMinPeakDistance())
	// Omitted fields keep their defaults.
	assert.Nil(t, cfg.FilterOrder)
	assert.Equal(t, 4, cfg.GetFilterOrder())
	assert.Equal(t, 0.1, cfg.GetMinProminence())

	params := cfg.ToParams()
	assert.Equal(t, stepcount.Params{CutoffNorm: 0.1, Order: 4, MinDistance: 12, MinProminence: 0.1}, params)
}

func TestLoadStepConfig_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(tmpDir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
		return p
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"wrong extension", write("cfg.yaml", `{}`), "must have .json extension"},
		{"missing file", filepath.Join(tmpDir, "missing.json"), "failed to stat config file"},
		{"bad json", write("bad.json", `{"cutoff_norm":`), "failed to parse config JSON"},
		{"cutoff out of range", write("cutoff.json", `{"cutoff_norm": 1.2}`), "cutoff_norm"},
		{"zero order", write("order.json", `{"filter_order": 0}`), "order"},
		{"negative distance", write("dist.json", `{"min_peak_distance": -1}`), "min_distance"},
		{"zero prominence", write("prom.json", `{"min_prominence": 0}`), "min_prominence"},
		{"too large", write("large.json", `{"pad": "`+strings.Repeat("x", 1024*1024)+`"}`), "config file too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStepConfig(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadStepConfig_InvalidParameterIsTyped(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"cutoff_norm": -0.5}`), 0644))

	_, err := LoadStepConfig(p)
	var pe *stepcount.InvalidParameterError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, -0.5, pe.Value)
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	assert.Equal(t, DefaultStepConfig().ToParams(), cfg.ToParams())
}
