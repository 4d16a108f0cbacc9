package stepcount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/stepcount/internal/monitoring"
	"github.com/banshee-data/stepcount/internal/testutil"
)

func TestExtractVertical(t *testing.T) {
	raw := RawWindowedSignal{
		{{0, 0, 0}, {1, 1, 1}, {1, 2, 3}, {9, 9, 9}},
		{{0, 0, 0}, {1, 1, 1}, {4, 5, 6}, {9, 9, 9}},
	}

	var logged []string
	original := monitoring.Logf
	defer func() { monitoring.Logf = original }()
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, format)
	})

	flat, err := ExtractVertical(raw)
	require.NoError(t, err)
	assert.Equal(t, FlatSignal{1, 2, 3, 4, 5, 6}, flat)
	assert.Len(t, logged, 1)
}

func TestExtractVertical_RoundTripsWindowing(t *testing.T) {
	t.Parallel()

	signal := testutil.Cosine(1000, 50, 1)
	flat, err := ExtractVertical(testutil.Windowed(signal, 25, 6))
	require.NoError(t, err)
	assert.Equal(t, signal, []float64(flat))
}

func TestExtractVertical_Empty(t *testing.T) {
	t.Parallel()

	flat, err := ExtractVertical(nil)
	require.NoError(t, err)
	assert.Empty(t, flat)

	flat, err = ExtractVertical(RawWindowedSignal{{{}, {}, {}}})
	require.NoError(t, err)
	assert.Empty(t, flat)
}

func TestExtractVertical_InvalidShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        RawWindowedSignal
		wantWindow int
	}{
		{
			name:       "two channels",
			raw:        RawWindowedSignal(testutil.Windowed(testutil.Cosine(100, 50, 1), 25, 2)),
			wantWindow: 0,
		},
		{
			name:       "no channels",
			raw:        RawWindowedSignal{{}},
			wantWindow: 0,
		},
		{
			name: "ragged channel count",
			raw: RawWindowedSignal{
				{{0}, {0}, {1}},
				{{0}, {0}, {1}, {2}},
			},
			wantWindow: 1,
		},
		{
			name: "ragged window length",
			raw: RawWindowedSignal{
				{{0, 0}, {0, 0}, {1, 2}},
				{{0, 0}, {0, 0}, {3}},
			},
			wantWindow: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flat, err := ExtractVertical(tt.raw)
			assert.Nil(t, flat)
			var se *InvalidShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantWindow, se.Window)
			assert.NotEmpty(t, se.Error())
		})
	}
}

func TestRawWindowedSignal_Shape(t *testing.T) {
	t.Parallel()

	m, c, w := RawWindowedSignal(testutil.Windowed(testutil.Cosine(100, 50, 1), 25, 6)).Shape()
	assert.Equal(t, []int{4, 6, 25}, []int{m, c, w})

	m, c, w = RawWindowedSignal(nil).Shape()
	assert.Equal(t, []int{0, 0, 0}, []int{m, c, w})
}
