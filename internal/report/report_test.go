package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/stepcount/internal/fsutil"
	"github.com/banshee-data/stepcount/internal/stepcount"
	"github.com/banshee-data/stepcount/internal/testutil"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func cosineResult(t *testing.T) *stepcount.Result {
	t.Helper()
	raw := stepcount.RawWindowedSignal(testutil.Windowed(testutil.Cosine(1000, 50, 1), 25, 6))
	res, err := stepcount.Count(raw, stepcount.DefaultParams())
	require.NoError(t, err)
	require.Equal(t, 19, res.Steps)
	return res
}

func flatResult(t *testing.T) *stepcount.Result {
	t.Helper()
	raw := stepcount.RawWindowedSignal(testutil.Windowed(testutil.Constant(500, 1), 25, 6))
	res, err := stepcount.Count(raw, stepcount.DefaultParams())
	require.NoError(t, err)
	require.Zero(t, res.Steps)
	return res
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		ext  string
		want string
	}{
		{"PMP01", ".png", "stepcount_PMP01.png"},
		{"sub 3/walk", ".html", "stepcount_sub_3_walk.html"},
		{"../etc", ".png", "stepcount_etc.png"},
		{"", ".png", "stepcount_dataset.png"},
		{"..", ".png", "stepcount_dataset.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.id, tt.ext), "id %q", tt.id)
	}
}

func TestTitles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Acc Z. PMP01 dataset", RawTitle("PMP01"))
	assert.Equal(t, "Vertical component of acceleration (FILTERED). PMP01 dataset", FilteredTitle("PMP01"))
	assert.Equal(t, "Número de pasos contabilizados: 7", StepAnnotation(7))
}

func TestPNGRenderer(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	r := NewPNGRenderer("/plots/run1")
	r.FS = mfs

	require.NoError(t, r.Report("PMP01", cosineResult(t)))
	require.NoError(t, r.Report("PMP02", flatResult(t)))

	assert.Equal(t, []string{
		filepath.Join("/plots/run1", "stepcount_PMP01.png"),
		filepath.Join("/plots/run1", "stepcount_PMP02.png"),
	}, mfs.Files())

	data, err := mfs.ReadFile("/plots/run1/stepcount_PMP01.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic), "output is not a PNG")
}

func TestPNGRenderer_NoDir(t *testing.T) {
	t.Parallel()

	r := NewPNGRenderer("")
	r.FS = fsutil.NewMemoryFileSystem()
	err := r.Report("PMP01", cosineResult(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output directory")
}

func TestHTMLRenderer(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	r := NewHTMLRenderer("/html")
	r.FS = mfs

	require.NoError(t, r.Report("PMP01", cosineResult(t)))

	data, err := mfs.ReadFile("/html/stepcount_PMP01.html")
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "Acc Z. PMP01 dataset")
	assert.Contains(t, page, "Vertical component of acceleration (FILTERED). PMP01 dataset")
	assert.Contains(t, page, "pasos contabilizados: 19")
	assert.Contains(t, page, "Accelerometer data filtered [g]. Z axis")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(page), "<"), "expected an HTML document")
}

func TestHTMLRenderer_NoPeaks(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	r := NewHTMLRenderer("/html")
	r.FS = mfs

	require.NoError(t, r.Report("flat", flatResult(t)))
	data, err := mfs.ReadFile("/html/stepcount_flat.html")
	require.NoError(t, err)
	assert.Contains(t, string(data), "pasos contabilizados: 0")
}

func TestRenderers_AreReporters(t *testing.T) {
	t.Parallel()

	var _ stepcount.Reporter = (*PNGRenderer)(nil)
	var _ stepcount.Reporter = (*HTMLRenderer)(nil)
}
