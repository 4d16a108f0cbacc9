package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/stepcount/internal/fsutil"
	"github.com/banshee-data/stepcount/internal/stepcount"
)

var (
	peakColor       = color.RGBA{R: 255, A: 255}
	annotationColor = color.RGBA{B: 255, A: 255}
)

// PNGRenderer writes a two-panel PNG per recording using gonum/plot.
type PNGRenderer struct {
	Dir    string
	FS     fsutil.FileSystem
	Width  vg.Length
	Height vg.Length
}

// NewPNGRenderer creates a renderer writing into dir on the OS filesystem
// with a 6x8 inch figure.
func NewPNGRenderer(dir string) *PNGRenderer {
	return &PNGRenderer{
		Dir:    dir,
		FS:     fsutil.OSFileSystem{},
		Width:  6 * vg.Inch,
		Height: 8 * vg.Inch,
	}
}

// Report implements stepcount.Reporter.
func (r *PNGRenderer) Report(datasetID string, res *stepcount.Result) error {
	path, err := outputPath(r.FS, r.Dir, datasetID, ".png")
	if err != nil {
		return err
	}

	rawPlot, err := rawPanel(datasetID, res.Flat)
	if err != nil {
		return fmt.Errorf("raw panel: %w", err)
	}
	filteredPlot, err := filteredPanel(datasetID, res)
	if err != nil {
		return fmt.Errorf("filtered panel: %w", err)
	}

	img := vgimg.New(r.Width, r.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
		PadY:      vg.Points(12),
	}
	canvases := plot.Align([][]*plot.Plot{{rawPlot}, {filteredPlot}}, tiles, dc)
	rawPlot.Draw(canvases[0][0])
	filteredPlot.Draw(canvases[1][0])

	f, err := r.FS.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write png: %w", err)
	}
	return f.Close()
}

func rawPanel(datasetID string, flat stepcount.FlatSignal) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = RawTitle(datasetID)
	p.X.Label.Text = sampleAxisLabel
	p.Y.Label.Text = rawAxisLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(seriesXYs(flat))
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(1)
	p.Add(line)
	return p, nil
}

func filteredPanel(datasetID string, res *stepcount.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = FilteredTitle(datasetID)
	p.X.Label.Text = sampleAxisLabel
	p.Y.Label.Text = filteredAxisLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(seriesXYs(res.Filtered))
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	lo, hi := floats.Min(res.Filtered), floats.Max(res.Filtered)
	for _, idx := range res.Peaks {
		marker, err := plotter.NewLine(plotter.XYs{
			{X: float64(idx), Y: lo},
			{X: float64(idx), Y: hi},
		})
		if err != nil {
			return nil, err
		}
		marker.Color = peakColor
		marker.Width = vg.Points(1)
		marker.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(marker)
	}

	if len(res.Peaks) > 0 {
		pts := make(plotter.XYs, len(res.Peaks))
		for i, idx := range res.Peaks {
			pts[i] = plotter.XY{X: float64(idx), Y: res.Filtered[idx]}
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = peakColor
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add(peaksLegend, scatter)
		p.Legend.Top = true
	}

	// Annotation sits at 10% of the panel height, centred horizontally.
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: float64(len(res.Filtered)) / 2, Y: lo + 0.1*(hi-lo)}},
		Labels: []string{StepAnnotation(res.Steps)},
	})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = annotationColor
		labels.TextStyle[i].XAlign = text.XCenter
	}
	p.Add(labels)
	return p, nil
}

func seriesXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	return pts
}
