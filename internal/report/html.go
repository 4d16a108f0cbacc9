package report

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/stepcount/internal/fsutil"
	"github.com/banshee-data/stepcount/internal/stepcount"
)

// HTMLRenderer writes an interactive go-echarts page per recording.
type HTMLRenderer struct {
	Dir string
	FS  fsutil.FileSystem
	// AssetsHost overrides the echarts asset location, e.g. for offline use.
	AssetsHost string
}

// NewHTMLRenderer creates a renderer writing into dir on the OS filesystem.
func NewHTMLRenderer(dir string) *HTMLRenderer {
	return &HTMLRenderer{Dir: dir, FS: fsutil.OSFileSystem{}}
}

// Report implements stepcount.Reporter.
func (r *HTMLRenderer) Report(datasetID string, res *stepcount.Result) error {
	path, err := outputPath(r.FS, r.Dir, datasetID, ".html")
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Step count - %s", datasetID)
	if r.AssetsHost != "" {
		page.AssetsHost = r.AssetsHost
	}
	page.AddCharts(
		r.rawChart(datasetID, res),
		r.filteredChart(datasetID, res),
	)

	f, err := r.FS.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render html: %w", err)
	}
	return f.Close()
}

func (r *HTMLRenderer) init(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle:  title,
		Width:      "900px",
		Height:     "420px",
		AssetsHost: r.AssetsHost,
	})
}

func (r *HTMLRenderer) rawChart(datasetID string, res *stepcount.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		r.init(RawTitle(datasetID)),
		charts.WithTitleOpts(opts.Title{Title: RawTitle(datasetID)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: sampleAxisLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: rawAxisLabel, NameLocation: "middle", NameGap: 40}),
	)
	line.SetXAxis(sampleAxis(len(res.Flat))).
		AddSeries("Acc Z", lineData(res.Flat),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

func (r *HTMLRenderer) filteredChart(datasetID string, res *stepcount.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		r.init(FilteredTitle(datasetID)),
		charts.WithTitleOpts(opts.Title{
			Title:    FilteredTitle(datasetID),
			Subtitle: StepAnnotation(res.Steps),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: sampleAxisLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: filteredAxisLabel, NameLocation: "middle", NameGap: 40}),
	)

	markers := make([]opts.MarkLineNameXAxisItem, len(res.Peaks))
	for i, idx := range res.Peaks {
		markers[i] = opts.MarkLineNameXAxisItem{Name: fmt.Sprintf("x=%d", idx), XAxis: idx}
	}
	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	}
	if len(markers) > 0 {
		seriesOpts = append(seriesOpts,
			charts.WithMarkLineNameXAxisItemOpts(markers...),
			charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
				Symbol:    []string{"none"},
				LineStyle: &opts.LineStyle{Color: "red", Type: "dashed"},
			}),
		)
	}
	line.SetXAxis(sampleAxis(len(res.Filtered))).
		AddSeries("filtered", lineData(res.Filtered), seriesOpts...)

	points := make([]opts.ScatterData, len(res.Peaks))
	for i, idx := range res.Peaks {
		points[i] = opts.ScatterData{Value: []interface{}{idx, res.Filtered[idx]}}
	}
	scatter := charts.NewScatter()
	scatter.AddSeries(peaksLegend, points,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	line.Overlap(scatter)
	return line
}

func sampleAxis(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	return xs
}

func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		out[i] = opts.LineData{Value: v}
	}
	return out
}
