// Command stepcount estimates the number of steps in windowed accelerometer
// recordings. Each input is a JSON file holding [windows][channels][samples];
// the vertical axis is low-pass filtered and its peaks counted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/stepcount/internal/config"
	"github.com/banshee-data/stepcount/internal/db"
	"github.com/banshee-data/stepcount/internal/fsutil"
	"github.com/banshee-data/stepcount/internal/monitoring"
	"github.com/banshee-data/stepcount/internal/report"
	"github.com/banshee-data/stepcount/internal/stepcount"
	"github.com/banshee-data/stepcount/internal/timeutil"
	"github.com/banshee-data/stepcount/internal/version"
)

var clock timeutil.Clock = timeutil.RealClock{}

// Config holds the command line settings.
type Config struct {
	ConfigPath  string
	Dataset     string
	PNGDir      string
	HTMLDir     string
	DBPath      string
	Workers     int
	Verbose     bool
	Quiet       bool
	ShowVersion bool
	Inputs      []string
}

// outcome is the result of analysing one input file.
type outcome struct {
	id     string
	result *stepcount.Result
	err    error
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if cfg.ShowVersion {
		fmt.Println(version.String())
		return
	}

	if len(cfg.Inputs) == 0 {
		log.Fatal("at least one recording file is required")
	}

	setupLogging(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, fsutil.OSFileSystem{}, os.Stdout); err != nil {
		log.Fatalf("stepcount failed: %v", err)
	}
}

func parseFlags(args []string, output io.Writer) (Config, error) {
	cfg := Config{}

	fs := flag.NewFlagSet("stepcount", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to a JSON parameter file (defaults apply when omitted)")
	fs.StringVar(&cfg.Dataset, "dataset", "", "Dataset ID override (single input only)")
	fs.StringVar(&cfg.PNGDir, "png", "", "Directory for PNG reports")
	fs.StringVar(&cfg.HTMLDir, "html", "", "Directory for interactive HTML reports")
	fs.StringVar(&cfg.DBPath, "db", "", "sqlite database for storing results")
	fs.IntVar(&cfg.Workers, "workers", 1, "Number of recordings analysed concurrently (0 = one per CPU)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Only log warnings and errors")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Inputs = fs.Args()

	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("-workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Dataset != "" && len(cfg.Inputs) > 1 {
		return Config{}, fmt.Errorf("-dataset can only be used with a single input, got %d", len(cfg.Inputs))
	}
	if cfg.Verbose && cfg.Quiet {
		return Config{}, fmt.Errorf("-verbose and -quiet are mutually exclusive")
	}
	return cfg, nil
}

// setupLogging installs a tint handler as the default slog logger and routes
// library diagnostics through it.
func setupLogging(cfg Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case cfg.Verbose:
		level = slog.LevelDebug
	case cfg.Quiet:
		level = slog.LevelWarn
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{Level: level}))
	slog.SetDefault(logger)
	monitoring.SetLogger(monitoring.SlogLogf(logger))
	return logger
}

func loadParams(path string) (stepcount.Params, error) {
	if path == "" {
		return stepcount.DefaultParams(), nil
	}
	cfg, err := config.LoadStepConfig(path)
	if err != nil {
		return stepcount.Params{}, err
	}
	return cfg.ToParams(), nil
}

// run analyses every input and prints one summary line per recording in
// input order. Failures of individual recordings are logged and reported
// together once the batch completes.
func run(ctx context.Context, cfg Config, fsys fsutil.FileSystem, stdout io.Writer) error {
	params, err := loadParams(cfg.ConfigPath)
	if err != nil {
		return err
	}

	var reporters []stepcount.Reporter
	if cfg.PNGDir != "" {
		r := report.NewPNGRenderer(cfg.PNGDir)
		r.FS = fsys
		reporters = append(reporters, r)
	}
	if cfg.HTMLDir != "" {
		r := report.NewHTMLRenderer(cfg.HTMLDir)
		r.FS = fsys
		reporters = append(reporters, r)
	}
	if cfg.DBPath != "" {
		store, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open results database: %w", err)
		}
		defer store.Close()
		rec := db.NewRecorder(store)
		slog.Info("recording results", "db", cfg.DBPath, "run_id", rec.RunID)
		reporters = append(reporters, rec)
	}

	analyzer := stepcount.NewAnalyzer(params, reporters...)
	start := clock.Now()
	outcomes := make([]outcome, len(cfg.Inputs))

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range cfg.Inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = outcome{id: datasetIDFromPath(path), err: err}
				return nil
			}
			rec, err := loadRecording(fsys, path)
			if err != nil {
				outcomes[i] = outcome{id: datasetIDFromPath(path), err: err}
				return nil
			}
			if cfg.Dataset != "" {
				rec.ID = cfg.Dataset
			}
			res, err := analyzer.Analyze(rec.ID, rec.Windows)
			outcomes[i] = outcome{id: rec.ID, result: res, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var steps []float64
	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
			slog.Error("recording failed", "dataset", o.id, "err", o.err)
			continue
		}
		fmt.Fprintln(stdout, stepcount.SummaryLine(o.id, o.result.Steps))
		steps = append(steps, float64(o.result.Steps))
	}

	slog.Info("batch complete", "recordings", len(cfg.Inputs), "failed", failed, "elapsed", clock.Since(start))
	if len(steps) > 1 {
		mean, std := stat.MeanStdDev(steps, nil)
		fmt.Fprintf(stdout, "Recordings: %d, mean steps: %.1f, std dev: %.1f\n", len(steps), mean, std)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d recordings failed", failed, len(cfg.Inputs))
	}
	return nil
}
