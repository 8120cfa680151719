package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kestrelpi/chudnovsky/internal/calculator"
	"github.com/kestrelpi/chudnovsky/internal/config"
	"github.com/kestrelpi/chudnovsky/internal/formatter"
	"github.com/kestrelpi/chudnovsky/internal/security"
	"github.com/kestrelpi/chudnovsky/internal/workerpool"
)

var (
	logger *slog.Logger
	cfg    *config.Config
)

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg = config.Default()

	numCPU := calculator.GetNumCPU()
	runtime.GOMAXPROCS(numCPU)
	logger.Info("initialized", "cpu_cores", numCPU)
}

var (
	outputPath  string
	printStdout bool
	cpuProfile  string
	memProfile  string
	workers     int
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chudnovsky <digits>",
		Short: "Compute π to arbitrary precision using the Chudnovsky algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompute,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "results/pi.txt", "output file path for pi digits")
	cmd.Flags().BoolVar(&printStdout, "print", false, "print pi to stdout")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to file")
	cmd.Flags().StringVar(&memProfile, "memprofile", "", "write memory profile to file")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = auto-detect from CPU count)")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func runCompute(cmd *cobra.Command, args []string) error {
	if cpuProfile != "" {
		stop, err := startCPUProfile(cpuProfile)
		if err != nil {
			return fmt.Errorf("cpu profile: %w", err)
		}
		defer stop()
	}
	if memProfile != "" {
		defer writeMemProfile(memProfile)
	}

	digits, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid digits value %q: %w", args[0], err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received interrupt signal, cancelling computation")
		cancel()
	}()

	terms := calculator.TermCount(digits, cfg)
	logger.Info("starting computation", "digits", digits, "terms", terms)

	var pool *workerpool.Pool
	if terms > cfg.MinRangeForWorkerPool {
		poolSize := workers
		if poolSize == 0 {
			poolSize = cfg.WorkerPoolSize
		}
		if poolSize == 0 {
			poolSize = calculator.GetNumCPU()
		}
		pool = workerpool.New(poolSize)
		defer pool.Close()
		logger.Info("using worker pool", "workers", poolSize)
	}

	progress, stopProgress := newProgressReporter(cfg, terms)
	defer stopProgress()

	calc := calculator.New(cfg, pool)

	startTime := time.Now()
	piStr, err := calc.ComputePi(ctx, digits, progress)
	if err != nil {
		return fmt.Errorf("compute pi: %w", err)
	}
	elapsed := time.Since(startTime)
	logger.Info("computation complete", "duration", elapsed, "digits_per_second", float64(digits)/elapsed.Seconds())

	formattedOutput := formatter.FormatPiOutput(int(digits), piStr, terms)

	sanitizedPath, err := security.SanitizeOutputPath(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	outputDir := filepath.Dir(sanitizedPath)
	if outputDir != "." && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(sanitizedPath, []byte(formattedOutput), 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", sanitizedPath, err)
	}

	logger.Info("pi saved successfully", "path", sanitizedPath, "digits", digits, "duration", elapsed)

	if printStdout {
		fmt.Println(piStr)
	}
	return nil
}

// barReporter adapts a *progressbar.ProgressBar to config.ProgressReporter.
type barReporter struct {
	bar *progressbar.ProgressBar
}

func (r *barReporter) Update(current, total int64) {
	r.bar.ChangeMax64(total)
	if err := r.bar.Set64(current); err != nil {
		logger.Debug("failed to update progress bar", "error", err)
	}
}

func (r *barReporter) Finish() {
	if err := r.bar.Finish(); err != nil {
		logger.Debug("failed to finish progress bar", "error", err)
	}
}

func (r *barReporter) SetDescription(desc string) {
	r.bar.Describe(desc)
}

var _ config.ProgressReporter = (*barReporter)(nil)

// newProgressReporter wires a calculator.ProgressFunc to a
// config.ProgressReporter backed by a progressbar, serializing every
// update through a single consumer goroutine since progressbar is not
// safe for concurrent use and ProgressFunc is invoked from the
// calculator's worker goroutines. The returned stop function drains and
// finishes the bar; it is safe to call even if the progress bar is
// disabled.
func newProgressReporter(cfg *config.Config, terms int64) (calculator.ProgressFunc, func()) {
	if !cfg.ProgressBarEnabled {
		return nil, func() {}
	}

	reporter := &barReporter{bar: progressbar.NewOptions64(terms,
		progressbar.OptionSetDescription("computing terms"),
		progressbar.OptionSetWidth(50),
	)}

	updates := make(chan int64, 64)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for current := range updates {
			reporter.Update(current, terms)
		}
	}()

	progress := func(phase calculator.Phase, fraction float64) {
		if phase != calculator.PhaseSplit {
			return
		}
		select {
		case updates <- int64(fraction * float64(terms)):
		default:
			// drop intermediate updates rather than block a worker goroutine
		}
	}

	stop := func() {
		close(updates)
		<-done
		reporter.Finish()
	}

	return progress, stop
}

func startCPUProfile(path string) (stop func(), err error) {
	// #nosec G304 -- path is a user-provided flag for profiling
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			logger.Error("failed to close cpu profile", "error", err)
		}
	}, nil
}

func writeMemProfile(path string) {
	// #nosec G304 -- path is a user-provided flag for profiling
	f, err := os.Create(path)
	if err != nil {
		logger.Error("failed to create memory profile", "error", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("failed to close memory profile", "error", err)
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		logger.Error("failed to write memory profile", "error", err)
	}
}
