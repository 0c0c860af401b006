// Command audit-run performs one audit and writes the JSON report. It exits
// with status 1 when the overall status reaches the -fail-on threshold.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/MJE43/rtp-audit/internal/audit"
	"github.com/MJE43/rtp-audit/internal/catalog"
	"github.com/MJE43/rtp-audit/internal/config"
	"github.com/MJE43/rtp-audit/internal/engine"
	"github.com/MJE43/rtp-audit/internal/logging"
	"github.com/MJE43/rtp-audit/internal/scenario"
	"github.com/MJE43/rtp-audit/internal/telemetry"
)

const (
	failOnWarning  = "warning"
	failOnCritical = "critical"
	failOnNever    = "never"
)

// errThreshold signals that the report breached -fail-on.
var errThreshold = errors.New("audit status reached failure threshold")

type options struct {
	plays   int
	workers int
	out     string
	failOn  string
	seed    uint64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errThreshold) {
			fmt.Fprintf(os.Stderr, "audit-run: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg config.Config) (options, error) {
	fs := flag.NewFlagSet("audit-run", flag.ContinueOnError)
	var opts options
	fs.IntVar(&opts.plays, "plays", cfg.Audit.DefaultPlays, "plays per scenario")
	fs.IntVar(&opts.workers, "workers", cfg.Audit.Workers, "sampling workers (0 = GOMAXPROCS)")
	fs.StringVar(&opts.out, "out", "", "write the report to this file instead of stdout")
	fs.StringVar(&opts.failOn, "fail-on", failOnCritical, "exit 1 at this status: warning, critical or never")
	fs.Uint64Var(&opts.seed, "seed", 0, "seed the random sources; with -workers 1 the run replays exactly (0 = random)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch opts.failOn {
	case failOnWarning, failOnCritical, failOnNever:
	default:
		return options{}, fmt.Errorf("invalid -fail-on %q", opts.failOn)
	}
	if opts.plays < 1 || opts.plays > config.MaxPlays {
		return options{}, fmt.Errorf("-plays must be between 1 and %d", config.MaxPlays)
	}
	if opts.workers < 0 {
		return options{}, errors.New("-workers must not be negative")
	}
	return opts, nil
}

// breaches reports whether status meets the failOn threshold.
func breaches(status audit.Status, failOn string) bool {
	switch failOn {
	case failOnWarning:
		return status.Severity() >= audit.StatusWarning.Severity()
	case failOnCritical:
		return status.Severity() >= audit.StatusCritical.Severity()
	default:
		return false
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer shutdownTracing(context.Background())

	report, err := runAudit(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}

	if err := writeReport(report, opts.out, stdout); err != nil {
		return err
	}

	if breaches(report.OverallStatus, opts.failOn) {
		logger.Warn("failure threshold reached",
			zap.String("status", string(report.OverallStatus)),
			zap.String("fail_on", opts.failOn),
			zap.Int("failures", report.TotalFailures),
		)
		return errThreshold
	}
	return nil
}

func runAudit(ctx context.Context, cfg config.Config, opts options, logger *zap.Logger) (*audit.Report, error) {
	runOpts := []audit.Option{
		audit.WithWorkers(opts.workers),
		audit.WithTolerance(audit.TolerancePolicy{Tolerance: cfg.Audit.Tolerance, Epsilon: cfg.Audit.Epsilon}),
		audit.WithStatusPolicy(audit.StatusPolicy{WarningAbove: cfg.Audit.WarningAbove, CriticalAbove: cfg.Audit.CriticalAbove}),
		audit.WithLogger(logger),
	}
	if opts.seed != 0 {
		runOpts = append(runOpts, audit.WithSourceFactory(engine.NewSeededFactory(opts.seed)))
	}
	runner := audit.NewRunner(catalog.Default(), scenario.DefaultRegistry(), runOpts...)
	return runner.RunAudit(ctx, opts.plays)
}

func writeReport(report *audit.Report, path string, stdout io.Writer) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
