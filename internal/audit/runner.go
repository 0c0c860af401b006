// Package audit runs Monte Carlo RTP audits over the game catalog.
package audit

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MJE43/rtp-audit/internal/catalog"
	"github.com/MJE43/rtp-audit/internal/engine"
	"github.com/MJE43/rtp-audit/internal/sampler"
	"github.com/MJE43/rtp-audit/internal/scenario"
)

// ErrInvalidPlays is returned for a non-positive play count.
var ErrInvalidPlays = errors.New("plays per scenario must be positive")

const tracerName = "github.com/MJE43/rtp-audit/internal/audit"

// Runner executes audits. It holds no per-run state and is safe for
// concurrent use.
type Runner struct {
	catalog   *catalog.Catalog
	registry  *scenario.Registry
	sources   engine.SourceFactory
	tolerance TolerancePolicy
	status    StatusPolicy
	workers   int
	logger    *zap.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithSourceFactory sets how each worker obtains its random source.
func WithSourceFactory(f engine.SourceFactory) Option {
	return func(r *Runner) { r.sources = f }
}

// WithTolerance overrides the tolerance band.
func WithTolerance(p TolerancePolicy) Option {
	return func(r *Runner) { r.tolerance = p }
}

// WithStatusPolicy overrides the status thresholds.
func WithStatusPolicy(p StatusPolicy) Option {
	return func(r *Runner) { r.status = p }
}

// WithWorkers bounds sampling parallelism. 0 means GOMAXPROCS; 1 samples
// sequentially.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithClock sets the time source used for timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a Runner over an explicit catalog and registry.
func NewRunner(cat *catalog.Catalog, reg *scenario.Registry, opts ...Option) *Runner {
	r := &Runner{
		catalog:   cat,
		registry:  reg,
		sources:   engine.NewSource,
		tolerance: DefaultTolerancePolicy(),
		status:    DefaultStatusPolicy(),
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog audited by r.
func (r *Runner) Catalog() *catalog.Catalog {
	return r.catalog
}

// Registry returns the scenario registry used by r.
func (r *Runner) Registry() *scenario.Registry {
	return r.registry
}

type job struct {
	scenario scenario.Scenario
	target   float64
}

// RunAudit samples every scenario of every catalog game plays times and
// returns the aggregated report. A formula or sampling error aborts the
// whole run; no partial report is returned.
func (r *Runner) RunAudit(ctx context.Context, plays int) (*Report, error) {
	if plays <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlays, plays)
	}

	start := r.now()
	runID := uuid.New().String()

	ctx, span := r.tracer.Start(ctx, "audit.run", trace.WithAttributes(
		attribute.String("audit.run_id", runID),
		attribute.Int("audit.plays", plays),
		attribute.Int("audit.games", r.catalog.Len()),
	))
	defer span.End()

	logger := r.logger.With(zap.String("run_id", runID), zap.Int("plays", plays))

	keys := r.catalog.Keys()
	if missing := r.registry.Missing(keys); len(missing) > 0 {
		logger.Warn("games without scenario generator", zap.Strings("games", missing))
	}

	jobs, err := r.generate(ctx, keys)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scenario generation failed")
		return nil, err
	}

	results, err := r.sample(ctx, jobs, plays)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sampling failed")
		return nil, err
	}

	verdicts := make([]Verdict, len(jobs))
	for i, j := range jobs {
		verdicts[i] = r.tolerance.Evaluate(j.scenario, results[i], j.target)
	}

	report := Aggregate(keys, verdicts, plays, r.status)
	end := r.now()
	report.RunID = runID
	report.Timestamp = end.UTC()
	report.DurationMs = end.Sub(start).Milliseconds()

	span.SetAttributes(
		attribute.Int("audit.scenarios", len(jobs)),
		attribute.Int("audit.failures", report.TotalFailures),
		attribute.String("audit.status", string(report.OverallStatus)),
	)
	logger.Info("audit completed",
		zap.Int("scenarios", len(jobs)),
		zap.Int64("total_tests", report.TotalTests),
		zap.Int("failures", report.TotalFailures),
		zap.String("status", string(report.OverallStatus)),
		zap.Int64("duration_ms", report.DurationMs),
	)

	return report, nil
}

// generate enumerates scenarios in catalog order, stopping at the first error.
func (r *Runner) generate(ctx context.Context, keys []string) ([]job, error) {
	_, span := r.tracer.Start(ctx, "audit.generate")
	defer span.End()

	var jobs []job
	for _, key := range keys {
		scenarios, err := r.registry.Generate(key)
		if err != nil {
			return nil, fmt.Errorf("generate scenarios for %s: %w", key, err)
		}
		target := r.catalog.Lookup(key)
		for _, s := range scenarios {
			jobs = append(jobs, job{scenario: s, target: target})
		}
	}

	span.SetAttributes(attribute.Int("audit.scenarios", len(jobs)))
	return jobs, nil
}

// sample fans jobs out to a bounded pool. Each worker owns one random source
// and writes only its own result slots.
func (r *Runner) sample(ctx context.Context, jobs []job, plays int) ([]sampler.Result, error) {
	results := make([]sampler.Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	workers := r.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(jobs))

	queue := make(chan int, len(jobs))
	for i := range jobs {
		queue <- i
	}
	close(queue)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			src := r.sources()
			for i := range queue {
				if err := gctx.Err(); err != nil {
					return err
				}
				s := jobs[i].scenario
				res, err := sampler.Run(s.Table, plays, s.Policy, src)
				if err != nil {
					return fmt.Errorf("sample %s/%s: %w", s.GameKey, s.Label, err)
				}
				results[i] = res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
