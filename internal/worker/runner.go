// Package worker fans the per-instance aggregation out to a bounded pool
// of goroutines. Instances are independent and produce disjoint output
// rows, so the only coordination is collecting results; the percentage
// computation inside a single instance stays sequential and
// whole-group-in-memory.
package worker

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ISTdatateam/InformeCEAL/internal/aggregate"
	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/scoring"
)

// ─── RUNNER ───────────────────────────────────────────────────────────────────

// RunnerConfig holds tuning parameters for the Runner. All fields have
// sensible defaults if zero-valued; call DefaultRunnerConfig() to get them.
type RunnerConfig struct {
	// Workers is the number of concurrent instance goroutines. Default: 4.
	Workers int

	// JobTimeout is the per-instance context deadline. Default: 2 minutes.
	JobTimeout time.Duration
}

// DefaultRunnerConfig returns safe production defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Workers:    4,
		JobTimeout: 2 * time.Minute,
	}
}

// Runner executes instance jobs over a worker pool. A failure in one
// instance is logged and excluded from the merged output; the rest of
// the batch completes.
type Runner struct {
	cat    *catalog.Catalog
	cfg    RunnerConfig
	logger *slog.Logger
}

// NewRunner constructs a Runner.
func NewRunner(cat *catalog.Catalog, cfg RunnerConfig, logger *slog.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultRunnerConfig().Workers
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultRunnerConfig().JobTimeout
	}
	return &Runner{cat: cat, cfg: cfg, logger: logger}
}

// Output is the merged result of a batch: every instance's tables
// concatenated in CUV order.
type Output struct {
	Aggregates        *aggregate.Result
	Factors           []aggregate.ItemFactor
	Salient           []aggregate.SalientItem
	ExposureMeans     []aggregate.ExposureMean
	ExposureBreakdown []aggregate.ExposureBreakdown
	Protective        []aggregate.ProtectiveRatio
	Instances         int // instances that completed
}

// Run splits the scored rows by instance, processes them across the
// pool, and merges the outputs. It returns early only on context
// cancellation.
func (r *Runner) Run(ctx context.Context, scored []scoring.ScoredRow) (*Output, error) {
	jobs := SplitByInstance(scored)
	r.logger.Info("worker: starting batch", "workers", r.cfg.Workers, "instances", len(jobs))

	jobCh := make(chan Job)
	results := make(chan *InstanceOutput, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go r.work(ctx, i, jobCh, results, &wg)
	}

feed:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case jobCh <- job:
		}
	}
	close(jobCh)
	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputs := make([]*InstanceOutput, 0, len(jobs))
	for out := range results {
		outputs = append(outputs, out)
	}
	return merge(outputs), nil
}

// work is the inner loop for each pool goroutine.
func (r *Runner) work(ctx context.Context, id int, jobs <-chan Job, results chan<- *InstanceOutput, wg *sync.WaitGroup) {
	defer wg.Done()
	log := r.logger.With("worker_id", id)

	for job := range jobs {
		jobCtx, cancel := context.WithTimeout(ctx, r.cfg.JobTimeout)
		out, err := job.Run(jobCtx, r.cat)
		cancel()

		if err != nil {
			log.Error("worker: instance failed, excluded from output",
				"cuv", job.CUV, "rows", len(job.Rows), "error", err)
			continue
		}
		log.Debug("worker: instance completed", "cuv", job.CUV, "rows", len(job.Rows))
		results <- out
	}
}

// merge concatenates instance outputs in CUV order so batch output is
// deterministic regardless of pool scheduling.
func merge(outputs []*InstanceOutput) *Output {
	sort.Slice(outputs, func(i, j int) bool { return outputs[i].CUV < outputs[j].CUV })

	merged := &Output{Aggregates: &aggregate.Result{}, Instances: len(outputs)}
	for _, out := range outputs {
		merged.Aggregates.Instance = append(merged.Aggregates.Instance, out.Aggregates.Instance...)
		merged.Aggregates.Subgroup = append(merged.Aggregates.Subgroup, out.Aggregates.Subgroup...)
		merged.Aggregates.InstanceSummaries = append(merged.Aggregates.InstanceSummaries, out.Aggregates.InstanceSummaries...)
		merged.Aggregates.SubgroupSummaries = append(merged.Aggregates.SubgroupSummaries, out.Aggregates.SubgroupSummaries...)
		merged.Factors = append(merged.Factors, out.Factors...)
		merged.Salient = append(merged.Salient, out.Salient...)
		merged.ExposureMeans = append(merged.ExposureMeans, out.ExposureMeans...)
		merged.ExposureBreakdown = append(merged.ExposureBreakdown, out.ExposureBreakdown...)
		merged.Protective = append(merged.Protective, out.Protective...)
	}
	return merged
}
