package worker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ISTdatateam/InformeCEAL/internal/aggregate"
	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/scoring"
	"github.com/ISTdatateam/InformeCEAL/internal/survey"
	"github.com/ISTdatateam/InformeCEAL/internal/worker"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func batchRows(t *testing.T) []scoring.ScoredRow {
	t.Helper()
	cat := catalog.MustNew()
	var rows []survey.Row
	for _, cuv := range []string{"1003", "1001", "1002"} {
		for i := 0; i < 5; i++ {
			rows = append(rows, survey.Row{
				CUV:       cuv,
				TE3:       "Ventas",
				Responses: map[string]int{"QD1": 6, "CQ1": 1, "SS1": 1},
			})
		}
	}
	rows = append(rows, survey.Row{Responses: map[string]int{"QD1": 6}}) // no CUV
	return scoring.ScoreRows(cat, rows)
}

func TestSplitByInstance(t *testing.T) {
	scored := batchRows(t)
	jobs := worker.SplitByInstance(scored)

	if len(jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(jobs))
	}
	for _, j := range jobs {
		if j.CUV == "" {
			t.Error("job without CUV")
		}
		if len(j.Rows) != 5 {
			t.Errorf("job %s has %d rows, want 5", j.CUV, len(j.Rows))
		}
	}
}

// The pooled batch must produce exactly what a sequential aggregation of
// the full set produces: instances are disjoint groups either way.
func TestRunner_MatchesSequentialAggregation(t *testing.T) {
	cat := catalog.MustNew()
	scored := batchRows(t)

	out, err := worker.NewRunner(cat, worker.RunnerConfig{Workers: 3}, discard()).
		Run(context.Background(), scored)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Instances != 3 {
		t.Errorf("instances = %d, want 3", out.Instances)
	}

	want := aggregate.Compute(cat, scored)
	if diff := cmp.Diff(want, out.Aggregates); diff != "" {
		t.Errorf("pooled aggregation diverges from sequential (-want +got):\n%s", diff)
	}
}

func TestRunner_SingleWorkerStillCompletes(t *testing.T) {
	cat := catalog.MustNew()
	scored := batchRows(t)

	out, err := worker.NewRunner(cat, worker.RunnerConfig{Workers: 1}, discard()).
		Run(context.Background(), scored)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Instances != 3 {
		t.Errorf("instances = %d, want 3", out.Instances)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	cat := catalog.MustNew()
	scored := batchRows(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := worker.NewRunner(cat, worker.RunnerConfig{}, discard()).Run(ctx, scored); err == nil {
		t.Error("Run with cancelled context returned nil error")
	}
}
