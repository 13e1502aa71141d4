package worker

import (
	"context"

	"github.com/ISTdatateam/InformeCEAL/internal/aggregate"
	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/scoring"
	"github.com/ISTdatateam/InformeCEAL/internal/survey"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Job is the aggregation work of one instance: the scored rows of a
// single CUV, computed whole-group-in-memory.
type Job struct {
	CUV  string
	Rows []scoring.ScoredRow
}

// InstanceOutput is everything one job produces. Outputs of different
// jobs are disjoint (keyed by CUV), so the pool can merge them without
// coordination beyond collection.
type InstanceOutput struct {
	CUV               string
	Aggregates        *aggregate.Result
	Factors           []aggregate.ItemFactor
	Salient           []aggregate.SalientItem
	ExposureMeans     []aggregate.ExposureMean
	ExposureBreakdown []aggregate.ExposureBreakdown
	Protective        []aggregate.ProtectiveRatio
}

// ─── EXECUTION ────────────────────────────────────────────────────────────────

// Run computes every aggregate table for the job's instance. The context
// bounds the computation; overdue jobs abort between stages, never
// mid-table.
func (j Job) Run(ctx context.Context, cat *catalog.Catalog) (*InstanceOutput, error) {
	out := &InstanceOutput{CUV: j.CUV}

	rows := make([]survey.Row, len(j.Rows))
	for i, sr := range j.Rows {
		rows[i] = sr.Row
	}

	out.Aggregates = aggregate.Compute(cat, j.Rows)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out.Factors = aggregate.ItemFactors(cat, rows)
	out.Salient = aggregate.TopSalientItems(out.Factors)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out.ExposureMeans, out.ExposureBreakdown = aggregate.ViolenceExposure(cat, rows)
	out.Protective = aggregate.ProtectiveFactors(cat, rows)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// SplitByInstance partitions scored rows into one Job per CUV, dropping
// rows without an instance ID. Job order follows first appearance in the
// input.
func SplitByInstance(scored []scoring.ScoredRow) []Job {
	index := make(map[string]int)
	var jobs []Job
	for _, sr := range scored {
		if sr.Row.CUV == "" {
			continue
		}
		i, ok := index[sr.Row.CUV]
		if !ok {
			i = len(jobs)
			index[sr.Row.CUV] = i
			jobs = append(jobs, Job{CUV: sr.Row.CUV})
		}
		jobs[i].Rows = append(jobs[i].Rows, sr)
	}
	return jobs
}
