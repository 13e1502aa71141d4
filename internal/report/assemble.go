package report

import (
	"log/slog"
	"sort"

	"github.com/ISTdatateam/InformeCEAL/internal/aggregate"
	"github.com/ISTdatateam/InformeCEAL/internal/ident"
	"github.com/ISTdatateam/InformeCEAL/internal/scoring"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Inputs gathers every table the assembler joins. The aggregate tables
// come straight from internal/aggregate; folios and recommendations are
// the external reference collaborators.
type Inputs struct {
	Scored            []scoring.ScoredRow
	Aggregates        *aggregate.Result
	Factors           []aggregate.ItemFactor
	Salient           []aggregate.SalientItem
	ExposureMeans     []aggregate.ExposureMean
	ExposureBreakdown []aggregate.ExposureBreakdown
	Protective        []aggregate.ProtectiveRatio
	Folios            map[string]Folio
	Recommendations   *Recommendations
}

// InstanceReport is the fully joined, render-ready data of one instance.
type InstanceReport struct {
	CUV   string
	Folio Folio
	CIIU  int

	Summary           aggregate.Summary
	Records           []aggregate.RiskRecord
	SubgroupRecords   []aggregate.RiskRecord
	SubgroupSummaries []aggregate.Summary

	Salient           []aggregate.SalientItem
	ExposureMeans     []aggregate.ExposureMean
	ExposureBreakdown []aggregate.ExposureBreakdown
	Protective        []aggregate.ProtectiveRatio

	// Recommendations maps each risk-carrying dimension (instance-level
	// points 1 or 2) to its intervention texts for the instance's
	// industry code.
	Recommendations map[string][]string

	// GES maps risk-carrying dimensions to the "; "-joined subgroup
	// labels at risk. Nil when the instance has fewer than 2 subgroups.
	GES map[string]string

	SubgroupCount int
}

// ─── FOLIO INDEX ──────────────────────────────────────────────────────────────

// FolioIndex keys folio rows by canonical instance ID. Source folio IDs
// arrive as a mix of numeric and string renderings; indexing through the
// canonical form is what keeps the join from silently producing nothing.
func FolioIndex(rows []Folio) map[string]Folio {
	out := make(map[string]Folio, len(rows))
	for _, f := range rows {
		out[ident.Canonical(f.CUV)] = f
	}
	return out
}

// ─── ASSEMBLER ────────────────────────────────────────────────────────────────

// Assemble joins the aggregate tables per instance. Instances with no
// folio row are skipped entirely and logged: a report with missing
// header metadata is worse than no report. Output is sorted by CUV.
func Assemble(in Inputs, logger *slog.Logger) []InstanceReport {
	ges := GESListing(in.Aggregates.Subgroup)
	subgroupCounts := SubgroupCounts(in.Aggregates.Subgroup)

	var out []InstanceReport
	for _, summary := range in.Aggregates.InstanceSummaries {
		cuv := ident.Canonical(summary.CUV)

		folio, ok := in.Folios[cuv]
		if !ok {
			logger.Warn("report: instance has no folio row, skipped", "cuv", cuv)
			continue
		}

		r := InstanceReport{
			CUV:           cuv,
			Folio:         folio,
			Summary:       summary,
			SubgroupCount: subgroupCounts[cuv],
		}
		if code, ok := CIIUCode(folio.CIIUText); ok {
			r.CIIU = code
		} else {
			logger.Warn("report: no industry code derivable", "cuv", cuv, "ciiu", folio.CIIUText)
		}

		r.Records = filterRecords(in.Aggregates.Instance, cuv)
		r.SubgroupRecords = filterRecords(in.Aggregates.Subgroup, cuv)
		for _, s := range in.Aggregates.SubgroupSummaries {
			if ident.Canonical(s.CUV) == cuv {
				r.SubgroupSummaries = append(r.SubgroupSummaries, s)
			}
		}
		for _, s := range in.Salient {
			if ident.Canonical(s.CUV) == cuv {
				r.Salient = append(r.Salient, s)
			}
		}
		for _, m := range in.ExposureMeans {
			if ident.Canonical(m.CUV) == cuv {
				r.ExposureMeans = append(r.ExposureMeans, m)
			}
		}
		for _, b := range in.ExposureBreakdown {
			if ident.Canonical(b.CUV) == cuv {
				r.ExposureBreakdown = append(r.ExposureBreakdown, b)
			}
		}
		for _, p := range in.Protective {
			if ident.Canonical(p.CUV) == cuv {
				r.Protective = append(r.Protective, p)
			}
		}

		r.Recommendations = recommendFor(r.Records, r.CIIU, in.Recommendations)
		if r.SubgroupCount >= 2 {
			r.GES = ges[cuv]
		}

		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CUV < out[j].CUV })
	return out
}

// recommendFor looks up intervention texts for every dimension whose
// instance-level points mark it at risk (1 or 2).
func recommendFor(records []aggregate.RiskRecord, ciiu int, recs *Recommendations) map[string][]string {
	if recs == nil {
		return nil
	}
	out := make(map[string][]string)
	for _, r := range records {
		if !r.Points.Valid || (r.Points.Int != 1 && r.Points.Int != 2) {
			continue
		}
		if _, done := out[r.Dimension]; done {
			continue
		}
		out[r.Dimension] = recs.For(ciiu, r.Dimension)
	}
	return out
}

func filterRecords(records []aggregate.RiskRecord, cuv string) []aggregate.RiskRecord {
	var out []aggregate.RiskRecord
	for _, r := range records {
		if ident.Canonical(r.CUV) == cuv {
			out = append(out, r)
		}
	}
	return out
}
