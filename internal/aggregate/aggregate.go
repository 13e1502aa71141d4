// Package aggregate computes the group-level risk tables: per-dimension
// level percentages, majority points, overall risk tiers, the violence
// and protective-factor breakdowns, and the top salient items. Groups are
// keyed by instance (CUV) and, when the instance has subgroups, by
// (CUV, TE3). All computation is whole-group-in-memory: a group's three
// level rows are only final once every respondent of the group has been
// counted.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/scoring"
)

// ─── CONSTANTS ────────────────────────────────────────────────────────────────

// Points per majority level. Low risk is protective, so a Bajo majority
// subtracts from the total.
const (
	PointsLow    = -2
	PointsMedium = 1
	PointsHigh   = 2
)

// majorityThreshold is the percentage a level must reach to yield points.
const majorityThreshold = 50.0

// Overall risk tiers from the summed points.
const (
	TierLow    = "Riesgo bajo"
	TierMedium = "Riesgo medio"
	TierHigh   = "Riesgo alto"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Points is a nullable points value. A dimension where no level reaches
// the majority threshold carries an invalid Points and contributes
// nothing to the group total.
type Points struct {
	Int   int
	Valid bool
}

// RiskRecord is one output row: a (group, dimension, level) cell of the
// aggregate table. Exactly three records exist per (group, dimension),
// one per level, including levels with zero respondents.
type RiskRecord struct {
	CUV       string
	Subgroup  string // empty at instance level
	Dimension string
	Level     catalog.Level
	LevelN    int // 1/2/3 ordinal of Level

	Count      int     // respondents of the group at this level
	Total      int     // respondents in the group
	Percentage float64 // round(100*Count/Total, 2)

	// Points and Description are broadcast onto all three level rows of
	// the (group, dimension) once one level reaches majority.
	Points      Points
	Description string
}

// Summary is the overall classification of one group.
type Summary struct {
	CUV         string
	Subgroup    string
	TotalPoints int
	Tier        string
	Respondents int
}

// Result bundles every aggregate table of one pipeline run.
type Result struct {
	Instance          []RiskRecord // subgroup-free, one block per CUV
	Subgroup          []RiskRecord // per (CUV, TE3); empty when no instance has subgroups
	InstanceSummaries []Summary
	SubgroupSummaries []Summary
}

// ─── GROUPING ─────────────────────────────────────────────────────────────────

// GroupKey identifies one aggregation group. An empty Subgroup means
// the instance-level group.
type GroupKey struct {
	CUV      string
	Subgroup string
}

func groupRows(scored []scoring.ScoredRow, bySubgroup bool) (map[GroupKey][]scoring.ScoredRow, []GroupKey) {
	groups := make(map[GroupKey][]scoring.ScoredRow)
	for _, sr := range scored {
		if sr.Row.CUV == "" {
			continue
		}
		key := GroupKey{CUV: sr.Row.CUV}
		if bySubgroup {
			if sr.Row.TE3 == "" {
				continue
			}
			key.Subgroup = sr.Row.TE3
		}
		groups[key] = append(groups[key], sr)
	}

	keys := make([]GroupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CUV != keys[j].CUV {
			return keys[i].CUV < keys[j].CUV
		}
		return keys[i].Subgroup < keys[j].Subgroup
	})
	return groups, keys
}

// ─── STAGES ───────────────────────────────────────────────────────────────────

// LevelPercentages computes the three level rows of every scored
// dimension for one group. The percentage denominator is the full group
// size, so the three counts partition the group whenever every respondent
// classified into a real level.
func LevelPercentages(cat *catalog.Catalog, key GroupKey, group []scoring.ScoredRow) []RiskRecord {
	total := len(group)
	var out []RiskRecord
	for _, dim := range cat.ScoredDimensions() {
		counts := make(map[catalog.Level]int, 3)
		for _, sr := range group {
			if ds, ok := sr.Score(dim.Name); ok {
				counts[ds.Level]++
			}
		}
		for _, lvl := range catalog.Levels() {
			n := counts[lvl]
			out = append(out, RiskRecord{
				CUV:        key.CUV,
				Subgroup:   key.Subgroup,
				Dimension:  dim.Name,
				Level:      lvl,
				LevelN:     lvl.Ordinal(),
				Count:      n,
				Total:      total,
				Percentage: Round2(100 * float64(n) / float64(total)),
			})
		}
	}
	return out
}

// AssignPoints sets the points value on the majority-level row of each
// (group, dimension). At most one level can reach 50% of a partitioned
// group, so the first match wins and the branches are exclusive.
func AssignPoints(records []RiskRecord) {
	forEachDimension(records, func(rows []*RiskRecord) {
		byLevel := make(map[catalog.Level]*RiskRecord, 3)
		for _, r := range rows {
			byLevel[r.Level] = r
		}
		switch {
		case byLevel[catalog.LevelLow] != nil && byLevel[catalog.LevelLow].Percentage >= majorityThreshold:
			byLevel[catalog.LevelLow].Points = Points{Int: PointsLow, Valid: true}
		case byLevel[catalog.LevelMedium] != nil && byLevel[catalog.LevelMedium].Percentage >= majorityThreshold:
			byLevel[catalog.LevelMedium].Points = Points{Int: PointsMedium, Valid: true}
		case byLevel[catalog.LevelHigh] != nil && byLevel[catalog.LevelHigh].Percentage >= majorityThreshold:
			byLevel[catalog.LevelHigh].Points = Points{Int: PointsHigh, Valid: true}
		}
	})
}

// Describe formats the summary string on every points-carrying row:
// "{dimensión} ({porcentaje}% Riesgo {nivel}, {respuestas} personas)".
// Runs after AssignPoints and before BroadcastPoints, so the string is
// built from the majority level's own percentage and count.
func Describe(records []RiskRecord) {
	for i := range records {
		r := &records[i]
		if !r.Points.Valid {
			continue
		}
		r.Description = fmt.Sprintf("%s (%s%% Riesgo %s, %d personas)",
			r.Dimension, FormatPercent(r.Percentage), r.Level, r.Count)
	}
}

// BroadcastPoints copies the points and description of the
// majority-level row onto its two sibling level rows. Downstream lookups
// index by level and expect points present regardless of which level they
// query, so the denormalization is part of the output contract.
func BroadcastPoints(records []RiskRecord) {
	forEachDimension(records, func(rows []*RiskRecord) {
		var src *RiskRecord
		for _, r := range rows {
			if r.Points.Valid {
				src = r
				break
			}
		}
		if src == nil {
			return
		}
		for _, r := range rows {
			r.Points = src.Points
			r.Description = src.Description
		}
	})
}

// forEachDimension invokes fn once per (group, dimension) with pointers
// to its level rows. Records are contiguous per dimension by
// construction (LevelPercentages emits three rows at a time).
func forEachDimension(records []RiskRecord, fn func(rows []*RiskRecord)) {
	start := 0
	for i := 1; i <= len(records); i++ {
		if i == len(records) || records[i].Dimension != records[start].Dimension ||
			records[i].CUV != records[start].CUV || records[i].Subgroup != records[start].Subgroup {
			rows := make([]*RiskRecord, 0, 3)
			for j := start; j < i; j++ {
				rows = append(rows, &records[j])
			}
			fn(rows)
			start = i
		}
	}
}

// Summarize sums the per-dimension points of one group's records and
// classifies the total. Each dimension's points is counted once even
// though the broadcast put it on three rows.
func Summarize(records []RiskRecord, key GroupKey, respondents int) Summary {
	total := 0
	seen := make(map[string]bool)
	for _, r := range records {
		if !r.Points.Valid || seen[r.Dimension] {
			continue
		}
		seen[r.Dimension] = true
		total += r.Points.Int
	}
	return Summary{
		CUV:         key.CUV,
		Subgroup:    key.Subgroup,
		TotalPoints: total,
		Tier:        TierFor(total),
		Respondents: respondents,
	}
}

// TierFor maps a total points value to the overall risk tier. The
// thresholds are fixed constants: at most 1 point is low risk, 2 through
// 12 is medium, above 12 is high.
func TierFor(totalPoints int) string {
	switch {
	case totalPoints <= 1:
		return TierLow
	case totalPoints <= 12:
		return TierMedium
	default:
		return TierHigh
	}
}

// ─── DRIVER ───────────────────────────────────────────────────────────────────

// Compute runs the full aggregation over a batch of scored rows: the
// instance-level tables always, and the subgroup-level tables for every
// row that carries a TE3 label. Rows without a CUV are excluded from
// every group.
func Compute(cat *catalog.Catalog, scored []scoring.ScoredRow) *Result {
	res := &Result{}

	groups, keys := groupRows(scored, false)
	for _, key := range keys {
		records := computeGroup(cat, key, groups[key])
		res.Instance = append(res.Instance, records...)
		res.InstanceSummaries = append(res.InstanceSummaries, Summarize(records, key, len(groups[key])))
	}

	subGroups, subKeys := groupRows(scored, true)
	for _, key := range subKeys {
		records := computeGroup(cat, key, subGroups[key])
		res.Subgroup = append(res.Subgroup, records...)
		res.SubgroupSummaries = append(res.SubgroupSummaries, Summarize(records, key, len(subGroups[key])))
	}

	return res
}

// computeGroup runs the composable stages for one group in order.
func computeGroup(cat *catalog.Catalog, key GroupKey, group []scoring.ScoredRow) []RiskRecord {
	records := LevelPercentages(cat, key, group)
	AssignPoints(records)
	Describe(records)
	BroadcastPoints(records)
	return records
}

// ─── NUMERIC HELPERS ──────────────────────────────────────────────────────────

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
