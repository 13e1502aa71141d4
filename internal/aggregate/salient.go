package aggregate

import (
	"sort"

	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/survey"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// ItemFactor is the weighted-frequency score of one question for one
// instance: the sum over observed response values of value × frequency.
// High factors mark the questions pulling a dimension's subtotals up.
type ItemFactor struct {
	CUV       string
	Dimension string
	Question  string
	Factor    int
}

// SalientItem is one of the top-2 questions of a (instance, dimension).
type SalientItem struct {
	CUV       string
	Dimension string
	Rank      int // 1 or 2
	Question  string
	Factor    int
}

// ─── COMPUTATION ──────────────────────────────────────────────────────────────

// ItemFactors computes the per-question factor table for every instance.
// Items sharing a question text accumulate into one row. Output order is
// CUV, then questionnaire dimension order, then descending factor.
func ItemFactors(cat *catalog.Catalog, rows []survey.Row) []ItemFactor {
	byCUV := groupSurveyRows(rows)
	cuvs := sortedKeys(byCUV)

	var out []ItemFactor
	for _, cuv := range cuvs {
		group := byCUV[cuv]
		for _, dim := range cat.ScoredDimensions() {
			byQuestion := make(map[string]int)
			var order []string
			for _, code := range dim.Items {
				q := cat.Question(code)
				if _, seen := byQuestion[q]; !seen {
					order = append(order, q)
				}
				// Summing value*frequency over observed values equals
				// summing the raw responses directly.
				for _, row := range group {
					if v, ok := row.Responses[code]; ok {
						byQuestion[q] += v
					}
				}
			}
			dimRows := make([]ItemFactor, 0, len(order))
			for _, q := range order {
				dimRows = append(dimRows, ItemFactor{
					CUV:       cuv,
					Dimension: dim.Name,
					Question:  q,
					Factor:    byQuestion[q],
				})
			}
			sortByFactor(dimRows)
			out = append(out, dimRows...)
		}
	}
	return out
}

// TopSalientItems keeps the two highest-factor questions per
// (instance, dimension) from an already computed factor table.
func TopSalientItems(factors []ItemFactor) []SalientItem {
	var out []SalientItem
	forEachFactorGroup(factors, func(group []ItemFactor) {
		ranked := make([]ItemFactor, len(group))
		copy(ranked, group)
		sortByFactor(ranked)
		for i := 0; i < len(ranked) && i < 2; i++ {
			out = append(out, SalientItem{
				CUV:       ranked[i].CUV,
				Dimension: ranked[i].Dimension,
				Rank:      i + 1,
				Question:  ranked[i].Question,
				Factor:    ranked[i].Factor,
			})
		}
	})
	return out
}

// sortByFactor orders rows by descending factor, breaking ties
// alphabetically by question text so ranking does not depend on source
// order.
func sortByFactor(rows []ItemFactor) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Factor != rows[j].Factor {
			return rows[i].Factor > rows[j].Factor
		}
		return rows[i].Question < rows[j].Question
	})
}

// forEachFactorGroup walks contiguous (CUV, dimension) runs of the
// factor table.
func forEachFactorGroup(factors []ItemFactor, fn func(group []ItemFactor)) {
	start := 0
	for i := 1; i <= len(factors); i++ {
		if i == len(factors) || factors[i].CUV != factors[start].CUV ||
			factors[i].Dimension != factors[start].Dimension {
			fn(factors[start:i])
			start = i
		}
	}
}
