// Package scoring turns raw item responses into per-dimension subtotals
// and risk levels. It depends only on internal/catalog and internal/survey
// and carries no I/O, so it can be exercised from tests with literal rows.
package scoring

import (
	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/survey"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// DimensionScore is the computed result for one respondent and one
// dimension.
type DimensionScore struct {
	DimCode   string
	Dimension string
	Subtotal  int
	Answered  int // items of the dimension the respondent actually answered
	Level     catalog.Level
}

// ScoredRow pairs a respondent row with its per-dimension scores, in
// questionnaire dimension order. The GHQ block appears here with its
// subtotal but carries the no-interval sentinel level; it never reaches
// the points computation downstream.
type ScoredRow struct {
	Row    survey.Row
	Scores []DimensionScore
}

// Score returns the DimensionScore for a dimension name, if present.
func (s ScoredRow) Score(dimension string) (DimensionScore, bool) {
	for _, ds := range s.Scores {
		if ds.Dimension == dimension {
			return ds, true
		}
	}
	return DimensionScore{}, false
}

// ─── CORE FUNCTIONS ───────────────────────────────────────────────────────────

// ScoreRow computes every dimension's subtotal and risk level for one
// respondent. Absent responses contribute nothing to the subtotal; a
// dimension with zero answered items still produces a score row so the
// aggregate always sees a full partition of respondents.
func ScoreRow(cat *catalog.Catalog, row survey.Row) ScoredRow {
	dims := cat.Dimensions()
	out := ScoredRow{Row: row, Scores: make([]DimensionScore, 0, len(dims))}
	for _, d := range dims {
		ds := DimensionScore{DimCode: d.Code, Dimension: d.Name}
		for _, code := range d.Items {
			v, ok := row.Responses[code]
			if !ok {
				continue
			}
			ds.Subtotal += v
			ds.Answered++
		}
		ds.Level = cat.Classify(d.Name, ds.Subtotal)
		out.Scores = append(out.Scores, ds)
	}
	return out
}

// ScoreRows scores a batch of respondent rows.
func ScoreRows(cat *catalog.Catalog, rows []survey.Row) []ScoredRow {
	out := make([]ScoredRow, len(rows))
	for i, row := range rows {
		out[i] = ScoreRow(cat, row)
	}
	return out
}
