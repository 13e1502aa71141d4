package aggregate

import (
	"sort"

	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/survey"
)

// ─── VIOLENCE EXPOSURE ────────────────────────────────────────────────────────

// Exposure breakdown labels for the binarized flags.
const (
	LabelNotExposed = "No expuesto"
	LabelExposed    = "Expuesto"
)

// Protective-factor breakdown labels.
const (
	LabelNoProtection = "No Proteccion"
	LabelProtection   = "Proteccion"
)

// ExposureMean is the per-instance mean of one binarized violence flag,
// expressed as a percentage of respondents exposed.
type ExposureMean struct {
	CUV   string
	Code  string // item code, or the composite code
	Theme string
	Mean  float64 // round(100*exposed/total, 2)
	Total int
}

// ExposureBreakdown is one cell of the 0/1 percentage table per flag,
// the binary analogue of RiskRecord.
type ExposureBreakdown struct {
	CUV        string
	Code       string
	Theme      string
	Label      string // LabelNotExposed or LabelExposed
	Count      int
	Total      int
	Percentage float64
}

// violenceFlag binarizes one response: any non-zero answer counts as
// exposed. An absent answer counts as not exposed.
func violenceFlag(row survey.Row, code string) int {
	if v, ok := row.Responses[code]; ok && v != 0 {
		return 1
	}
	return 0
}

// exposureTotal sums the binarized flags of the seven violence items for
// one respondent.
func exposureTotal(cat *catalog.Catalog, row survey.Row) int {
	total := 0
	for _, th := range cat.ViolenceThemes() {
		if th.Code == catalog.ExposureCompositeCode {
			continue
		}
		total += violenceFlag(row, th.Code)
	}
	return total
}

// ViolenceExposure computes, per instance, the mean and the 0/1
// percentage breakdown of each violence flag plus the any-exposure
// composite. Rows without a CUV are excluded.
func ViolenceExposure(cat *catalog.Catalog, rows []survey.Row) ([]ExposureMean, []ExposureBreakdown) {
	byCUV := groupSurveyRows(rows)
	cuvs := sortedKeys(byCUV)
	themes := cat.ViolenceThemes()

	var means []ExposureMean
	var breakdown []ExposureBreakdown
	for _, cuv := range cuvs {
		group := byCUV[cuv]
		total := len(group)
		for _, th := range themes {
			exposed := 0
			for _, row := range group {
				if th.Code == catalog.ExposureCompositeCode {
					if exposureTotal(cat, row) != 0 {
						exposed++
					}
				} else {
					exposed += violenceFlag(row, th.Code)
				}
			}
			means = append(means, ExposureMean{
				CUV:   cuv,
				Code:  th.Code,
				Theme: th.Label,
				Mean:  Round2(100 * float64(exposed) / float64(total)),
				Total: total,
			})
			for _, cell := range []struct {
				label string
				count int
			}{
				{LabelNotExposed, total - exposed},
				{LabelExposed, exposed},
			} {
				breakdown = append(breakdown, ExposureBreakdown{
					CUV:        cuv,
					Code:       th.Code,
					Theme:      th.Label,
					Label:      cell.label,
					Count:      cell.count,
					Total:      total,
					Percentage: Round2(100 * float64(cell.count) / float64(total)),
				})
			}
		}
	}
	return means, breakdown
}

// ─── PROTECTIVE FACTORS ───────────────────────────────────────────────────────

// ProtectiveRatio is one cell of the protective-factor table: the share
// of validly answering respondents whose numerator flag took the given
// value.
type ProtectiveRatio struct {
	CUV         string
	Code        string
	Theme       string
	Label       string // LabelNoProtection or LabelProtection
	Count       int    // respondents whose numerator flag equals this cell's value
	Denominator int    // respondents who answered validly (0..4)
	Ratio       float64
}

// protectiveFlags maps one response to its numerator and denominator
// flags. Answers 0 and 1 indicate protection; 5 means not applicable and
// is excluded from the numerator entirely; answers outside 0..4 do not
// count as valid.
func protectiveFlags(row survey.Row, code string) (num int, numValid bool, den int) {
	v, ok := row.Responses[code]
	if !ok {
		return 0, false, 0
	}
	if v >= 0 && v <= 4 {
		den = 1
	}
	switch {
	case v == 0 || v == 1:
		return 1, true, den
	case v == 5:
		return 0, false, den
	default:
		return 0, true, den
	}
}

// ProtectiveFactors computes, per instance and per protective item, the
// Proteccion / No Proteccion ratio over validly answering respondents.
// A group where nobody answered validly yields ratio 0 for both cells,
// never a division error.
func ProtectiveFactors(cat *catalog.Catalog, rows []survey.Row) []ProtectiveRatio {
	byCUV := groupSurveyRows(rows)
	cuvs := sortedKeys(byCUV)

	var out []ProtectiveRatio
	for _, cuv := range cuvs {
		group := byCUV[cuv]
		for _, th := range cat.ProtectiveThemes() {
			counts := map[int]int{0: 0, 1: 0}
			den := 0
			for _, row := range group {
				num, numValid, d := protectiveFlags(row, th.Code)
				den += d
				if numValid {
					counts[num]++
				}
			}
			for _, cell := range []struct {
				value int
				label string
			}{
				{0, LabelNoProtection},
				{1, LabelProtection},
			} {
				ratio := 0.0
				if den > 0 {
					ratio = Round2(100 * float64(counts[cell.value]) / float64(den))
				}
				out = append(out, ProtectiveRatio{
					CUV:         cuv,
					Code:        th.Code,
					Theme:       th.Label,
					Label:       cell.label,
					Count:       counts[cell.value],
					Denominator: den,
					Ratio:       ratio,
				})
			}
		}
	}
	return out
}

// ─── SHARED HELPERS ───────────────────────────────────────────────────────────

func groupSurveyRows(rows []survey.Row) map[string][]survey.Row {
	byCUV := make(map[string][]survey.Row)
	for _, row := range rows {
		if row.CUV == "" {
			continue
		}
		byCUV[row.CUV] = append(byCUV[row.CUV], row)
	}
	return byCUV
}

func sortedKeys(m map[string][]survey.Row) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
