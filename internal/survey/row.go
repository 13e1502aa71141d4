// Package survey normalizes raw tabular survey sources into a single
// unified respondent table. It owns the schema-mapping rules (duplicate
// column repair, positional fixes), the filename metadata extraction, and
// the derived demographic fields. It knows nothing about scoring.
package survey

// Row is one survey response after normalization. A Row is built once by
// the loader and treated as immutable afterwards; scoring attaches its
// derived values to separate structures, never back onto the Row.
type Row struct {
	// CUV is the survey-instance identifier, already canonicalized to a
	// string. Empty when the source name carried no extractable instance
	// ID; such rows are excluded from instance-keyed aggregates.
	CUV string

	// RUTEmployer is the employer tax ID parsed from the source name
	// (8 digits plus check character). Empty for database sources.
	RUTEmployer string

	// CdT is the workplace label after reconciliation: when the label in
	// the row and the label from the source name differ, both are kept as
	// "{row} - {source}" for traceability.
	CdT string

	// TE3 is the optional subgroup label. Empty when the instance has no
	// subgroup partition.
	TE3 string

	Gender     string
	Age        int
	AgeBracket string

	// Responses holds the raw per-item integer answers keyed by item
	// code. Items the respondent did not answer are absent, not zero.
	Responses map[string]int
}

// ─── DERIVED FIELDS ───────────────────────────────────────────────────────────

// Gender labels for the raw DD1 codes.
const (
	GenderMan   = "Hombre"
	GenderWoman = "Mujer"
	GenderOther = "NcOtro"
)

// MapGender translates the raw DD1 code. Codes 3 and 4 both mean
// "no contesta / otro". Unknown codes map to the empty string so they can
// be spotted downstream rather than silently folded into a real category.
func MapGender(code int) string {
	switch code {
	case 1:
		return GenderMan
	case 2:
		return GenderWoman
	case 3, 4:
		return GenderOther
	default:
		return ""
	}
}

// Age bracket labels. Bins are left-closed, right-open:
// [18,25) [25,36) [36,49) [49,inf).
var ageBracketLabels = [4]string{"18 a 25", "26 a 36", "37 a 49", "50 o más"}

// AgeBracket buckets an age into its report label. Ages below 18 fall
// outside every bin and return the empty string; the loader logs them.
// There is no upper-bound clamp.
func AgeBracket(age int) string {
	switch {
	case age < 18:
		return ""
	case age < 25:
		return ageBracketLabels[0]
	case age < 36:
		return ageBracketLabels[1]
	case age < 49:
		return ageBracketLabels[2]
	default:
		return ageBracketLabels[3]
	}
}
