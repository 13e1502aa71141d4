package report

import "time"

// Folio is the header metadata of one instance from the external
// results table. It feeds report headers only, never scoring.
type Folio struct {
	CUV       string
	Folio     string
	Company   string
	RUT       string
	Workplace string
	CIIUText  string
	Start     time.Time
	End       time.Time
	Workforce int
}

// Period renders the questionnaire window the way the report headers
// print it. A missing end date leaves an open interval; two missing
// dates render empty.
func (f Folio) Period() string {
	start, end := reportDate(f.Start), reportDate(f.End)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	default:
		return start + " a " + end
	}
}

// reportDate renders a questionnaire date the way the report headers
// print it. Zero times render empty.
func reportDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-2006")
}
