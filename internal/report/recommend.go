package report

// Recommendation is one intervention suggestion for a (industry code,
// dimension) pair, flattened from the wide reference sheet upstream.
type Recommendation struct {
	CIIU      int
	Dimension string
	Rubro     string
	Text      string
}

type recKey struct {
	ciiu      int
	dimension string
}

// Recommendations is the lookup over the flattened reference rows.
type Recommendations struct {
	byKey map[recKey][]Recommendation
}

// NewRecommendations indexes the reference rows by (ciiu, dimension).
func NewRecommendations(rows []Recommendation) *Recommendations {
	r := &Recommendations{byKey: make(map[recKey][]Recommendation)}
	for _, row := range rows {
		k := recKey{ciiu: row.CIIU, dimension: row.Dimension}
		r.byKey[k] = append(r.byKey[k], row)
	}
	return r
}

// For returns the recommendation texts for an industry code and
// dimension. A pair with no reference rows returns an empty slice, not
// an error: missing reference data means "no recommendation".
func (r *Recommendations) For(ciiu int, dimension string) []string {
	rows := r.byKey[recKey{ciiu: ciiu, dimension: dimension}]
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Text)
	}
	return out
}
