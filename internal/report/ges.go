package report

import (
	"sort"
	"strings"

	"github.com/ISTdatateam/InformeCEAL/internal/aggregate"
)

// gesSanitizer strips the characters that break the downstream report
// templates out of subgroup labels.
var gesSanitizer = strings.NewReplacer("|", "_", ":", "_", "?", "_")

// SanitizeGESLabel returns a report-safe form of a subgroup label.
func SanitizeGESLabel(label string) string {
	return gesSanitizer.Replace(label)
}

// GESListing builds, per (CUV, dimension), the "; "-joined list of
// distinct subgroup labels whose aggregate rows carry points 1 or 2.
// Dimensions where only protective (-2) or no points exist are absent
// from the result. Labels are sanitized and sorted.
func GESListing(subgroupRecords []aggregate.RiskRecord) map[string]map[string]string {
	type key struct{ cuv, dimension string }
	labels := make(map[key]map[string]bool)
	for _, r := range subgroupRecords {
		if !r.Points.Valid || (r.Points.Int != 1 && r.Points.Int != 2) {
			continue
		}
		k := key{cuv: r.CUV, dimension: r.Dimension}
		if labels[k] == nil {
			labels[k] = make(map[string]bool)
		}
		labels[k][SanitizeGESLabel(r.Subgroup)] = true
	}

	out := make(map[string]map[string]string)
	for k, set := range labels {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		if out[k.cuv] == nil {
			out[k.cuv] = make(map[string]string)
		}
		out[k.cuv][k.dimension] = strings.Join(names, "; ")
	}
	return out
}

// SubgroupCounts counts the distinct subgroup labels per instance.
// Instances with fewer than 2 labels have their subgroup-specific
// recommendation output suppressed.
func SubgroupCounts(subgroupRecords []aggregate.RiskRecord) map[string]int {
	seen := make(map[string]map[string]bool)
	for _, r := range subgroupRecords {
		if seen[r.CUV] == nil {
			seen[r.CUV] = make(map[string]bool)
		}
		seen[r.CUV][r.Subgroup] = true
	}
	out := make(map[string]int, len(seen))
	for cuv, set := range seen {
		out[cuv] = len(set)
	}
	return out
}
