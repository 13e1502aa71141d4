// Package report joins the aggregate tables with the reference data
// (folio metadata, CIIU industry codes, recommendation text) and shapes
// the flat sheets the rendering layer consumes.
package report

import (
	"strconv"
	"strings"
)

// CIIUCode derives the 1-2 digit leading industry code from the
// free-text CIIU field of the folio table. The code token sits after the
// last underscore; tokens of more than five digits keep their first two
// digits, shorter tokens their first digit. Non-numeric tokens yield no
// code.
func CIIUCode(raw string) (int, bool) {
	token := raw
	if i := strings.LastIndex(raw, "_"); i >= 0 {
		token = raw[i+1:]
	}
	token = strings.TrimSpace(token)
	if token == "" || !isDigits(token) {
		return 0, false
	}
	if len(token) > 5 {
		token = token[:2]
	} else {
		token = token[:1]
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
