// Package ident canonicalizes instance identifiers (CUV). Source tables
// carry the CUV as a mix of integers, strings, and floats rendered with a
// trailing ".0" depending on origin; a merge between two tables that
// disagree on the representation silently produces zero rows. Every table
// boundary therefore funnels its CUV values through Canonical before any
// join or map lookup.
package ident

import "strings"

// Canonical returns the single canonical string form of an instance
// identifier: surrounding whitespace removed, and a float-style ".0"
// suffix stripped when the remainder is purely numeric ("1001.0" and
// "1001" are the same instance). Non-numeric identifiers are returned
// trimmed but otherwise untouched.
func Canonical(raw string) string {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutSuffix(s, ".0"); ok && isDigits(rest) {
		return rest
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
