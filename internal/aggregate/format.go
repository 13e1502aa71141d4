package aggregate

import (
	"strconv"
	"strings"
)

// FormatPercent renders a percentage for the description strings. Whole
// numbers keep one trailing zero ("60.0"), fractional values print their
// shortest exact form ("58.33"). The reports read "60.0% Riesgo Alto",
// never "60%".
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
