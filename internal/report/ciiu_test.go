package report_test

import (
	"testing"

	"github.com/ISTdatateam/InformeCEAL/internal/report"
)

func TestCIIUCode(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int
		wantOK bool
	}{
		{"long token keeps two digits", "COMERCIO_471100", 47, true},
		{"short token keeps one digit", "AGRICULTURA_0111", 0, true},
		{"mid token keeps one digit", "X_47110", 4, true},
		{"no underscore, numeric", "471100", 47, true},
		{"non numeric token", "COMERCIO_RETAIL", 0, false},
		{"empty", "", 0, false},
		{"trailing underscore", "COMERCIO_", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := report.CIIUCode(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("CIIUCode(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
