package catalog_test

import (
	"testing"

	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
)

func TestNew_ValidatesCleanly(t *testing.T) {
	c, err := catalog.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(c.Items()); got != 66 {
		t.Errorf("expected 66 catalog items, got %d", got)
	}
	if got := len(c.Dimensions()); got != 13 {
		t.Errorf("expected 13 dimensions, got %d", got)
	}
	if got := len(c.ScoredDimensions()); got != 12 {
		t.Errorf("expected 12 scored dimensions, got %d", got)
	}
}

func TestScoredDimensions_ExcludesGHQ(t *testing.T) {
	c := catalog.MustNew()
	for _, d := range c.ScoredDimensions() {
		if d.Code == "GHQ" {
			t.Fatal("GHQ must not appear among scored dimensions")
		}
	}
	if c.HasInterval("Cuestionario de salud general") {
		t.Error("GHQ dimension must have no risk interval row")
	}
}

func TestClassify_BandMembership(t *testing.T) {
	c := catalog.MustNew()
	tests := []struct {
		dimension string
		subtotal  int
		want      catalog.Level
	}{
		// Carga de trabajo: Bajo 0-1, Medio 2-4, Alto 5-12.
		{"Carga de trabajo", 0, catalog.LevelLow},
		{"Carga de trabajo", 1, catalog.LevelLow},
		{"Carga de trabajo", 2, catalog.LevelMedium},
		{"Carga de trabajo", 4, catalog.LevelMedium},
		{"Carga de trabajo", 5, catalog.LevelHigh},
		{"Carga de trabajo", 12, catalog.LevelHigh},
		{"Carga de trabajo", 13, catalog.LevelOutOfRange},
		{"Carga de trabajo", -1, catalog.LevelOutOfRange},

		// Compañerismo has a single-value Bajo band.
		{"Compañerismo", 0, catalog.LevelLow},
		{"Compañerismo", 1, catalog.LevelMedium},

		// Vulnerabilidad starts at 1; 0 is out of range, not Bajo.
		{"Vulnerabilidad", 0, catalog.LevelOutOfRange},
		{"Vulnerabilidad", 1, catalog.LevelLow},
		{"Vulnerabilidad", 24, catalog.LevelHigh},

		// Unknown dimensions surface the sentinel, never a default.
		{"Cuestionario de salud general", 3, catalog.LevelNoInterval},
		{"No existe", 3, catalog.LevelNoInterval},
	}
	for _, tt := range tests {
		got := c.Classify(tt.dimension, tt.subtotal)
		if got != tt.want {
			t.Errorf("Classify(%q, %d) = %q, want %q", tt.dimension, tt.subtotal, got, tt.want)
		}
	}
}

func TestLevelOrdinal(t *testing.T) {
	tests := []struct {
		level catalog.Level
		want  int
	}{
		{catalog.LevelLow, 1},
		{catalog.LevelMedium, 2},
		{catalog.LevelHigh, 3},
		{catalog.LevelOutOfRange, 0},
		{catalog.LevelNoInterval, 0},
	}
	for _, tt := range tests {
		if got := tt.level.Ordinal(); got != tt.want {
			t.Errorf("Ordinal(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestViolenceThemes_CompositeLast(t *testing.T) {
	c := catalog.MustNew()
	themes := c.ViolenceThemes()
	if len(themes) != 8 {
		t.Fatalf("expected 8 violence themes, got %d", len(themes))
	}
	if themes[len(themes)-1].Code != catalog.ExposureCompositeCode {
		t.Errorf("composite flag must be last, got %q", themes[len(themes)-1].Code)
	}
}

func TestProtectiveThemes(t *testing.T) {
	c := catalog.MustNew()
	themes := c.ProtectiveThemes()
	if len(themes) != 6 {
		t.Fatalf("expected 6 protective themes, got %d", len(themes))
	}
	for _, th := range themes {
		if _, ok := c.Item(th.Code); !ok {
			t.Errorf("protective theme %q is not a catalog item", th.Code)
		}
	}
}
