// Package catalog holds the static reference data of the CEAL-SM
// questionnaire: the question catalog, the per-dimension risk interval
// table, and the auxiliary item themes (violence exposure, protective
// factors). It is intentionally dependency-free: it imports nothing from
// internal/ and can be used from tests without any setup.
//
// All tables are built once by New and never mutated afterwards. Scoring
// and aggregation functions receive a *Catalog as an explicit parameter;
// there is no package-level lookup state.
package catalog

import "fmt"

// ─── LEVELS ───────────────────────────────────────────────────────────────────

// Level is the risk classification of a dimension subtotal. The two
// sentinel values are deliberate: a subtotal that falls outside every band,
// or a dimension with no interval row, must surface as such downstream and
// must never be coerced to one of the three real levels.
type Level string

const (
	LevelLow    Level = "Bajo"
	LevelMedium Level = "Medio"
	LevelHigh   Level = "Alto"

	// LevelOutOfRange marks a subtotal outside all three bands.
	LevelOutOfRange Level = "fuera de rango"

	// LevelNoInterval marks a dimension absent from the interval table
	// (the GHQ block is the expected case).
	LevelNoInterval Level = "dimensión no encontrada"
)

// Ordinal returns the 1/2/3 numeric form used in the output tables
// (Nivel_n). Sentinel levels return 0.
func (l Level) Ordinal() int {
	switch l {
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	default:
		return 0
	}
}

// Levels lists the three real levels in band order. Aggregation iterates
// this slice so every group always produces exactly three rows per
// dimension, even when a level has zero respondents.
func Levels() [3]Level {
	return [3]Level{LevelLow, LevelMedium, LevelHigh}
}

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Item is one question of the catalog.
type Item struct {
	Code      string // unique item code, e.g. "QD1"
	DimCode   string // short dimension code, e.g. "CT"
	Dimension string // human-readable dimension name
	Question  string // question text as printed in reports
}

// Range is an inclusive integer interval.
type Range struct {
	Lo, Hi int
}

// Contains reports whether v falls inside the inclusive range.
func (r Range) Contains(v int) bool {
	return r.Lo <= v && v <= r.Hi
}

// Interval holds the three risk bands of one dimension. Bands are
// contiguous and non-overlapping; New validates this at construction.
type Interval struct {
	Dimension string
	Low       Range
	Medium    Range
	High      Range
}

// Theme is the short report label of an auxiliary analysis item.
type Theme struct {
	Code  string
	Label string
}

// ─── CATALOG ──────────────────────────────────────────────────────────────────

// Dimension groups the catalog items of one dimension in questionnaire
// order.
type Dimension struct {
	Code  string
	Name  string
	Items []string // item codes, questionnaire order
}

// Catalog is the frozen reference data set. Construct with New; the zero
// value is not usable.
type Catalog struct {
	items      []Item
	byCode     map[string]Item
	dimensions []Dimension // questionnaire order
	intervals  map[string]Interval

	violence   []Theme
	protective []Theme
}

// New builds the catalog from the literal tables in this package and
// validates the interval table. It should be called once at process start.
func New() (*Catalog, error) {
	c := &Catalog{
		byCode:     make(map[string]Item, len(questionCatalog)),
		intervals:  make(map[string]Interval, len(riskIntervals)),
		violence:   violenceThemes,
		protective: protectiveThemes,
	}

	dimIndex := make(map[string]int)
	for _, it := range questionCatalog {
		if _, dup := c.byCode[it.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate item code %q", it.Code)
		}
		c.byCode[it.Code] = it
		c.items = append(c.items, it)

		i, ok := dimIndex[it.DimCode]
		if !ok {
			dimIndex[it.DimCode] = len(c.dimensions)
			c.dimensions = append(c.dimensions, Dimension{Code: it.DimCode, Name: it.Dimension})
			i = dimIndex[it.DimCode]
		}
		c.dimensions[i].Items = append(c.dimensions[i].Items, it.Code)
	}

	for _, iv := range riskIntervals {
		if err := validateInterval(iv); err != nil {
			return nil, err
		}
		c.intervals[iv.Dimension] = iv
	}

	return c, nil
}

// validateInterval checks that the three bands of an interval are ordered
// and contiguous (Medium starts right after Low ends, High right after
// Medium). The Vulnerabilidad row legitimately starts at 1, so only
// internal contiguity is enforced, not a zero floor.
func validateInterval(iv Interval) error {
	for _, r := range []Range{iv.Low, iv.Medium, iv.High} {
		if r.Lo > r.Hi {
			return fmt.Errorf("catalog: interval %q: inverted range %d-%d", iv.Dimension, r.Lo, r.Hi)
		}
	}
	if iv.Medium.Lo != iv.Low.Hi+1 || iv.High.Lo != iv.Medium.Hi+1 {
		return fmt.Errorf("catalog: interval %q: bands not contiguous", iv.Dimension)
	}
	return nil
}

// MustNew is New for package main and tests, where a malformed literal
// table is a programming error.
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// ─── LOOKUPS ──────────────────────────────────────────────────────────────────

// Item returns the catalog entry for an item code.
func (c *Catalog) Item(code string) (Item, bool) {
	it, ok := c.byCode[code]
	return it, ok
}

// Items returns every catalog item in questionnaire order. The returned
// slice is a copy; callers may not mutate catalog state through it.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Dimensions returns every dimension in questionnaire order (GHQ last).
func (c *Catalog) Dimensions() []Dimension {
	out := make([]Dimension, len(c.dimensions))
	copy(out, c.dimensions)
	return out
}

// ScoredDimensions returns the dimensions that have a risk interval row,
// in questionnaire order. The GHQ block has none and is therefore absent:
// it is tracked informationally and never contributes points.
func (c *Catalog) ScoredDimensions() []Dimension {
	var out []Dimension
	for _, d := range c.dimensions {
		if _, ok := c.intervals[d.Name]; ok {
			out = append(out, d)
		}
	}
	return out
}

// HasInterval reports whether the dimension name has a risk interval row.
func (c *Catalog) HasInterval(dimension string) bool {
	_, ok := c.intervals[dimension]
	return ok
}

// Classify maps a dimension subtotal to its risk level using the interval
// table. Inclusive-bounds membership, first matching band wins. A missing
// dimension or an out-of-band subtotal returns the corresponding sentinel
// level, never a default.
func (c *Catalog) Classify(dimension string, subtotal int) Level {
	iv, ok := c.intervals[dimension]
	if !ok {
		return LevelNoInterval
	}
	switch {
	case iv.Low.Contains(subtotal):
		return LevelLow
	case iv.Medium.Contains(subtotal):
		return LevelMedium
	case iv.High.Contains(subtotal):
		return LevelHigh
	default:
		return LevelOutOfRange
	}
}

// ViolenceThemes returns the violence-exposure items in report order.
// Codes are the raw item codes; ExposureCompositeCode is appended by the
// analyzer for the composite flag.
func (c *Catalog) ViolenceThemes() []Theme {
	out := make([]Theme, len(c.violence))
	copy(out, c.violence)
	return out
}

// ProtectiveThemes returns the protective-factor items in report order.
func (c *Catalog) ProtectiveThemes() []Theme {
	out := make([]Theme, len(c.protective))
	copy(out, c.protective)
	return out
}

// Question returns the question text for an item code, or the code itself
// when no catalog entry exists.
func (c *Catalog) Question(code string) string {
	if it, ok := c.byCode[code]; ok {
		return it.Question
	}
	return code
}
