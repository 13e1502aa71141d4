package survey

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/ident"
)

// ─── COLUMN NAMES ─────────────────────────────────────────────────────────────

// Canonical column names after header normalization.
const (
	ColInstance       = "CUV"
	ColWorkplace      = "CdT"
	ColWorkplaceGlosa = "CDT_Glosa"
	ColSubgroup       = "TE3"
	ColGender         = "Genero"
	ColAge            = "Edad"
	ColRUT            = "RUT_empleador"
)

// te1Position is the zero-based position where the genuine TE1 item sits
// in the per-workplace file layout (the 60th column of the respondent
// sheet). The column at position 2 is the workplace label even though the
// exporter also names it "TE1".
const te1Position = 59

// ─── HEADER NORMALIZATION ────────────────────────────────────────────────────

// ErrSchema marks a source whose header does not match the expected
// layout. Schema drift fails the source loudly instead of being papered
// over with a silent positional rename.
var errSchema = fmt.Errorf("survey: source schema drift")

// NormalizeHeader maps a raw source header onto the canonical column
// names. Two source shapes exist:
//
//   - The unified database export carries a literal "CdT" column holding
//     the stored workplace label, plus "TE1" (actually the label read
//     from the file slot) and "TE1.1" (the genuine trust item) after the
//     exporter de-duplicated the name.
//   - The per-workplace file carries "TE1" twice: at position 2 (the
//     workplace label) and at position 60 (the genuine item).
//
// In both shapes the demographic columns DD1/DD2 are renamed to
// Genero/Edad. Any remaining duplicated names are suffixed "_1", "_2", …
// keeping the first occurrence unsuffixed; TE1 itself must end up exactly
// once or the header is rejected as schema drift.
func NormalizeHeader(header []string) ([]string, error) {
	out := make([]string, len(header))
	for i, name := range header {
		out[i] = strings.TrimSpace(name)
	}

	if i := indexOf(out, ColWorkplace); i >= 0 {
		// Database shape.
		out[i] = ColWorkplaceGlosa
		if j := indexOf(out, "TE1"); j >= 0 {
			out[j] = ColWorkplace
		}
		if j := indexOf(out, "TE1.1"); j >= 0 {
			out[j] = "TE1"
		}
	} else {
		// File shape: positional contract.
		if len(out) <= te1Position {
			return nil, fmt.Errorf("%w: %d columns, need at least %d", errSchema, len(out), te1Position+1)
		}
		if out[2] == "TE1" {
			out[2] = ColWorkplace
		}
		if out[te1Position] != "TE1" {
			return nil, fmt.Errorf("%w: expected TE1 at column %d, found %q", errSchema, te1Position+1, out[te1Position])
		}
	}

	for i, name := range out {
		switch name {
		case "DD1":
			out[i] = ColGender
		case "DD2":
			out[i] = ColAge
		}
	}

	suffixDuplicates(out)

	if n := count(out, "TE1"); n != 1 {
		return nil, fmt.Errorf("%w: %d TE1 columns after normalization", errSchema, n)
	}

	return out, nil
}

// suffixDuplicates renames repeated column names in place, keeping the
// first occurrence and appending _1, _2, … to the rest.
func suffixDuplicates(names []string) {
	seen := make(map[string]int, len(names))
	for i, name := range names {
		n := seen[name]
		seen[name] = n + 1
		if n > 0 {
			names[i] = fmt.Sprintf("%s_%d", name, n)
		}
	}
}

func indexOf(names []string, want string) int {
	for i, n := range names {
		if n == want {
			return i
		}
	}
	return -1
}

func count(names []string, want string) int {
	n := 0
	for _, name := range names {
		if name == want {
			n++
		}
	}
	return n
}

// ─── SOURCE NAME METADATA ─────────────────────────────────────────────────────

// SourceMeta is the metadata parsed from a per-workplace source name,
// e.g. "76123456-7-Planta Norte-1001.csv".
type SourceMeta struct {
	RUT string // employer tax ID: 8 digits + check character
	CUV string // instance ID: trailing numeric token before the extension
	CdT string // workplace label: middle token
}

var (
	rutPattern = regexp.MustCompile(`\d{8}-[\dkK]`)
	cuvPattern = regexp.MustCompile(`(\d+)\.[A-Za-z0-9]+$`)
	cdtPattern = regexp.MustCompile(`\d{8}-[\dkK]-(.*)-\d+\.[A-Za-z0-9]+$`)
)

// ParseSourceName extracts employer, instance, and workplace metadata
// from a source file name. Fields that cannot be extracted are left
// empty; a missing instance ID additionally returns an error so callers
// can log it, but parsing is never fatal: rows without a CUV simply stay
// out of the instance-keyed aggregates.
func ParseSourceName(name string) (SourceMeta, error) {
	var meta SourceMeta
	if m := rutPattern.FindString(name); m != "" {
		meta.RUT = m
	}
	if m := cdtPattern.FindStringSubmatch(name); m != nil {
		meta.CdT = m[1]
	}
	if m := cuvPattern.FindStringSubmatch(name); m != nil {
		meta.CUV = ident.Canonical(m[1])
		return meta, nil
	}
	return meta, fmt.Errorf("survey: no instance ID in source name %q", name)
}

// ReconcileLabels merges the workplace label found in a row with the one
// from the source metadata. When both are present and differ after
// trimming, they are concatenated "{row} - {source}" so neither form is
// lost; when one side is empty the other wins.
func ReconcileLabels(fromRow, fromSource string) string {
	fromRow = strings.TrimSpace(fromRow)
	fromSource = strings.TrimSpace(fromSource)
	switch {
	case fromRow == "":
		return fromSource
	case fromSource == "" || fromRow == fromSource:
		return fromRow
	default:
		return fromRow + " - " + fromSource
	}
}

// ─── LOADER ───────────────────────────────────────────────────────────────────

// Loader turns raw sources into unified respondent rows.
type Loader struct {
	cat    *catalog.Catalog
	logger *slog.Logger

	// Progress, when set, is called once per source after it has been
	// processed (successfully or not). Used by the CLI progress bar.
	Progress func()
}

// NewLoader constructs a Loader over the frozen catalog.
func NewLoader(cat *catalog.Catalog, logger *slog.Logger) *Loader {
	return &Loader{cat: cat, logger: logger}
}

// Load processes every source and returns the combined respondent table.
// Failures are isolated per source: a source that cannot be read or whose
// header is rejected is logged and skipped, and the rest of the batch
// continues. Load fails only when the context is cancelled.
func (l *Loader) Load(ctx context.Context, sources []Source) ([]Row, error) {
	var rows []Row
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := l.LoadSource(ctx, src)
		if err != nil {
			l.logger.Error("survey: source failed, skipping", "source", src.Name(), "error", err)
		} else {
			rows = append(rows, got...)
		}
		if l.Progress != nil {
			l.Progress()
		}
	}
	return rows, nil
}

// LoadSource processes a single source.
func (l *Loader) LoadSource(ctx context.Context, src Source) ([]Row, error) {
	table, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}

	header, err := NormalizeHeader(table.Header)
	if err != nil {
		return nil, err
	}

	meta, err := ParseSourceName(table.Name)
	if err != nil {
		// Non-fatal: rows keep whatever CUV the table itself carries.
		l.logger.Warn("survey: source name metadata incomplete", "source", table.Name, "error", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	rows := make([]Row, 0, len(table.Records))
	for i, rec := range table.Records {
		row := l.buildRow(header, col, rec, meta)
		if row.CUV == "" {
			l.logger.Warn("survey: row has no instance ID, excluded from aggregates",
				"source", table.Name, "row", i+1)
		}
		rows = append(rows, row)
	}

	l.logger.Info("survey: source loaded", "source", table.Name, "rows", len(rows))
	return rows, nil
}

func (l *Loader) buildRow(header []string, col map[string]int, rec []string, meta SourceMeta) Row {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	row := Row{
		RUTEmployer: meta.RUT,
		TE3:         field(ColSubgroup),
		Responses:   make(map[string]int, len(header)),
	}

	// Instance ID: the row's own column wins; the source name fills in
	// when the column is absent (per-workplace files carry no CUV column).
	if v := field(ColInstance); v != "" {
		row.CUV = ident.Canonical(v)
	} else {
		row.CUV = meta.CUV
	}
	if v := field(ColRUT); v != "" {
		row.RUTEmployer = v
	}

	// Workplace label reconciliation. The database shape carries the
	// stored label in CDT_Glosa; the file shape gets it from the name.
	glosa := field(ColWorkplaceGlosa)
	if glosa == "" {
		glosa = meta.CdT
	}
	row.CdT = ReconcileLabels(field(ColWorkplace), glosa)

	if v := field(ColGender); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			row.Gender = MapGender(code)
		}
	}
	if v := field(ColAge); v != "" {
		if age, err := strconv.Atoi(v); err == nil {
			row.Age = age
			row.AgeBracket = AgeBracket(age)
			if row.AgeBracket == "" {
				l.logger.Warn("survey: age below bracket floor", "age", age, "cuv", row.CUV)
			}
		}
	}

	// Item responses: unparsable or blank cells stay absent, mirroring the
	// "skip, don't zero-fill" treatment of non-numeric upstream values.
	for _, it := range l.cat.Items() {
		v := field(it.Code)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			// Tolerate float-rendered integers from spreadsheet exports.
			f, ferr := strconv.ParseFloat(v, 64)
			if ferr != nil || f != float64(int(f)) {
				continue
			}
			n = int(f)
		}
		row.Responses[it.Code] = n
	}

	return row
}
