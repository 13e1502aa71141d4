package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ISTdatateam/InformeCEAL/internal/report"
	"github.com/ISTdatateam/InformeCEAL/internal/survey"
)

// ─── COMBINED RESPONDENT TABLE ────────────────────────────────────────────────

// combinedTable is the unified respondent table maintained by the
// upstream ingestion jobs. Its header is the database shape: the loader
// renames CdT, TE1, TE1.1, DD1, and DD2 on read.
const combinedTable = "informeCEAL_combinado"

// CombinedSource reads the unified respondent table as a survey.Source,
// the database twin of the per-workplace file source.
type CombinedSource struct {
	store *Store
}

// CombinedSource returns the database-backed respondent source.
func (s *Store) CombinedSource() *CombinedSource {
	return &CombinedSource{store: s}
}

// Name implements survey.Source.
func (c *CombinedSource) Name() string { return combinedTable }

// Read loads the whole combined table. Every cell is rendered as text;
// NULLs become empty strings, which the loader treats as absent answers.
func (c *CombinedSource) Read(ctx context.Context) (*survey.Table, error) {
	rows, err := c.store.pool.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %q`, combinedTable))
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", combinedTable, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("store: read %s: columns: %w", combinedTable, err)
	}

	table := &survey.Table{Name: combinedTable, Header: cols}
	cells := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("store: read %s: scan: %w", combinedTable, err)
		}
		record := make([]string, len(cols))
		for i, cell := range cells {
			if cell.Valid {
				record[i] = cell.String
			}
		}
		table.Records = append(table.Records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: read %s: %w", combinedTable, err)
	}
	return table, nil
}

// ─── FOLIO TABLE ──────────────────────────────────────────────────────────────

// LoadFolios reads the external results table: one header-metadata row
// per instance.
func (s *Store) LoadFolios(ctx context.Context) ([]report.Folio, error) {
	const q = `
SELECT cuv, folio, razon_social, rut_empleador, nombre_cdt, ciiu,
       fecha_inicio, fecha_fin, n_trabajadores
FROM resultados`

	rows, err := s.pool.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: load folios: %w", err)
	}
	defer rows.Close()

	var out []report.Folio
	for rows.Next() {
		var f report.Folio
		var folio, company, rut, workplace, ciiu sql.NullString
		var start, end sql.NullTime
		var workforce sql.NullInt64
		if err := rows.Scan(&f.CUV, &folio, &company, &rut, &workplace, &ciiu, &start, &end, &workforce); err != nil {
			return nil, fmt.Errorf("store: load folios: scan: %w", err)
		}
		f.Folio = folio.String
		f.Company = company.String
		f.RUT = rut.String
		f.Workplace = workplace.String
		f.CIIUText = ciiu.String
		f.Start = start.Time
		f.End = end.Time
		f.Workforce = int(workforce.Int64)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load folios: %w", err)
	}
	return out, nil
}

// ─── RECOMMENDATION REFERENCE ─────────────────────────────────────────────────

// LoadRecommendations reads the flattened recommendation reference,
// already joined with the CIIU section table upstream.
func (s *Store) LoadRecommendations(ctx context.Context) ([]report.Recommendation, error) {
	const q = `
SELECT ciiu, dimension, rubro, recomendacion
FROM recomendaciones`

	rows, err := s.pool.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: load recommendations: %w", err)
	}
	defer rows.Close()

	var out []report.Recommendation
	for rows.Next() {
		var r report.Recommendation
		var rubro sql.NullString
		if err := rows.Scan(&r.CIIU, &r.Dimension, &rubro, &r.Text); err != nil {
			return nil, fmt.Errorf("store: load recommendations: scan: %w", err)
		}
		r.Rubro = rubro.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load recommendations: %w", err)
	}
	return out, nil
}
