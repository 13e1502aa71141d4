package survey

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Table is one raw tabular source: a header row plus data records, all as
// strings. Both the per-workplace file exporter and the unified database
// table are reduced to this shape before normalization.
type Table struct {
	// Name identifies the source for metadata extraction and logging. For
	// file sources it is the base filename; for database sources it is the
	// table name.
	Name string

	Header  []string
	Records [][]string
}

// Source yields one raw Table. Implementations: FileSource (one workplace
// spreadsheet export) and the store's combined-table reader.
type Source interface {
	// Name identifies the source for logging and metadata extraction.
	Name() string

	// Read loads the full table into memory. The whole group must be
	// present before any aggregation starts, so there is no row streaming.
	Read(ctx context.Context) (*Table, error)
}

// ─── FILE SOURCE ──────────────────────────────────────────────────────────────

// FileSource reads one per-workplace CSV export. The upstream exporter
// writes the respondent sheet with the header on the second row and the
// first two spreadsheet columns blank, mirroring the upstream workbook
// layout ("BaseCompleta", header row 2, columns C:CO); skipHeaderRows and
// skipColumns account for that.
type FileSource struct {
	Path string

	// SkipRows is the number of leading rows above the header. Defaults
	// to 1 (title row) when zero-valued via NewFileSource.
	SkipRows int

	// SkipColumns is the number of leading columns to drop from every
	// row. Defaults to 2 (spreadsheet columns A and B) via NewFileSource.
	SkipColumns int
}

// NewFileSource builds a FileSource with the exporter's standard layout.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, SkipRows: 1, SkipColumns: 2}
}

func (f *FileSource) Name() string {
	return filepath.Base(f.Path)
}

func (f *FileSource) Read(ctx context.Context) (*Table, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("survey: open source: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1 // exporter rows can be ragged; validated later

	var (
		header  []string
		records [][]string
		rowIdx  int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("survey: read %s: %w", f.Name(), err)
		}
		if rowIdx < f.SkipRows {
			rowIdx++
			continue
		}
		if len(rec) > f.SkipColumns {
			rec = rec[f.SkipColumns:]
		} else {
			rec = nil
		}
		if header == nil {
			header = rec
		} else {
			records = append(records, rec)
		}
		rowIdx++
	}

	if header == nil {
		return nil, fmt.Errorf("survey: %s: no header row found", f.Name())
	}

	return &Table{Name: f.Name(), Header: header, Records: records}, nil
}
