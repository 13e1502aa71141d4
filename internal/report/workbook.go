package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ISTdatateam/InformeCEAL/internal/aggregate"
	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/scoring"
)

// ─── SHEET NAMES ──────────────────────────────────────────────────────────────

// The eleven sheets of the batch output. Names are the contract with the
// rendering layer and match the historical workbook.
const (
	SheetBase          = "basecompleta"
	SheetItemCounts    = "recuentopreguntas"
	SheetTopQuestions  = "top_glosas"
	SheetResults       = "resultado"
	SheetViolence      = "violencia"
	SheetProtective    = "protectores"
	SheetExposureMeans = "expoviolencia"
	SheetSummary       = "Summary"
	SheetLevelPcts     = "porcentajes_niveles"
	SheetSubgroupDims  = "res_dimTE3"
	SheetSubgroupSumm  = "resumen"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Sheet is one flat table of the workbook.
type Sheet struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Workbook is the full batch output: every sheet in fixed order.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// Sheet returns the sheet with the given name.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i], true
		}
	}
	return nil, false
}

// ─── BUILD ────────────────────────────────────────────────────────────────────

// BuildWorkbook shapes every aggregate table into its sheet. All cells
// are rendered as strings; percentages keep at least one decimal.
func BuildWorkbook(cat *catalog.Catalog, in Inputs) *Workbook {
	return &Workbook{Sheets: []Sheet{
		baseSheet(cat, in.Scored),
		itemCountSheet(in.Factors),
		topQuestionSheet(in.Salient),
		resultSheet(SheetResults, in.Aggregates.Instance, false),
		violenceSheet(in.ExposureBreakdown),
		protectiveSheet(in.Protective),
		exposureMeanSheet(in.ExposureMeans),
		summarySheet(SheetSummary, in.Aggregates.InstanceSummaries, false),
		resultSheet(SheetLevelPcts, in.Aggregates.Subgroup, true),
		subgroupDimSheet(in.Aggregates.Subgroup),
		summarySheet(SheetSubgroupSumm, in.Aggregates.SubgroupSummaries, true),
	}}
}

func baseSheet(cat *catalog.Catalog, scored []scoring.ScoredRow) Sheet {
	dims := cat.Dimensions()
	header := []string{"CUV", "RUT_empleador", "CdT", "TE3", "Genero", "Edad", "Tramo_edad"}
	for _, d := range dims {
		header = append(header, d.Name, "Nivel "+d.Name)
	}

	rows := make([][]string, 0, len(scored))
	for _, sr := range scored {
		row := []string{
			sr.Row.CUV,
			sr.Row.RUTEmployer,
			sr.Row.CdT,
			sr.Row.TE3,
			sr.Row.Gender,
			strconv.Itoa(sr.Row.Age),
			sr.Row.AgeBracket,
		}
		for _, d := range dims {
			if ds, ok := sr.Score(d.Name); ok {
				row = append(row, strconv.Itoa(ds.Subtotal), string(ds.Level))
			} else {
				row = append(row, "", "")
			}
		}
		rows = append(rows, row)
	}
	return Sheet{Name: SheetBase, Header: header, Rows: rows}
}

func itemCountSheet(factors []aggregate.ItemFactor) Sheet {
	rows := make([][]string, 0, len(factors))
	for _, f := range factors {
		rows = append(rows, []string{f.CUV, f.Dimension, f.Question, strconv.Itoa(f.Factor)})
	}
	return Sheet{
		Name:   SheetItemCounts,
		Header: []string{"CUV", "Dimensión", "Pregunta", "Factor"},
		Rows:   rows,
	}
}

func topQuestionSheet(salient []aggregate.SalientItem) Sheet {
	rows := make([][]string, 0, len(salient))
	for _, s := range salient {
		rows = append(rows, []string{
			s.CUV, s.Dimension, strconv.Itoa(s.Rank), s.Question, strconv.Itoa(s.Factor),
		})
	}
	return Sheet{
		Name:   SheetTopQuestions,
		Header: []string{"CUV", "Dimensión", "Posición", "Pregunta", "Factor"},
		Rows:   rows,
	}
}

func resultSheet(name string, records []aggregate.RiskRecord, withSubgroup bool) Sheet {
	header := []string{"CUV"}
	if withSubgroup {
		header = append(header, "TE3")
	}
	header = append(header, "Dimensión", "Nivel", "Nivel_n", "Respuestas", "Total", "Porcentaje", "Puntaje", "Descripción")

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{r.CUV}
		if withSubgroup {
			row = append(row, r.Subgroup)
		}
		points := ""
		if r.Points.Valid {
			points = strconv.Itoa(r.Points.Int)
		}
		row = append(row,
			r.Dimension,
			string(r.Level),
			strconv.Itoa(r.LevelN),
			strconv.Itoa(r.Count),
			strconv.Itoa(r.Total),
			aggregate.FormatPercent(r.Percentage),
			points,
			r.Description,
		)
		rows = append(rows, row)
	}
	return Sheet{Name: name, Header: header, Rows: rows}
}

func violenceSheet(breakdown []aggregate.ExposureBreakdown) Sheet {
	rows := make([][]string, 0, len(breakdown))
	for _, b := range breakdown {
		rows = append(rows, []string{
			b.CUV, b.Code, b.Theme, b.Label,
			strconv.Itoa(b.Count), strconv.Itoa(b.Total),
			aggregate.FormatPercent(b.Percentage),
		})
	}
	return Sheet{
		Name:   SheetViolence,
		Header: []string{"CUV", "Código", "Tema", "Categoría", "Respuestas", "Total", "Porcentaje"},
		Rows:   rows,
	}
}

func protectiveSheet(ratios []aggregate.ProtectiveRatio) Sheet {
	rows := make([][]string, 0, len(ratios))
	for _, p := range ratios {
		rows = append(rows, []string{
			p.CUV, p.Code, p.Theme, p.Label,
			strconv.Itoa(p.Count), strconv.Itoa(p.Denominator),
			aggregate.FormatPercent(p.Ratio),
		})
	}
	return Sheet{
		Name:   SheetProtective,
		Header: []string{"CUV", "Código", "Tema", "Categoría", "Respuestas", "Denominador", "Porcentaje"},
		Rows:   rows,
	}
}

func exposureMeanSheet(means []aggregate.ExposureMean) Sheet {
	rows := make([][]string, 0, len(means))
	for _, m := range means {
		rows = append(rows, []string{
			m.CUV, m.Code, m.Theme,
			aggregate.FormatPercent(m.Mean), strconv.Itoa(m.Total),
		})
	}
	return Sheet{
		Name:   SheetExposureMeans,
		Header: []string{"CUV", "Código", "Tema", "Media", "Total"},
		Rows:   rows,
	}
}

func summarySheet(name string, summaries []aggregate.Summary, withSubgroup bool) Sheet {
	header := []string{"CUV"}
	if withSubgroup {
		header = append(header, "TE3")
	}
	header = append(header, "Puntaje_total", "Riesgo", "Respuestas")

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		row := []string{s.CUV}
		if withSubgroup {
			row = append(row, s.Subgroup)
		}
		row = append(row, strconv.Itoa(s.TotalPoints), s.Tier, strconv.Itoa(s.Respondents))
		rows = append(rows, row)
	}
	return Sheet{Name: name, Header: header, Rows: rows}
}

// subgroupDimSheet lists, per (CUV, dimension) at risk, the subgroups
// carrying that risk.
func subgroupDimSheet(subgroupRecords []aggregate.RiskRecord) Sheet {
	ges := GESListing(subgroupRecords)

	var rows [][]string
	for _, cuv := range sortedStringKeys(ges) {
		dims := ges[cuv]
		for _, dim := range sortedStringKeys(dims) {
			rows = append(rows, []string{cuv, dim, dims[dim]})
		}
	}
	return Sheet{
		Name:   SheetSubgroupDims,
		Header: []string{"CUV", "Dimensión", "GES"},
		Rows:   rows,
	}
}

// ─── OUTPUT ───────────────────────────────────────────────────────────────────

// WriteCSV writes one CSV file per sheet into dir, named
// "{sheet}.csv".
func (w *Workbook) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	for _, sheet := range w.Sheets {
		if err := writeSheetCSV(dir, sheet); err != nil {
			return err
		}
	}
	return nil
}

func writeSheetCSV(dir string, sheet Sheet) error {
	f, err := os.Create(filepath.Join(dir, sheet.Name+".csv"))
	if err != nil {
		return fmt.Errorf("workbook: sheet %s: %w", sheet.Name, err)
	}

	cw := csv.NewWriter(f)
	werr := cw.Write(sheet.Header)
	for _, row := range sheet.Rows {
		if werr != nil {
			break
		}
		werr = cw.Write(row)
	}
	cw.Flush()
	if werr == nil {
		werr = cw.Error()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("workbook: sheet %s: %w", sheet.Name, werr)
	}
	return nil
}

// Snapshot serializes the workbook for run persistence.
func (w *Workbook) Snapshot() (json.RawMessage, error) {
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("workbook: snapshot: %w", err)
	}
	return raw, nil
}

func sortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
