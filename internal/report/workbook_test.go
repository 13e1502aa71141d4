package report_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/report"
)

func TestBuildWorkbook_AllSheetsPresent(t *testing.T) {
	cat := catalog.MustNew()
	in := highRiskInputs(t, "1001")

	wb := report.BuildWorkbook(cat, in)

	want := []string{
		report.SheetBase,
		report.SheetItemCounts,
		report.SheetTopQuestions,
		report.SheetResults,
		report.SheetViolence,
		report.SheetProtective,
		report.SheetExposureMeans,
		report.SheetSummary,
		report.SheetLevelPcts,
		report.SheetSubgroupDims,
		report.SheetSubgroupSumm,
	}
	if len(wb.Sheets) != len(want) {
		t.Fatalf("got %d sheets, want %d", len(wb.Sheets), len(want))
	}
	for i, name := range want {
		if wb.Sheets[i].Name != name {
			t.Errorf("sheet %d = %q, want %q", i, wb.Sheets[i].Name, name)
		}
	}
}

func TestBuildWorkbook_ResultSheetRows(t *testing.T) {
	cat := catalog.MustNew()
	in := highRiskInputs(t, "1001")
	wb := report.BuildWorkbook(cat, in)

	sheet, ok := wb.Sheet(report.SheetResults)
	if !ok {
		t.Fatal("resultado sheet missing")
	}
	// 12 scored dimensions × 3 levels for the single instance.
	if got, want := len(sheet.Rows), 36; got != want {
		t.Fatalf("got %d result rows, want %d", got, want)
	}
	if got, want := len(sheet.Header), 9; got != want {
		t.Fatalf("got %d header columns, want %d", got, want)
	}
	for _, row := range sheet.Rows {
		if len(row) != len(sheet.Header) {
			t.Fatalf("ragged row: %d cells, header has %d", len(row), len(sheet.Header))
		}
	}
}

func TestBuildWorkbook_BaseSheetCarriesScores(t *testing.T) {
	cat := catalog.MustNew()
	in := highRiskInputs(t, "1001")
	wb := report.BuildWorkbook(cat, in)

	sheet, ok := wb.Sheet(report.SheetBase)
	if !ok {
		t.Fatal("basecompleta sheet missing")
	}
	if got, want := len(sheet.Rows), 8; got != want {
		t.Fatalf("got %d respondent rows, want %d", got, want)
	}
	// 7 identity columns plus subtotal+level per dimension, GHQ included.
	wantCols := 7 + 2*len(cat.Dimensions())
	if len(sheet.Header) != wantCols {
		t.Errorf("got %d columns, want %d", len(sheet.Header), wantCols)
	}
}

func TestWorkbook_WriteCSVAndSnapshot(t *testing.T) {
	cat := catalog.MustNew()
	in := highRiskInputs(t, "1001")
	wb := report.BuildWorkbook(cat, in)

	dir := t.TempDir()
	if err := wb.WriteCSV(dir); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, report.SheetSummary+".csv"))
	if err != nil {
		t.Fatalf("summary csv missing: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read summary csv: %v", err)
	}
	if len(records) != 2 { // header + one instance
		t.Errorf("summary csv has %d records, want 2", len(records))
	}

	raw, err := wb.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	var decoded report.Workbook
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("snapshot does not decode: %v", err)
	}
	if len(decoded.Sheets) != len(wb.Sheets) {
		t.Errorf("decoded %d sheets, want %d", len(decoded.Sheets), len(wb.Sheets))
	}
}
