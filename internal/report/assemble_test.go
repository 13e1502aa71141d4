package report_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/ISTdatateam/InformeCEAL/internal/aggregate"
	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/report"
	"github.com/ISTdatateam/InformeCEAL/internal/scoring"
	"github.com/ISTdatateam/InformeCEAL/internal/survey"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// highRiskInputs builds one instance where workload carries points 2,
// with two subgroups.
func highRiskInputs(t *testing.T, cuv string) report.Inputs {
	t.Helper()
	cat := catalog.MustNew()
	var rows []survey.Row
	for i := 0; i < 4; i++ {
		rows = append(rows, survey.Row{CUV: cuv, TE3: "Ventas", Responses: map[string]int{"QD1": 6}})
	}
	for i := 0; i < 4; i++ {
		rows = append(rows, survey.Row{CUV: cuv, TE3: "Bodega", Responses: map[string]int{"QD1": 6}})
	}
	scored := scoring.ScoreRows(cat, rows)
	return report.Inputs{
		Scored:     scored,
		Aggregates: aggregate.Compute(cat, scored),
	}
}

func TestAssemble_SkipsInstancesWithoutFolio(t *testing.T) {
	in := highRiskInputs(t, "1001")
	in.Folios = map[string]report.Folio{} // no folio rows at all

	got := report.Assemble(in, discard())
	if len(got) != 0 {
		t.Fatalf("got %d reports, want 0 without folio data", len(got))
	}
}

func TestAssemble_JoinsFolioAndRecommendations(t *testing.T) {
	in := highRiskInputs(t, "1001")
	in.Folios = report.FolioIndex([]report.Folio{
		{CUV: "1001", Folio: "F-9", Company: "ACME", CIIUText: "COMERCIO_471100"},
	})
	in.Recommendations = report.NewRecommendations([]report.Recommendation{
		{CIIU: 47, Dimension: "Carga de trabajo", Text: "Redistribuir tareas"},
		{CIIU: 47, Dimension: "Carga de trabajo", Text: "Revisar dotación"},
		{CIIU: 12, Dimension: "Carga de trabajo", Text: "Otro rubro"},
	})

	got := report.Assemble(in, discard())
	if len(got) != 1 {
		t.Fatalf("got %d reports, want 1", len(got))
	}
	r := got[0]
	if r.Folio.Folio != "F-9" || r.CIIU != 47 {
		t.Errorf("folio = %q ciiu = %d, want F-9 / 47", r.Folio.Folio, r.CIIU)
	}
	recs := r.Recommendations["Carga de trabajo"]
	if len(recs) != 2 {
		t.Fatalf("got %d workload recommendations, want 2", len(recs))
	}
	if r.SubgroupCount != 2 {
		t.Errorf("subgroup count = %d, want 2", r.SubgroupCount)
	}
	if r.GES["Carga de trabajo"] != "Bodega; Ventas" {
		t.Errorf("GES listing = %q, want \"Bodega; Ventas\"", r.GES["Carga de trabajo"])
	}
}

func TestAssemble_MissingRecommendationPairYieldsEmptyList(t *testing.T) {
	in := highRiskInputs(t, "1001")
	in.Folios = report.FolioIndex([]report.Folio{{CUV: "1001", CIIUText: "X_999999"}})
	in.Recommendations = report.NewRecommendations(nil)

	got := report.Assemble(in, discard())
	if len(got) != 1 {
		t.Fatalf("got %d reports, want 1", len(got))
	}
	recs, ok := got[0].Recommendations["Carga de trabajo"]
	if !ok {
		t.Fatal("risk-carrying dimension absent from recommendation map")
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations, want empty list", len(recs))
	}
}

func TestAssemble_SingleSubgroupSuppressesGES(t *testing.T) {
	cat := catalog.MustNew()
	var rows []survey.Row
	for i := 0; i < 4; i++ {
		rows = append(rows, survey.Row{CUV: "1001", TE3: "Ventas", Responses: map[string]int{"QD1": 6}})
	}
	scored := scoring.ScoreRows(cat, rows)
	in := report.Inputs{
		Scored:     scored,
		Aggregates: aggregate.Compute(cat, scored),
		Folios:     report.FolioIndex([]report.Folio{{CUV: "1001"}}),
	}

	got := report.Assemble(in, discard())
	if len(got) != 1 {
		t.Fatalf("got %d reports, want 1", len(got))
	}
	r := got[0]
	if len(r.SubgroupRecords) == 0 {
		t.Error("subgroup records must still be computed with one label")
	}
	if r.GES != nil {
		t.Errorf("GES = %v, want nil with a single subgroup", r.GES)
	}
}

// Instance IDs arrive as a mix of plain and float-rendered strings
// depending on origin; the canonical form must make the folio join
// behave as if both sides agreed from the start.
func TestAssemble_MixedIDRepresentationsStillJoin(t *testing.T) {
	in := highRiskInputs(t, "1001")
	in.Folios = report.FolioIndex([]report.Folio{{CUV: "1001.0"}})

	got := report.Assemble(in, discard())
	if len(got) != 1 {
		t.Fatalf("got %d reports, want 1: float-rendered folio ID failed to join", len(got))
	}
	if got[0].CUV != "1001" {
		t.Errorf("CUV = %q, want canonical 1001", got[0].CUV)
	}
}
