package report_test

import (
	"testing"

	"github.com/ISTdatateam/InformeCEAL/internal/aggregate"
	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/report"
)

func riskRecord(cuv, te3, dim string, points int, valid bool) aggregate.RiskRecord {
	return aggregate.RiskRecord{
		CUV:       cuv,
		Subgroup:  te3,
		Dimension: dim,
		Level:     catalog.LevelHigh,
		Points:    aggregate.Points{Int: points, Valid: valid},
	}
}

func TestGESListing_JoinsRiskCarryingSubgroups(t *testing.T) {
	records := []aggregate.RiskRecord{
		riskRecord("1001", "Ventas", "Carga de trabajo", 2, true),
		riskRecord("1001", "Bodega", "Carga de trabajo", 1, true),
		riskRecord("1001", "Ventas", "Vulnerabilidad", -2, true),  // protective, excluded
		riskRecord("1001", "Bodega", "Conflicto de rol", 0, false), // no majority, excluded
	}

	ges := report.GESListing(records)
	got := ges["1001"]["Carga de trabajo"]
	if want := "Bodega; Ventas"; got != want {
		t.Errorf("workload listing = %q, want %q", got, want)
	}
	if _, ok := ges["1001"]["Vulnerabilidad"]; ok {
		t.Error("protective dimension present in listing")
	}
	if _, ok := ges["1001"]["Conflicto de rol"]; ok {
		t.Error("no-majority dimension present in listing")
	}
}

func TestGESListing_SanitizesLabels(t *testing.T) {
	records := []aggregate.RiskRecord{
		riskRecord("1001", "Turno A|B: ¿noche?", "Carga de trabajo", 2, true),
	}
	ges := report.GESListing(records)
	if got, want := ges["1001"]["Carga de trabajo"], "Turno A_B_ ¿noche_"; got != want {
		t.Errorf("listing = %q, want %q", got, want)
	}
}

func TestSubgroupCounts(t *testing.T) {
	records := []aggregate.RiskRecord{
		riskRecord("1001", "Ventas", "Carga de trabajo", 0, false),
		riskRecord("1001", "Bodega", "Carga de trabajo", 0, false),
		riskRecord("1002", "Ventas", "Carga de trabajo", 0, false),
	}
	counts := report.SubgroupCounts(records)
	if counts["1001"] != 2 || counts["1002"] != 1 {
		t.Errorf("counts = %v, want 1001:2 1002:1", counts)
	}
}
