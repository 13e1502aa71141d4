package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/ISTdatateam/InformeCEAL/internal/api"
	"github.com/ISTdatateam/InformeCEAL/internal/report"
	"github.com/ISTdatateam/InformeCEAL/internal/store"
)

// stubRuns satisfies api.RunSource without a database.
type stubRuns struct {
	run store.Run
	err error
}

func (s stubRuns) LatestRun(context.Context) (store.Run, error) {
	return s.run, s.err
}

func testRun(t *testing.T) store.Run {
	t.Helper()

	wb := report.Workbook{Sheets: []report.Sheet{
		{
			Name:   report.SheetSummary,
			Header: []string{"CUV", "TE3", "Puntaje_total", "Riesgo", "Respuestas"},
			Rows: [][]string{
				{"1001", "", "4", "Riesgo medio", "10"},
				{"2002", "", "-6", "Riesgo bajo", "8"},
			},
		},
		{
			Name:   report.SheetResults,
			Header: []string{"CUV", "Dimensión", "Nivel", "Nivel_n", "Respuestas", "Total", "Porcentaje", "Puntaje", "Descripción"},
			Rows: [][]string{
				{"1001", "Carga de trabajo", "Alto", "3", "6", "10", "60.0", "2", "Carga de trabajo (60.0% Riesgo Alto, 6 personas)"},
				{"2002", "Carga de trabajo", "Bajo", "3", "6", "8", "75.0", "-2", "Carga de trabajo (75.0% Riesgo Bajo, 6 personas)"},
			},
		},
	}}
	raw, err := json.Marshal(wb)
	if err != nil {
		t.Fatalf("marshal workbook: %v", err)
	}

	return store.Run{
		ID:            uuid.New(),
		StartedAt:     time.Now().Add(-time.Minute),
		FinishedAt:    time.Now(),
		SourceCount:   3,
		InstanceCount: 2,
		Workbook:      pqtype.NullRawMessage{RawMessage: raw, Valid: true},
	}
}

func newTestServer(t *testing.T, runs api.RunSource) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewServer(runs, api.Config{Env: "development"}, logger)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleLatestRun(t *testing.T) {
	run := testRun(t)
	h := newTestServer(t, stubRuns{run: run})

	rec := get(t, h, "/api/runs/latest")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var got struct {
		ID            uuid.UUID `json:"id"`
		SourceCount   int       `json:"source_count"`
		InstanceCount int       `json:"instance_count"`
		HasWorkbook   bool      `json:"has_workbook"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("id = %s, want %s", got.ID, run.ID)
	}
	if got.SourceCount != 3 || got.InstanceCount != 2 {
		t.Errorf("counts = %d/%d, want 3/2", got.SourceCount, got.InstanceCount)
	}
	if !got.HasWorkbook {
		t.Error("has_workbook = false, want true")
	}
}

func TestHandleLatestRun_NoRuns(t *testing.T) {
	h := newTestServer(t, stubRuns{err: store.ErrNoRuns})

	rec := get(t, h, "/api/runs/latest")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleSheet(t *testing.T) {
	h := newTestServer(t, stubRuns{run: testRun(t)})

	t.Run("known sheet", func(t *testing.T) {
		rec := get(t, h, "/api/runs/latest/sheets/resultado")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
		}
		var sheet report.Sheet
		if err := json.Unmarshal(rec.Body.Bytes(), &sheet); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if sheet.Name != report.SheetResults {
			t.Errorf("name = %q, want %q", sheet.Name, report.SheetResults)
		}
		if len(sheet.Rows) != 2 {
			t.Errorf("rows = %d, want 2", len(sheet.Rows))
		}
	})

	t.Run("unknown sheet", func(t *testing.T) {
		rec := get(t, h, "/api/runs/latest/sheets/nope")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestHandleSheet_NoSnapshot(t *testing.T) {
	run := testRun(t)
	run.Workbook = pqtype.NullRawMessage{}
	h := newTestServer(t, stubRuns{run: run})

	rec := get(t, h, "/api/runs/latest/sheets/resultado")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleInstanceSheets(t *testing.T) {
	h := newTestServer(t, stubRuns{run: testRun(t)})

	t.Run("summary filters by instance", func(t *testing.T) {
		rec := get(t, h, "/api/instances/1001/summary")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
		}
		var sheet report.Sheet
		if err := json.Unmarshal(rec.Body.Bytes(), &sheet); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(sheet.Rows) != 1 || sheet.Rows[0][0] != "1001" {
			t.Errorf("rows = %v, want single 1001 row", sheet.Rows)
		}
	})

	t.Run("float rendered identifier matches", func(t *testing.T) {
		rec := get(t, h, "/api/instances/1001.0/results")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
		}
	})

	t.Run("unknown instance", func(t *testing.T) {
		rec := get(t, h, "/api/instances/9999/results")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
