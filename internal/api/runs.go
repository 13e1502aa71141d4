package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ISTdatateam/InformeCEAL/internal/ident"
	"github.com/ISTdatateam/InformeCEAL/internal/report"
	"github.com/ISTdatateam/InformeCEAL/internal/store"
)

// ─── RUN CACHE ────────────────────────────────────────────────────────────────

// runCache memoizes the decoded workbook of the latest run. Batch runs
// are minutes apart, so decoding once per run ID is enough.
type runCache struct {
	mu    sync.Mutex
	runID uuid.UUID
	wb    *report.Workbook
}

// latestWorkbook fetches the latest run and its decoded workbook,
// reusing the cached decode when the run has not changed.
func (s *Server) latestWorkbook(r *http.Request) (store.Run, *report.Workbook, error) {
	run, err := s.runs.LatestRun(r.Context())
	if err != nil {
		return store.Run{}, nil, err
	}
	if !run.Workbook.Valid {
		return run, nil, nil
	}

	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	if s.cache.runID == run.ID && s.cache.wb != nil {
		return run, s.cache.wb, nil
	}

	var wb report.Workbook
	if err := json.Unmarshal(run.Workbook.RawMessage, &wb); err != nil {
		return store.Run{}, nil, fmt.Errorf("api: decode workbook of run %s: %w", run.ID, err)
	}
	s.cache.runID = run.ID
	s.cache.wb = &wb
	return run, &wb, nil
}

// ─── HANDLERS ─────────────────────────────────────────────────────────────────

type runResponse struct {
	ID            uuid.UUID `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	SourceCount   int       `json:"source_count"`
	InstanceCount int       `json:"instance_count"`
	HasWorkbook   bool      `json:"has_workbook"`
}

// handleLatestRun returns the metadata of the most recent batch run.
func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.LatestRun(r.Context())
	if errors.Is(err, store.ErrNoRuns) {
		respondErr(w, http.StatusNotFound, "no pipeline runs recorded yet")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, runResponse{
		ID:            run.ID,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		SourceCount:   run.SourceCount,
		InstanceCount: run.InstanceCount,
		HasWorkbook:   run.Workbook.Valid,
	})
}

// handleSheet returns one workbook sheet of the latest run.
func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	_, wb, err := s.latestWorkbook(r)
	if errors.Is(err, store.ErrNoRuns) {
		respondErr(w, http.StatusNotFound, "no pipeline runs recorded yet")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, err)
		return
	}
	if wb == nil {
		respondErr(w, http.StatusNotFound, "latest run has no workbook snapshot")
		return
	}

	name := chi.URLParam(r, "sheet")
	sheet, ok := wb.Sheet(name)
	if !ok {
		respondErr(w, http.StatusNotFound, "unknown sheet: "+name)
		return
	}
	respond(w, http.StatusOK, sheet)
}

// handleInstanceSummary returns the Summary rows of one instance.
func (s *Server) handleInstanceSummary(w http.ResponseWriter, r *http.Request) {
	s.instanceSheet(w, r, report.SheetSummary)
}

// handleInstanceResults returns the per-dimension aggregate rows of one
// instance.
func (s *Server) handleInstanceResults(w http.ResponseWriter, r *http.Request) {
	s.instanceSheet(w, r, report.SheetResults)
}

// instanceSheet filters one sheet of the latest workbook down to the
// rows of the requested instance. The CUV column is always the first.
func (s *Server) instanceSheet(w http.ResponseWriter, r *http.Request, sheetName string) {
	_, wb, err := s.latestWorkbook(r)
	if errors.Is(err, store.ErrNoRuns) {
		respondErr(w, http.StatusNotFound, "no pipeline runs recorded yet")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, err)
		return
	}
	if wb == nil {
		respondErr(w, http.StatusNotFound, "latest run has no workbook snapshot")
		return
	}

	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		respondErr(w, http.StatusNotFound, "sheet missing from snapshot: "+sheetName)
		return
	}

	cuv := ident.Canonical(chi.URLParam(r, "cuv"))
	filtered := report.Sheet{Name: sheet.Name, Header: sheet.Header}
	for _, row := range sheet.Rows {
		if len(row) > 0 && ident.Canonical(row[0]) == cuv {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	if len(filtered.Rows) == 0 {
		respondErr(w, http.StatusNotFound, "no data for instance "+cuv)
		return
	}
	respond(w, http.StatusOK, filtered)
}
