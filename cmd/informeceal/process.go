package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"

	"github.com/ISTdatateam/InformeCEAL/internal/catalog"
	"github.com/ISTdatateam/InformeCEAL/internal/config"
	"github.com/ISTdatateam/InformeCEAL/internal/report"
	"github.com/ISTdatateam/InformeCEAL/internal/scoring"
	"github.com/ISTdatateam/InformeCEAL/internal/store"
	"github.com/ISTdatateam/InformeCEAL/internal/survey"
	"github.com/ISTdatateam/InformeCEAL/internal/worker"
)

func newProcessCmd(logger *slog.Logger) *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "process",
		Short: "run the batch pipeline and write the report workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProcess(cmd.Context(), logger, noProgress)
		},
	}
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the source progress bar")
	return cmd
}

func runProcess(ctx context.Context, logger *slog.Logger, noProgress bool) error {
	started := time.Now()

	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded", "env", cfg.Env,
		"source_dir", cfg.SourceDir, "output_dir", cfg.OutputDir,
		"workers", cfg.WorkerCount)

	cat := catalog.MustNew()

	// ── Database (optional for file-only runs) ────────────────────────────────
	var st *store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer st.Close()
		if err := st.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		logger.Info("database connected")
	}

	// ── Ingest ────────────────────────────────────────────────────────────────
	sources, err := collectSources(cfg, st)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return errors.New("no survey sources found")
	}
	logger.Info("sources collected", "count", len(sources))

	loader := survey.NewLoader(cat, logger)
	var progress *mpb.Progress
	if !noProgress {
		progress = mpb.New()
		bar := progress.AddBar(int64(len(sources)),
			mpb.PrependDecorators(decor.Name("sources")),
			mpb.PrependDecorators(decor.CountersNoUnit("%d/%d", decor.WCSyncSpace)),
			mpb.AppendDecorators(decor.AverageETA(decor.ET_STYLE_GO)),
			mpb.BarRemoveOnComplete(),
		)
		loader.Progress = func() { bar.IncrBy(1) }
	}

	rows, err := loader.Load(ctx, sources)
	if progress != nil {
		progress.Wait()
	}
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if len(rows) == 0 {
		return errors.New("no respondent rows loaded")
	}
	logger.Info("rows loaded", "count", len(rows))

	// ── Score and aggregate ───────────────────────────────────────────────────
	scored := scoring.ScoreRows(cat, rows)

	runner := worker.NewRunner(cat, worker.RunnerConfig{
		Workers:    cfg.WorkerCount,
		JobTimeout: cfg.JobTimeout,
	}, logger)
	out, err := runner.Run(ctx, scored)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	logger.Info("aggregation complete", "instances", out.Instances)

	// ── Report ────────────────────────────────────────────────────────────────
	in := report.Inputs{
		Scored:            scored,
		Aggregates:        out.Aggregates,
		Factors:           out.Factors,
		Salient:           out.Salient,
		ExposureMeans:     out.ExposureMeans,
		ExposureBreakdown: out.ExposureBreakdown,
		Protective:        out.Protective,
	}
	if st != nil {
		folios, err := st.LoadFolios(ctx)
		if err != nil {
			return fmt.Errorf("folios: %w", err)
		}
		recs, err := st.LoadRecommendations(ctx)
		if err != nil {
			return fmt.Errorf("recommendations: %w", err)
		}
		in.Folios = report.FolioIndex(folios)
		in.Recommendations = report.NewRecommendations(recs)

		for _, rep := range report.Assemble(in, logger) {
			logger.Info("instance report assembled",
				"cuv", rep.CUV, "folio", rep.Folio.Folio, "ciiu", rep.CIIU,
				"period", rep.Folio.Period(),
				"tier", rep.Summary.Tier, "respondents", rep.Summary.Respondents,
				"subgroups", rep.SubgroupCount)
		}
	}

	wb := report.BuildWorkbook(cat, in)
	if err := wb.WriteCSV(cfg.OutputDir); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	logger.Info("workbook written", "dir", cfg.OutputDir, "sheets", len(wb.Sheets))

	// ── Persist the run ───────────────────────────────────────────────────────
	if st != nil {
		snapshot, err := wb.Snapshot()
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		run := store.Run{
			ID:            uuid.New(),
			StartedAt:     started,
			FinishedAt:    time.Now(),
			SourceCount:   len(sources),
			InstanceCount: out.Instances,
		}
		if err := st.SaveRun(ctx, run, snapshot); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info("run persisted", "run_id", run.ID)
	}

	logger.Info("pipeline complete", "elapsed", time.Since(started).Round(time.Millisecond))
	return nil
}

// collectSources lists the per-workplace files under SOURCE_DIR and, when
// the database is configured, appends the combined-table source.
func collectSources(cfg *config.Config, st *store.Store) ([]survey.Source, error) {
	var sources []survey.Source

	if cfg.SourceDir != "" {
		entries, err := os.ReadDir(cfg.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("source dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
				continue
			}
			sources = append(sources, survey.NewFileSource(filepath.Join(cfg.SourceDir, e.Name())))
		}
	}

	if st != nil {
		sources = append(sources, st.CombinedSource())
	}
	return sources, nil
}
