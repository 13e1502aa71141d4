// Command informeceal runs the CEAL-SM/SUSESO survey pipeline. The
// process subcommand ingests the raw survey sources, scores and
// aggregates them, and writes the report workbook; the serve subcommand
// exposes the persisted results over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:           "informeceal",
		Short:         "occupational psychosocial risk survey pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newProcessCmd(logger))
	root.AddCommand(newServeCmd(logger))

	// Root context cancelled by OS signal. Both subcommands respect it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}
