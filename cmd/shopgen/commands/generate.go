package commands

import (
	"context"
	"log/slog"

	"github.com/nocshop/shopgen/internal/history"
	"github.com/nocshop/shopgen/internal/logfields"
	"github.com/nocshop/shopgen/internal/pipeline"
)

// GenerateCmd runs the full pipeline once: catalog, fetch, scan, render.
type GenerateCmd struct{}

func (cmd *GenerateCmd) Run(g *Global) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cfg)
	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		runner = runner.WithHistory(pipeline.HistoryRecorder(store))
	}

	report, err := runner.Run(context.Background())
	if err != nil {
		return err
	}
	slog.Info("Generation finished",
		logfields.RunID(report.RunID),
		slog.Int("repositories", report.Repos),
		slog.Int("cloned", report.Cloned),
		slog.Int("clone_failures", report.CloneFailures),
		slog.Int("pages", report.Pages),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return nil
}
