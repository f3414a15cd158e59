package commands

import (
	"context"
	"log/slog"

	"github.com/nocshop/shopgen/internal/catalog"
	"github.com/nocshop/shopgen/internal/fetch"
	"github.com/nocshop/shopgen/internal/logfields"
)

// FetchCmd clones catalog repositories into the workspace without scanning
// or rendering, useful for inspecting what a run would work with.
type FetchCmd struct{}

func (cmd *FetchCmd) Run(g *Global) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}

	cat, err := catalog.Read(cfg.SourcesDir)
	if err != nil {
		return err
	}

	results, err := fetch.New(cfg.WorkspaceDir, cfg.CloneDepth).FetchAll(context.Background(), cat)
	if err != nil {
		return err
	}

	succeeded, failed := 0, 0
	for _, res := range results {
		if res.Status == fetch.StatusSuccess {
			succeeded++
		} else {
			failed++
		}
	}
	slog.Info("Fetch finished",
		logfields.Count(len(results)),
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed))
	return nil
}
