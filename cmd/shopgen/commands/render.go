package commands

import (
	"log/slog"

	"github.com/nocshop/shopgen/internal/catalog"
	"github.com/nocshop/shopgen/internal/logfields"
	"github.com/nocshop/shopgen/internal/render"
	"github.com/nocshop/shopgen/internal/scan"
)

// RenderCmd renders pages from the current workspace contents without
// fetching, useful when iterating on templates against existing clones.
type RenderCmd struct{}

func (cmd *RenderCmd) Run(g *Global) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}

	cat, err := catalog.Read(cfg.SourcesDir)
	if err != nil {
		return err
	}

	records, err := scan.New(cfg.WorkspaceDir, cfg.MetadataDir).Scan(cat)
	if err != nil {
		return err
	}

	pages, err := render.Pages(records, cat)
	if err != nil {
		return err
	}
	if err := render.WritePages(cfg.OutputDir, pages); err != nil {
		return err
	}

	slog.Info("Render finished", logfields.Path(cfg.OutputDir), logfields.Count(len(pages)))
	return nil
}
