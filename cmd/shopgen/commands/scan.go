package commands

import (
	"log/slog"
	"sort"

	"github.com/nocshop/shopgen/internal/catalog"
	"github.com/nocshop/shopgen/internal/logfields"
	"github.com/nocshop/shopgen/internal/scan"
)

// ScanCmd scans whatever is currently in the workspace and reports the
// discovered items without rendering anything.
type ScanCmd struct{}

func (cmd *ScanCmd) Run(g *Global) error {
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

	for _, name := range sortedNames(records) {
		rec := records[name]
		if rec.Err != nil {
			slog.Warn("Repository scan error", logfields.Repository(name), logfields.Error(rec.Err))
			continue
		}
		slog.Info("Repository",
			logfields.Repository(name),
			slog.String("title", rec.Title()),
			slog.Bool("has_rfnoc", rec.HasRFNoC),
			slog.Int("blocks", len(rec.Blocks)),
			slog.Int("modules", len(rec.Modules)),
			slog.Int("adapters", len(rec.TransportAdapters)))
	}
	return nil
}

func sortedNames(records map[string]*scan.Record) []string {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
