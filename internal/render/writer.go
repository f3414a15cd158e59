package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nocshop/shopgen/internal/logfields"
)

// WritePages writes rendered pages into outDir, creating it if needed.
// Write failures propagate: a half-written output directory should abort
// the run visibly rather than feed a broken site build.
func WritePages(outDir string, pages []Page) error {
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, page := range pages {
		path := filepath.Join(outDir, page.Filename)
		// #nosec G306 -- generated pages are public site content
		if err := os.WriteFile(path, []byte(page.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write page %s: %w", path, err)
		}
		slog.Debug("Wrote page", logfields.Path(path))
	}

	slog.Info("Wrote generated pages", logfields.Path(outDir), logfields.Count(len(pages)))
	return nil
}
