// Package scan walks cloned repositories and builds one merged metadata
// record per repository: catalog overrides seeded under the repository's own
// manifest, a readme excerpt, and the discovered blocks, modules, and
// transport adapters from the conventional metadata layout.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nocshop/shopgen/internal/catalog"
	"github.com/nocshop/shopgen/internal/logfields"
)

const (
	manifestFile = "manifest.yml"
	readmeFile   = "README.md"

	blocksDir   = "blocks"
	modulesDir  = "modules"
	adaptersDir = "transport_adapters"
)

// Scanner scans every directory under the workspace, each treated as one
// repository regardless of whether its clone succeeded.
type Scanner struct {
	workspace      string
	defaultMetaDir string
}

// New creates a Scanner. defaultMetaDir is the metadata subdirectory name
// used when a descriptor carries no rfnoc_path override.
func New(workspace, defaultMetaDir string) *Scanner {
	return &Scanner{workspace: workspace, defaultMetaDir: defaultMetaDir}
}

// Scan produces one record per directory found under the workspace. A
// repository whose scan fails yields a record with Err set; it never
// prevents other repositories from producing records. A missing workspace
// yields an empty result, not an error.
func (s *Scanner) Scan(cat catalog.Catalog) (map[string]*Record, error) {
	entries, err := os.ReadDir(s.workspace)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*Record{}, nil
		}
		return nil, fmt.Errorf("failed to read workspace directory %s: %w", s.workspace, err)
	}

	records := make(map[string]*Record)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		rec := s.scanRepo(name, cat[name])
		if rec.Err != nil {
			slog.Error("Repository scan failed", logfields.Repository(name), logfields.Error(rec.Err))
		} else {
			slog.Debug("Repository scanned",
				logfields.Repository(name),
				slog.Int("blocks", len(rec.Blocks)),
				slog.Int("modules", len(rec.Modules)),
				slog.Int("adapters", len(rec.TransportAdapters)))
		}
		records[name] = rec
	}

	slog.Info("Scanned repositories", logfields.Count(len(records)))
	return records, nil
}

func (s *Scanner) scanRepo(name string, desc *catalog.Descriptor) *Record {
	repoPath := filepath.Join(s.workspace, name)
	rec := &Record{
		Name:     name,
		Path:     repoPath,
		Metadata: make(map[string]any),
	}

	// Layer 1: catalog descriptor override fields.
	if desc != nil {
		for k, v := range desc.Overrides() {
			rec.Metadata[k] = v
		}
	}

	// Layer 2: repository manifest, winning on key collision.
	if err := s.overlayManifest(rec, repoPath); err != nil {
		rec.Err = err
		return rec
	}

	if err := s.captureReadme(rec, repoPath); err != nil {
		rec.Err = err
		return rec
	}

	metaDir := s.defaultMetaDir
	if desc != nil && desc.RFNoCPath != "" {
		metaDir = desc.RFNoCPath
	}
	metaPath := filepath.Join(repoPath, metaDir)
	if info, err := os.Stat(metaPath); err == nil && info.IsDir() {
		rec.HasRFNoC = true
		rec.Blocks = s.scanItems(filepath.Join(metaPath, blocksDir))
		rec.Modules = s.scanItems(filepath.Join(metaPath, modulesDir))
		rec.TransportAdapters = s.scanItems(filepath.Join(metaPath, adaptersDir))
	}

	return rec
}

// overlayManifest merges manifest.yml on top of the seeded metadata. The
// merge is shallow: a manifest key replaces the seeded value whole, nested
// structures included.
func (s *Scanner) overlayManifest(rec *Record, repoPath string) error {
	path := filepath.Join(repoPath, manifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest map[string]any
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	for k, v := range manifest {
		rec.Metadata[k] = v
	}
	return nil
}

func (s *Scanner) captureReadme(rec *Record, repoPath string) error {
	path := filepath.Join(repoPath, readmeFile)
	excerpt, err := readmeExcerpt(path, readmeMaxLines)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read readme: %w", err)
	}
	rec.Readme = excerpt
	rec.ReadmeTitle = firstHeading(excerpt)
	return nil
}

// scanItems loads every YAML document directly under dir into one Item
// each. A document that fails to parse is logged and skipped; its siblings
// are unaffected. A missing directory yields no items.
func (s *Scanner) scanItems(dir string) []Item {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var items []Item
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("Failed to read item document", logfields.Path(path), logfields.Error(err))
			continue
		}
		var cfg map[string]any
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			slog.Error("Failed to parse item document", logfields.Path(path), logfields.Error(err))
			continue
		}

		items = append(items, Item{
			Name:   strings.TrimSuffix(entry.Name(), ext),
			File:   path,
			Config: cfg,
		})
	}
	return items
}
