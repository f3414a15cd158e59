// Package catalog loads the per-repository source descriptors that drive the
// generation pipeline. Each YAML file under the sources directory describes
// one external repository: where to fetch it from and optional metadata
// overrides layered under whatever the repository's own manifest declares.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nocshop/shopgen/internal/logfields"
)

// Descriptor is one catalog entry, parsed from <name>.yml.
type Descriptor struct {
	Source    string     `yaml:"source"`
	GitBranch string     `yaml:"gitbranch,omitempty"`
	Title     string     `yaml:"title,omitempty"`
	Brief     string     `yaml:"brief,omitempty"`
	Authors   StringList `yaml:"authors,omitempty"`
	License   string     `yaml:"license,omitempty"`
	RFNoCPath string     `yaml:"rfnoc_path,omitempty"`
}

// Overrides returns the descriptive fields as a shallow map, the seed layer
// for the scanner's metadata merge. Only fields actually set in the
// descriptor appear, so absent keys never mask manifest values.
func (d *Descriptor) Overrides() map[string]any {
	m := make(map[string]any)
	if d.Title != "" {
		m["title"] = d.Title
	}
	if d.Brief != "" {
		m["brief"] = d.Brief
	}
	if len(d.Authors) > 0 {
		m["authors"] = []string(d.Authors)
	}
	if d.License != "" {
		m["license"] = d.License
	}
	return m
}

// Catalog maps repository name (descriptor base filename) to its descriptor.
// A nil value marks an entry whose document failed to parse; the name is kept
// so downstream stages can report it instead of silently dropping it.
type Catalog map[string]*Descriptor

// Names returns the entry names in sorted order for deterministic iteration.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Read loads every *.yml / *.yaml document under dir. A parse failure is
// logged and the entry recorded as nil; other entries are unaffected.
func Read(dir string) (Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources directory %s: %w", dir, err)
	}

	cat := make(Catalog)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("Failed to read source file", logfields.Path(path), logfields.Error(err))
			cat[name] = nil
			continue
		}

		var desc Descriptor
		if err := yaml.Unmarshal(data, &desc); err != nil {
			slog.Error("Failed to parse source file", logfields.Path(path), logfields.Error(err))
			cat[name] = nil
			continue
		}
		cat[name] = &desc
	}

	slog.Info("Loaded source catalog", logfields.Path(dir), logfields.Count(len(cat)))
	return cat, nil
}
