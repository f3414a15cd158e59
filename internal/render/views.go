package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nocshop/shopgen/internal/catalog"
	"github.com/nocshop/shopgen/internal/scan"
)

// ItemView is one discovered sub-item prepared for templating.
type ItemView struct {
	Name  string
	Brief string
}

// RepoView is one repository record flattened for templating. All field
// resolution (title fallbacks, authors joining, URL cleanup) happens here so
// the templates stay logic-free.
type RepoView struct {
	Name     string
	Title    string
	Brief    string
	URL      string // cleaned for display; empty when no source is known
	Authors  string
	License  string
	Readme   string
	HasRFNoC bool
	Error    string

	Blocks   []ItemView
	Modules  []ItemView
	Adapters []ItemView
}

// Breakdown returns the counted summary line for the index, e.g.
// "1 block, 1 module, 0 adapters".
func (v RepoView) Breakdown() string {
	return fmt.Sprintf("%s, %s, %s",
		plural(len(v.Blocks), "block"),
		plural(len(v.Modules), "module"),
		plural(len(v.Adapters), "adapter"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

var titleCaser = cases.Title(language.Und)

// NewRepoView flattens a record and its descriptor into a view. desc may be
// nil for repositories present on disk without a catalog entry.
func NewRepoView(rec *scan.Record, desc *catalog.Descriptor) RepoView {
	v := RepoView{
		Name:     rec.Name,
		Title:    rec.Title(),
		Brief:    rec.MetaString("brief"),
		Authors:  joinAuthors(rec.Metadata["authors"]),
		License:  rec.MetaString("license"),
		Readme:   rec.Readme,
		HasRFNoC: rec.HasRFNoC,
	}
	if v.Title == rec.Name {
		v.Title = titleCaser.String(strings.ReplaceAll(rec.Name, "-", " "))
	}
	if desc != nil && desc.Source != "" {
		v.URL = CleanURL(desc.Source)
	}
	if rec.Err != nil {
		v.Error = rec.Err.Error()
	}
	v.Blocks = itemViews(rec.Blocks)
	v.Modules = itemViews(rec.Modules)
	v.Adapters = itemViews(rec.TransportAdapters)
	return v
}

func itemViews(items []scan.Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		iv := ItemView{Name: item.Name}
		if n, ok := item.Config["name"].(string); ok && n != "" {
			iv.Name = n
		}
		if b, ok := item.Config["brief"].(string); ok && b != "" {
			iv.Brief = b
		}
		views = append(views, iv)
	}
	return views
}

// joinAuthors renders the merged authors value, which may be a plain string,
// a []string from a descriptor, or a []any from a parsed manifest.
func joinAuthors(v any) string {
	switch authors := v.(type) {
	case nil:
		return ""
	case string:
		return authors
	case []string:
		return strings.Join(authors, ", ")
	case []any:
		parts := make([]string, 0, len(authors))
		for _, a := range authors {
			parts = append(parts, fmt.Sprint(a))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
