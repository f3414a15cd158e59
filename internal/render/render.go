// Package render fills Markdown page templates from scanned repository
// records: one detail page per repository plus an index summarizing all of
// them. Rendering is pure (text in, text out); filesystem writes live in
// writer.go. Render errors are authoring defects and propagate instead of
// being swallowed.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"text/template"

	"github.com/nocshop/shopgen/internal/catalog"
	"github.com/nocshop/shopgen/internal/scan"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// IndexFilename is the name of the generated index document.
const IndexFilename = "index.md"

// Page is one generated output document.
type Page struct {
	Filename string
	Content  string
}

var pageTemplates = template.Must(
	template.New("pages").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"),
)

// DetailPage renders the detail document for one repository view.
func DetailPage(view RepoView) (string, error) {
	return execute("detail.md.tmpl", view)
}

// IndexPage renders the index document summarizing all repository views.
// Views are listed in the given order.
func IndexPage(views []RepoView) (string, error) {
	return execute("index.md.tmpl", struct{ Repos []RepoView }{Repos: views})
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Pages renders every output document for the given records: one detail
// page per repository plus the index, repositories in name order.
func Pages(records map[string]*scan.Record, cat catalog.Catalog) ([]Page, error) {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	pages := make([]Page, 0, len(names)+1)
	views := make([]RepoView, 0, len(names))
	for _, name := range names {
		view := NewRepoView(records[name], cat[name])
		views = append(views, view)

		content, err := DetailPage(view)
		if err != nil {
			return nil, err
		}
		pages = append(pages, Page{Filename: name + ".md", Content: content})
	}

	index, err := IndexPage(views)
	if err != nil {
		return nil, err
	}
	pages = append(pages, Page{Filename: IndexFilename, Content: index})
	return pages, nil
}
