package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocshop/shopgen/internal/catalog"
	"github.com/nocshop/shopgen/internal/config"
)

// makeRepo lays out a fake cloned repository under the workspace.
func makeRepo(t *testing.T, workspace, name string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(workspace, name, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	// Ensure the repo directory exists even with no files.
	require.NoError(t, os.MkdirAll(filepath.Join(workspace, name), 0o750))
}

func newScanner(workspace string) *Scanner {
	return New(workspace, config.DefaultMetadataDir)
}

func TestScanManifestOverridesDescriptor(t *testing.T) {
	ws := t.TempDir()
	makeRepo(t, ws, "fft", map[string]string{
		"manifest.yml": "title: Manifest Title\nlicense: MIT\n",
	})
	cat := catalog.Catalog{"fft": &catalog.Descriptor{
		Title: "Descriptor Title",
		Brief: "Descriptor brief",
	}}

	records, err := newScanner(ws).Scan(cat)
	require.NoError(t, err)
	rec := records["fft"]
	require.NotNil(t, rec)
	require.NoError(t, rec.Err)

	assert.Equal(t, "Manifest Title", rec.Metadata["title"], "manifest wins on collision")
	assert.Equal(t, "Descriptor brief", rec.Metadata["brief"], "descriptor-only fields survive")
	assert.Equal(t, "MIT", rec.Metadata["license"])
}

func TestScanShallowMergeReplacesWholeField(t *testing.T) {
	ws := t.TempDir()
	makeRepo(t, ws, "fft", map[string]string{
		"manifest.yml": "authors: [Only Author]\n",
	})
	cat := catalog.Catalog{"fft": &catalog.Descriptor{
		Authors: catalog.StringList{"Jane Doe", "John Doe"},
	}}

	records, err := newScanner(ws).Scan(cat)
	require.NoError(t, err)

	authors, ok := records["fft"].Metadata["authors"].([]any)
	require.True(t, ok, "manifest list replaces descriptor list whole")
	require.Len(t, authors, 1)
	assert.Equal(t, "Only Author", authors[0])
}

func TestScanReadmeExcerptCapped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("# Long Readme\n")
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}

	ws := t.TempDir()
	makeRepo(t, ws, "long", map[string]string{"README.md": sb.String()})

	records, err := newScanner(ws).Scan(catalog.Catalog{})
	require.NoError(t, err)
	rec := records["long"]

	lines := strings.Split(rec.Readme, "\n")
	assert.LessOrEqual(t, len(lines), 100)
	assert.Equal(t, "# Long Readme", lines[0])
	assert.Equal(t, "Long Readme", rec.ReadmeTitle)
}

func TestScanItemsAndMalformedSibling(t *testing.T) {
	ws := t.TempDir()
	makeRepo(t, ws, "oot", map[string]string{
		"rfnoc/blocks/gain.yml":   "name: gain\nbrief: Gain block\n",
		"rfnoc/blocks/broken.yml": "name: [unbalanced\n",
		"rfnoc/modules/dsp.yml":   "name: dsp\n",
	})

	records, err := newScanner(ws).Scan(catalog.Catalog{})
	require.NoError(t, err)
	rec := records["oot"]
	require.NoError(t, rec.Err)

	assert.True(t, rec.HasRFNoC)
	require.Len(t, rec.Blocks, 1, "malformed sibling is skipped, not fatal")
	assert.Equal(t, "gain", rec.Blocks[0].Name)
	assert.Equal(t, "Gain block", rec.Blocks[0].Config["brief"])
	require.Len(t, rec.Modules, 1)
	assert.Empty(t, rec.TransportAdapters)
}

func TestScanNoMetadataDir(t *testing.T) {
	ws := t.TempDir()
	makeRepo(t, ws, "plain", map[string]string{"README.md": "just a repo\n"})

	records, err := newScanner(ws).Scan(catalog.Catalog{})
	require.NoError(t, err)
	rec := records["plain"]

	assert.False(t, rec.HasRFNoC)
	assert.Empty(t, rec.Blocks)
	assert.Empty(t, rec.Modules)
	assert.Empty(t, rec.TransportAdapters)
	require.NoError(t, rec.Err)
}

func TestScanMetadataDirOverride(t *testing.T) {
	ws := t.TempDir()
	makeRepo(t, ws, "alt", map[string]string{
		"custom/blocks/fir.yml": "name: fir\n",
	})
	cat := catalog.Catalog{"alt": &catalog.Descriptor{RFNoCPath: "custom"}}

	records, err := newScanner(ws).Scan(cat)
	require.NoError(t, err)
	rec := records["alt"]

	assert.True(t, rec.HasRFNoC)
	require.Len(t, rec.Blocks, 1)
	assert.Equal(t, "fir", rec.Blocks[0].Name)
}

func TestScanBrokenManifestRecordsErrorWithoutAbortingOthers(t *testing.T) {
	ws := t.TempDir()
	makeRepo(t, ws, "bad", map[string]string{"manifest.yml": "title: [unbalanced\n"})
	makeRepo(t, ws, "good", map[string]string{"manifest.yml": "title: Fine\n"})

	records, err := newScanner(ws).Scan(catalog.Catalog{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Error(t, records["bad"].Err)
	require.NoError(t, records["good"].Err)
	assert.Equal(t, "Fine", records["good"].Metadata["title"])
}

func TestScanMissingWorkspace(t *testing.T) {
	records, err := newScanner(filepath.Join(t.TempDir(), "absent")).Scan(catalog.Catalog{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordTitleFallbacks(t *testing.T) {
	rec := &Record{Name: "repo", Metadata: map[string]any{"title": "Meta"}}
	assert.Equal(t, "Meta", rec.Title())

	rec = &Record{Name: "repo", Metadata: map[string]any{}, ReadmeTitle: "Heading"}
	assert.Equal(t, "Heading", rec.Title())

	rec = &Record{Name: "repo", Metadata: map[string]any{}}
	assert.Equal(t, "repo", rec.Title())
}
