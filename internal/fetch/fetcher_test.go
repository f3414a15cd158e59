package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocshop/shopgen/internal/catalog"
)

// initFixtureRepo creates a local git repository with one commit containing
// the given files and returns its path.
func initFixtureRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	for rel, content := range files {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add(".")
	require.NoError(t, err)
	_, err = w.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

func TestStripFetchPrefix(t *testing.T) {
	assert.Equal(t, "https://example.com/r.git", StripFetchPrefix("git+https://example.com/r.git"))
	assert.Equal(t, "https://example.com/r.git", StripFetchPrefix("https://example.com/r.git"))
	assert.Equal(t, "/local/path", StripFetchPrefix("git+/local/path"))
}

func TestFetchAllMissingSource(t *testing.T) {
	f := New(t.TempDir(), 0)
	cat := catalog.Catalog{"nosrc": &catalog.Descriptor{Title: "No Source"}}

	results, err := f.FetchAll(context.Background(), cat)
	require.NoError(t, err)

	res := results["nosrc"]
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "no source URL found", res.Message)
	assert.Empty(t, res.Path)
}

func TestFetchAllInvalidDescriptor(t *testing.T) {
	f := New(t.TempDir(), 0)
	cat := catalog.Catalog{"broken": nil}

	results, err := f.FetchAll(context.Background(), cat)
	require.NoError(t, err)

	res := results["broken"]
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "invalid YAML config", res.Message)
}

func TestFetchOneStripsFetchMarker(t *testing.T) {
	src := initFixtureRepo(t, map[string]string{"README.md": "# Fixture\n"})
	ws := t.TempDir()
	f := New(ws, 0)

	cat := catalog.Catalog{"fixture": &catalog.Descriptor{Source: FetchPrefix + src}}
	results, err := f.FetchAll(context.Background(), cat)
	require.NoError(t, err)

	res := results["fixture"]
	require.Equal(t, StatusSuccess, res.Status, "message: %s", res.Message)
	assert.Equal(t, src, res.URL, "fetch marker must be stripped before invocation")
	assert.Equal(t, "default", res.Branch)
	assert.FileExists(t, filepath.Join(ws, "fixture", "README.md"))
}

func TestFetchReplacesExistingDirectory(t *testing.T) {
	src := initFixtureRepo(t, map[string]string{"README.md": "# Fixture\n"})
	ws := t.TempDir()
	f := New(ws, 0)

	// Simulate leftovers from a previous run.
	stale := filepath.Join(ws, "fixture")
	require.NoError(t, os.MkdirAll(stale, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "stale.txt"), []byte("old"), 0o644))

	cat := catalog.Catalog{"fixture": &catalog.Descriptor{Source: src}}
	results, err := f.FetchAll(context.Background(), cat)
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, results["fixture"].Status)

	assert.NoFileExists(t, filepath.Join(stale, "stale.txt"), "reclone must replace the target directory")
	assert.FileExists(t, filepath.Join(stale, "README.md"))
}

func TestFetchFailureDoesNotAbortOthers(t *testing.T) {
	src := initFixtureRepo(t, map[string]string{"README.md": "# Fixture\n"})
	ws := t.TempDir()
	f := New(ws, 0)

	cat := catalog.Catalog{
		"good": &catalog.Descriptor{Source: src},
		"bad":  &catalog.Descriptor{Source: filepath.Join(t.TempDir(), "does-not-exist")},
	}
	results, err := f.FetchAll(context.Background(), cat)
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, results["good"].Status)
	assert.Equal(t, StatusError, results["bad"].Status)
	assert.Contains(t, results["bad"].Message, "git clone failed")
}
