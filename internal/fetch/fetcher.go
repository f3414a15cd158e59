// Package fetch performs one shallow clone per catalog entry into the
// workspace directory, recording per-repository success or failure. One
// entry's failure never aborts processing of the others; the scanner works
// off whatever ended up on disk.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/nocshop/shopgen/internal/catalog"
	"github.com/nocshop/shopgen/internal/logfields"
)

// FetchPrefix marks a source location as git-fetchable. It is stripped
// before cloning and before display.
const FetchPrefix = "git+"

// Status is the outcome of one fetch attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result captures the outcome of fetching one catalog entry.
type Result struct {
	Name    string
	Status  Status
	Path    string // resolved local path, empty on error
	Branch  string // resolved branch, "default" when none was requested
	URL     string // clone URL after prefix stripping
	Message string // diagnostic text on error
}

// Fetcher clones catalog entries into a workspace directory.
type Fetcher struct {
	workspace string
	depth     int
}

// New creates a Fetcher. depth limits clone history; values <= 0 disable
// the limit.
func New(workspace string, depth int) *Fetcher {
	return &Fetcher{workspace: workspace, depth: depth}
}

// StripFetchPrefix removes a leading fetch-marker token from a source
// location, returning the bare clone URL.
func StripFetchPrefix(source string) string {
	return strings.TrimPrefix(source, FetchPrefix)
}

// FetchAll clones every entry in the catalog, returning one Result per
// entry keyed by repository name.
func (f *Fetcher) FetchAll(ctx context.Context, cat catalog.Catalog) (map[string]Result, error) {
	if err := os.MkdirAll(f.workspace, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	results := make(map[string]Result, len(cat))
	for _, name := range cat.Names() {
		res := f.fetchOne(ctx, name, cat[name])
		results[name] = res
		if res.Status == StatusError {
			slog.Warn("Repository fetch failed", logfields.Repository(name), slog.String("message", res.Message))
		} else {
			slog.Info("Repository cloned", logfields.Repository(name), logfields.URL(res.URL), logfields.Path(res.Path))
		}
	}
	return results, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, name string, desc *catalog.Descriptor) Result {
	res := Result{Name: name, Status: StatusError}
	if desc == nil {
		res.Message = "invalid YAML config"
		return res
	}
	if desc.Source == "" {
		res.Message = "no source URL found"
		return res
	}

	url := StripFetchPrefix(desc.Source)
	res.URL = url

	repoPath := filepath.Join(f.workspace, name)
	// Re-running the pipeline must yield a clean clone, never a merge of
	// old and new contents.
	if err := os.RemoveAll(repoPath); err != nil {
		res.Message = fmt.Sprintf("failed to remove existing directory: %v", err)
		return res
	}

	opts := &git.CloneOptions{URL: url}
	if f.depth > 0 {
		opts.Depth = f.depth
	}
	if desc.GitBranch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + desc.GitBranch)
		opts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, repoPath, false, opts); err != nil {
		res.Message = fmt.Sprintf("git clone failed: %v", err)
		return res
	}

	res.Status = StatusSuccess
	res.Path = repoPath
	res.Branch = desc.GitBranch
	if res.Branch == "" {
		res.Branch = "default"
	}
	return res
}
