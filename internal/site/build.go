// Package site is the build-lifecycle adapter: it runs the generation
// pipeline as a pre-build step so the generated pages exist before the
// external static-site tool scans the source tree, then invokes that tool.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/nocshop/shopgen/internal/config"
	"github.com/nocshop/shopgen/internal/logfields"
	"github.com/nocshop/shopgen/internal/pipeline"
)

// Builder couples the pipeline runner with the external site tool.
type Builder struct {
	cfg    *config.Config
	runner *pipeline.Runner
}

// NewBuilder creates a Builder around an existing runner.
func NewBuilder(cfg *config.Config, runner *pipeline.Runner) *Builder {
	return &Builder{cfg: cfg, runner: runner}
}

// Build generates the pages and, when a site command is configured, execs
// it afterwards. The tool's failure is the build's failure.
func (b *Builder) Build(ctx context.Context) error {
	report, err := b.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("page generation failed: %w", err)
	}
	slog.Info("Pages generated for site build",
		logfields.RunID(report.RunID),
		logfields.Count(report.Pages))

	if b.cfg.Site.Command == "" {
		slog.Debug("No site command configured, skipping site build")
		return nil
	}
	return b.runSiteTool(ctx)
}

func (b *Builder) runSiteTool(ctx context.Context) error {
	if _, err := exec.LookPath(b.cfg.Site.Command); err != nil {
		return fmt.Errorf("site command %q not found in PATH: %w", b.cfg.Site.Command, err)
	}

	cmd := exec.CommandContext(ctx, b.cfg.Site.Command, b.cfg.Site.Args...)
	if b.cfg.Site.Dir != "" {
		cmd.Dir = b.cfg.Site.Dir
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Running site build tool",
		slog.String("command", b.cfg.Site.Command),
		logfields.Path(cmd.Dir))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("site command failed: %w", err)
	}
	return nil
}
