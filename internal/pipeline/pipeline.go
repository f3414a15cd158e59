// Package pipeline orchestrates one generation run: read the source
// catalog, clone the repositories, scan the clones, render the pages, and
// write them to the output directory. Fetch and scan failures are per-entry
// and partial results still render; render and write failures abort the run.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nocshop/shopgen/internal/catalog"
	"github.com/nocshop/shopgen/internal/config"
	"github.com/nocshop/shopgen/internal/fetch"
	"github.com/nocshop/shopgen/internal/logfields"
	"github.com/nocshop/shopgen/internal/metrics"
	"github.com/nocshop/shopgen/internal/render"
	"github.com/nocshop/shopgen/internal/scan"
)

// Report summarizes one completed (or failed) run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Status    string // "success" or "failed"

	Repos         int // catalog entries
	Cloned        int
	CloneFailures int
	Records       int // scanned repository records
	ScanFailures  int
	Pages         int // written output documents
}

// Runner executes the full pipeline. A single Runner is reused across runs
// in daemon mode; Run itself is synchronous and single-threaded.
type Runner struct {
	cfg      *config.Config
	recorder metrics.Recorder
	history  RunRecorder
}

// RunRecorder persists run reports; optional.
type RunRecorder interface {
	Record(ctx context.Context, report *Report) error
}

// NewRunner creates a Runner with a no-op metrics recorder.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg, recorder: metrics.Noop{}}
}

// WithRecorder attaches a metrics recorder (fluent helper).
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	r.recorder = rec
	return r
}

// WithHistory attaches a run-history recorder (fluent helper).
func (r *Runner) WithHistory(h RunRecorder) *Runner {
	r.history = h
	return r
}

// Run executes Catalog → Fetch → Scan → Render → Write once.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Status:    "failed",
	}
	slog.Info("Starting generation run",
		logfields.RunID(report.RunID),
		logfields.Path(r.cfg.SourcesDir))

	defer func() {
		report.Duration = time.Since(report.StartedAt)
		r.recorder.ObserveRun(report.Duration, report.Status)
		if r.history != nil {
			if err := r.history.Record(ctx, report); err != nil {
				slog.Warn("Failed to record run history", logfields.RunID(report.RunID), logfields.Error(err))
			}
		}
	}()

	cat, err := r.timedCatalog()
	if err != nil {
		return report, err
	}
	report.Repos = len(cat)

	results, err := r.timedFetch(ctx, cat)
	if err != nil {
		return report, err
	}
	for _, res := range results {
		r.recorder.ObserveClone(string(res.Status))
		if res.Status == fetch.StatusSuccess {
			report.Cloned++
		} else {
			report.CloneFailures++
		}
	}

	records, err := r.timedScan(cat)
	if err != nil {
		return report, err
	}
	report.Records = len(records)
	for _, rec := range records {
		if rec.Err != nil {
			report.ScanFailures++
		}
	}

	pages, err := r.timedRender(records, cat)
	if err != nil {
		return report, err
	}
	report.Pages = len(pages)

	report.Status = "success"
	slog.Info("Generation run completed",
		logfields.RunID(report.RunID),
		logfields.Count(report.Pages),
		slog.Int("clone_failures", report.CloneFailures),
		slog.Int("scan_failures", report.ScanFailures))
	return report, nil
}

func (r *Runner) timedCatalog() (catalog.Catalog, error) {
	defer r.stageTimer("catalog")()
	return catalog.Read(r.cfg.SourcesDir)
}

func (r *Runner) timedFetch(ctx context.Context, cat catalog.Catalog) (map[string]fetch.Result, error) {
	defer r.stageTimer("fetch")()
	return fetch.New(r.cfg.WorkspaceDir, r.cfg.CloneDepth).FetchAll(ctx, cat)
}

func (r *Runner) timedScan(cat catalog.Catalog) (map[string]*scan.Record, error) {
	defer r.stageTimer("scan")()
	return scan.New(r.cfg.WorkspaceDir, r.cfg.MetadataDir).Scan(cat)
}

func (r *Runner) timedRender(records map[string]*scan.Record, cat catalog.Catalog) ([]render.Page, error) {
	defer r.stageTimer("render")()
	pages, err := render.Pages(records, cat)
	if err != nil {
		return nil, err
	}
	if err := render.WritePages(r.cfg.OutputDir, pages); err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *Runner) stageTimer(stage string) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		r.recorder.ObserveStage(stage, elapsed)
		slog.Debug("Stage completed", logfields.Stage(stage), logfields.DurationMS(float64(elapsed.Milliseconds())))
	}
}
