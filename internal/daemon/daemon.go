// Package daemon runs the generation pipeline continuously: a filesystem
// watcher re-runs it when source descriptors change, a scheduler re-runs it
// periodically to pick up remote repository changes, and an HTTP listener
// exposes metrics and health. Runs never overlap; there is one logical
// worker.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/nocshop/shopgen/internal/config"
	"github.com/nocshop/shopgen/internal/history"
	"github.com/nocshop/shopgen/internal/logfields"
	"github.com/nocshop/shopgen/internal/metrics"
	"github.com/nocshop/shopgen/internal/pipeline"
)

const watchDebounce = 2 * time.Second

// Daemon owns the long-running regeneration loop.
type Daemon struct {
	cfg       *config.Config
	runner    *pipeline.Runner
	recorder  *metrics.PrometheusRecorder
	store     *history.Store
	scheduler gocron.Scheduler
	watcher   *Watcher
	server    *http.Server

	runMu sync.Mutex
}

// New assembles a daemon from configuration.
func New(cfg *config.Config) (*Daemon, error) {
	recorder := metrics.NewPrometheusRecorder()
	runner := pipeline.NewRunner(cfg).WithRecorder(recorder)

	var store *history.Store
	if cfg.HistoryDB != "" {
		var err error
		store, err = history.Open(cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
		runner = runner.WithHistory(pipeline.HistoryRecorder(store))
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Daemon{
		cfg:       cfg,
		runner:    runner,
		recorder:  recorder,
		store:     store,
		scheduler: scheduler,
	}, nil
}

// Start runs the daemon until the context is cancelled. An initial
// generation run happens immediately so the site is never stale at startup.
func (d *Daemon) Start(ctx context.Context) error {
	watcher, err := NewWatcher(d.cfg.SourcesDir, watchDebounce, func() { d.runOnce(ctx) })
	if err != nil {
		return err
	}
	d.watcher = watcher
	d.watcher.Start(ctx)

	interval := d.cfg.Daemon.SyncInterval()
	if _, err := d.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { d.runOnce(ctx) }),
		gocron.WithName("periodic-regenerate"),
	); err != nil {
		return fmt.Errorf("failed to schedule periodic regeneration: %w", err)
	}
	d.scheduler.Start()
	slog.Info("Scheduled periodic regeneration", slog.Duration("interval", interval))

	d.startHTTP()

	d.runOnce(ctx)

	<-ctx.Done()
	return nil
}

func (d *Daemon) startHTTP() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.recorder.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	d.server = &http.Server{
		Addr:              d.cfg.Daemon.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Daemon HTTP listener started", slog.String("addr", d.cfg.Daemon.Listen))
		if err := d.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Daemon HTTP listener failed", logfields.Error(err))
		}
	}()
}

// runOnce executes a single pipeline run. The mutex guarantees runs never
// overlap when the watcher and the scheduler fire together.
func (d *Daemon) runOnce(ctx context.Context) {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	report, err := d.runner.Run(ctx)
	if err != nil {
		// The daemon keeps running: a failed run is logged and the next
		// trigger tries again.
		slog.Error("Generation run failed", logfields.RunID(report.RunID), logfields.Error(err))
	}
}

// Stop shuts the daemon down gracefully.
func (d *Daemon) Stop(ctx context.Context) error {
	var errs []error
	if d.watcher != nil {
		errs = append(errs, d.watcher.Close())
	}
	errs = append(errs, d.scheduler.Shutdown())
	if d.server != nil {
		errs = append(errs, d.server.Shutdown(ctx))
	}
	if d.store != nil {
		errs = append(errs, d.store.Close())
	}
	return errors.Join(errs...)
}
