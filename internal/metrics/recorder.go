// Package metrics defines the recorder interface the pipeline reports to,
// with a no-op default and a Prometheus-backed implementation for daemon
// mode.
package metrics

import "time"

// Recorder receives pipeline observations. Implementations must be safe for
// use from the single pipeline worker plus the HTTP scrape path.
type Recorder interface {
	// ObserveRun records a completed pipeline run.
	ObserveRun(duration time.Duration, status string)
	// ObserveStage records one stage's duration within a run.
	ObserveStage(stage string, duration time.Duration)
	// ObserveClone records one repository fetch outcome ("success"/"error").
	ObserveClone(result string)
}

// Noop is a Recorder that discards all observations.
type Noop struct{}

func (Noop) ObserveRun(time.Duration, string)   {}
func (Noop) ObserveStage(string, time.Duration) {}
func (Noop) ObserveClone(string)                {}
