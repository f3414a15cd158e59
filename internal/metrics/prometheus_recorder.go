package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	runDuration   prom.Histogram
	runOutcome    *prom.CounterVec
	stageDuration *prom.HistogramVec
	cloneResults  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on a
// fresh registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	pr := &PrometheusRecorder{registry: prom.NewRegistry()}

	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "shopgen",
		Name:      "run_duration_seconds",
		Help:      "Total pipeline run duration",
		Buckets:   prom.DefBuckets,
	})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "shopgen",
		Name:      "run_outcomes_total",
		Help:      "Pipeline run outcomes by final status",
	}, []string{"outcome"})
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "shopgen",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual pipeline stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.cloneResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "shopgen",
		Name:      "clone_results_total",
		Help:      "Repository clone results by success/failure",
	}, []string{"result"})

	pr.registry.MustRegister(pr.runDuration, pr.runOutcome, pr.stageDuration, pr.cloneResults)
	return pr
}

func (pr *PrometheusRecorder) ObserveRun(duration time.Duration, status string) {
	pr.runDuration.Observe(duration.Seconds())
	pr.runOutcome.WithLabelValues(status).Inc()
}

func (pr *PrometheusRecorder) ObserveStage(stage string, duration time.Duration) {
	pr.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func (pr *PrometheusRecorder) ObserveClone(result string) {
	pr.cloneResults.WithLabelValues(result).Inc()
}

// Handler returns an HTTP handler exposing the recorder's registry.
func (pr *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(pr.registry, promhttp.HandlerOpts{})
}
