package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const jobName = "tidenotify"

var (
	registry = prometheus.NewRegistry()

	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "run_duration_seconds",
			Subsystem: "tidenotify",
			Help:      "Time taken by one fetch-parse-notify run in seconds.",
			Buckets:   []float64{0.1, 0.5, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0, 64.0},
		},
		[]string{"result"},
	)

	runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "runs_total",
			Subsystem: "tidenotify",
			Help:      "Runs by result.",
		},
		[]string{"result"},
	)

	lastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:      "last_success_timestamp_seconds",
			Subsystem: "tidenotify",
			Help:      "Unix time of the last run that sent a notification.",
		},
	)
)

func init() {
	registry.MustRegister(
		runDuration,
		runs,
		lastSuccess,
	)
}

// ObserveRun records a finished run. result is "ok" or a failure class.
func ObserveRun(result string, start, end time.Time) {
	runDuration.With(prometheus.Labels{"result": result}).Observe(end.Sub(start).Seconds())
	runs.With(prometheus.Labels{"result": result}).Inc()
	if result == "ok" {
		lastSuccess.Set(float64(end.Unix()))
	}
}

// Push sends everything recorded so far to the Pushgateway at url, replacing
// the previous push for this job and station.
func Push(url, station string) error {
	return push.New(url, jobName).
		Gatherer(registry).
		Grouping("station", station).
		Push()
}
