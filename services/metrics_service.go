package services

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"service-launcher/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Registry holds every launcher metric. It is served on /metrics and pushed
// to the pushgateway.
var Registry = prometheus.NewRegistry()

var (
	launchResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launcher_launch_results_total",
			Help: "Launch attempts by service and outcome",
		},
		[]string{"service", "outcome"},
	)

	readinessAttempts = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "launcher_readiness_attempts",
			Help:    "Probes used before a spawned service became ready or gave up",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
		[]string{"service"},
	)

	launchRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launcher_runs_total",
			Help: "Launch runs by whether every service came up",
		},
		[]string{"complete"},
	)

	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launcher_http_requests_total",
			Help: "Total API requests",
		},
		[]string{"path"},
	)

	requestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launcher_http_request_errors_total",
			Help: "API requests answered with status >= 400",
		},
		[]string{"path"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "launcher_http_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)

// Prometheus counters cannot be read back cheaply, the health endpoint uses these.
var (
	totalRequests atomic.Int64
	totalErrors   atomic.Int64
	totalLaunches atomic.Int64
)

func init() {
	Registry.MustRegister(
		launchResults,
		readinessAttempts,
		launchRuns,
		requestCount,
		requestErrors,
		requestDuration,
	)
}

func RecordLaunchResult(r models.LaunchResult) {
	launchResults.WithLabelValues(r.Service, string(r.Outcome)).Inc()
	if r.Outcome == models.OutcomeStartedOK || r.Outcome == models.OutcomeSlowStart {
		readinessAttempts.WithLabelValues(r.Service).Observe(float64(r.Attempts))
	}
}

func RecordLaunchRun(s models.LaunchSummary) {
	totalLaunches.Add(1)
	launchRuns.WithLabelValues(strconv.FormatBool(s.AllStarted())).Inc()
}

func IncrementRequestCount(path string) {
	totalRequests.Add(1)
	requestCount.WithLabelValues(path).Inc()
}

func IncrementErrorCount(path string) {
	totalErrors.Add(1)
	requestErrors.WithLabelValues(path).Inc()
}

func RecordRequestDuration(path string, seconds float64) {
	requestDuration.WithLabelValues(path).Observe(seconds)
}

func GetTotalRequestCount() int64 { return totalRequests.Load() }
func GetTotalErrorCount() int64 { return totalErrors.Load() }
func GetLaunchCount() int64 { return totalLaunches.Load() }

/**
 * Push the registry to a pushgateway
 * @param {string} addr - Pushgateway URL
 * @param {string} job - Job label
 * @returns {error} Push error, nil when addr is empty
 */
func PushMetrics(addr, job string) error {
	if addr == "" {
		return nil
	}
	if err := push.New(addr, job).Gatherer(Registry).Push(); err != nil {
		return fmt.Errorf("push metrics to %s: %w", addr, err)
	}
	return nil
}
