package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"service-launcher/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLaunchResult(t *testing.T) {
	before := testutil.ToFloat64(launchResults.WithLabelValues("metrics-svc", string(models.OutcomeSlowStart)))
	RecordLaunchResult(models.LaunchResult{Service: "metrics-svc", Outcome: models.OutcomeSlowStart, Attempts: 10})
	assert.Equal(t, before+1, testutil.ToFloat64(launchResults.WithLabelValues("metrics-svc", string(models.OutcomeSlowStart))))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(readinessAttempts, "launcher_readiness_attempts"), 1)
}

func TestRequestCounters(t *testing.T) {
	reqs, errs := GetTotalRequestCount(), GetTotalErrorCount()
	IncrementRequestCount("/healthz")
	IncrementErrorCount("/healthz")
	RecordRequestDuration("/healthz", 0.01)
	assert.Equal(t, reqs+1, GetTotalRequestCount())
	assert.Equal(t, errs+1, GetTotalErrorCount())
}

func TestPushMetrics(t *testing.T) {
	require.NoError(t, PushMetrics("", "job"))

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, PushMetrics(srv.URL, "service-launcher"))
	assert.Equal(t, "/metrics/job/service-launcher", gotPath)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	assert.Error(t, PushMetrics(failing.URL, "service-launcher"))
}
