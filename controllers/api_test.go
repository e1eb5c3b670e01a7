package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"service-launcher/internal/config"
	"service-launcher/internal/middleware"
	"service-launcher/internal/models"
	"service-launcher/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, up map[int]bool) (*gin.Engine, *APIController) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Sample()
	cfg.Readiness.Attempts = 1
	cfg.Readiness.Interval = 10 * time.Millisecond
	cfg.Probe.Timeout = 100 * time.Millisecond
	cfg.Services[0].Path = t.TempDir()
	cfg.Services[1].Path = "/nonexistent/people-matcher"
	cfg.Services[2].Path = t.TempDir()
	cfg.Services[2].Command = []string{"/nonexistent/bin/restaurant-matcher"}

	prober := services.ProberFunc(func(port int) bool { return up[port] })
	api := NewAPIController(&cfg, services.NewLauncher(&cfg, io.Discard).WithProber(prober), "1.2.3")

	r := gin.New()
	r.Use(middleware.MetricsMiddleware())
	api.RegisterRoutes(r)
	return r, api
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "UP", resp.Status)
	assert.Equal(t, 3, resp.Metrics.Services)
}

func TestListServices(t *testing.T) {
	r, _ := newTestRouter(t, map[int]bool{8003: true})

	w := do(r, http.MethodGet, "/launcher/api/v1/services")
	require.Equal(t, http.StatusOK, w.Code)

	var statuses []models.ServiceStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))
	require.Len(t, statuses, 3)
	assert.False(t, statuses[0].Up)
	assert.True(t, statuses[2].Up)
	assert.Equal(t, "http://localhost:8003/docs", statuses[2].URL)
}

func TestGetService(t *testing.T) {
	r, _ := newTestRouter(t, map[int]bool{8002: true})

	w := do(r, http.MethodGet, "/launcher/api/v1/services/people-matcher")
	require.Equal(t, http.StatusOK, w.Code)
	var st models.ServiceStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.True(t, st.Up)

	w = do(r, http.MethodGet, "/launcher/api/v1/services/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLaunchService(t *testing.T) {
	r, _ := newTestRouter(t, map[int]bool{8001: true})

	w := do(r, http.MethodPost, "/launcher/api/v1/services/data-processor/launch")
	require.Equal(t, http.StatusOK, w.Code)
	var res models.LaunchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.OutcomeAlreadyRunning, res.Outcome)

	w = do(r, http.MethodPost, "/launcher/api/v1/services/people-matcher/launch")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.OutcomeMissingPath, res.Outcome)

	w = do(r, http.MethodPost, "/launcher/api/v1/services/unknown/launch")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLaunchAll(t *testing.T) {
	r, _ := newTestRouter(t, map[int]bool{8001: true})

	w := do(r, http.MethodPost, "/launcher/api/v1/launch")
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.LaunchSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Len(t, summary.Results, 3)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, models.OutcomeAlreadyRunning, summary.Results[0].Outcome)
	assert.Equal(t, models.OutcomeMissingPath, summary.Results[1].Outcome)
	assert.Equal(t, models.OutcomeSpawnFailure, summary.Results[2].Outcome)
}

func TestLaunchAll_Busy(t *testing.T) {
	r, api := newTestRouter(t, nil)

	api.launching.Lock()
	defer api.launching.Unlock()

	w := do(r, http.MethodPost, "/launcher/api/v1/launch")
	assert.Equal(t, http.StatusConflict, w.Code)
	w = do(r, http.MethodPost, "/launcher/api/v1/services/data-processor/launch")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	do(r, http.MethodGet, "/healthz")
	do(r, http.MethodGet, "/no-such-route")

	w := do(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `launcher_http_requests_total{path="/healthz"}`)
	assert.Contains(t, body, `launcher_http_request_errors_total{path="unknown"}`)
}
