package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindpulse/internal/analysis"
	"mindpulse/internal/config"
	"mindpulse/internal/dataset"
	"mindpulse/internal/infrastructure"
	"mindpulse/internal/services"
	ws "mindpulse/internal/websocket"
)

var (
	metricsOnce sync.Once
	testMetrics *infrastructure.Metrics
	metricsErr  error
)

// sharedMetrics initializes metrics once for the package; the Prometheus
// exporter registers with the process-wide default registry.
func sharedMetrics(t *testing.T) *infrastructure.Metrics {
	t.Helper()
	metricsOnce.Do(func() {
		testMetrics, metricsErr = infrastructure.InitializeMetrics("test", infrastructure.GetLogger())
	})
	require.NoError(t, metricsErr)
	return testMetrics
}

// newTestApplication builds an application around a temporary data directory,
// bypassing config.Load so the test does not depend on the environment.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	dataDir := t.TempDir()
	csv := "Country,Age,treatment,remote_work,work_interfere\nUSA,30,Yes,Yes,Often\nUK,40,No,No,Never\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "mh.csv"), []byte(csv), 0644))

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080},
		Data: config.DataConfig{
			Dir:              dataDir,
			MentalHealthFile: "mh.csv",
			DeveloperFile:    "dev.csv",
		},
		Security: config.SecurityConfig{
			AllowedOrigins: []string{"*"},
			EnableCORS:     true,
		},
	}

	logger := infrastructure.GetLogger()
	metrics := sharedMetrics(t)

	hub := ws.NewHub(logger)
	hub.Start()
	t.Cleanup(hub.Stop)

	app := &Application{
		Config:       cfg,
		Logger:       logger,
		Metrics:      metrics,
		WebSocketHub: hub,
	}
	app.AnalysisService = services.NewAnalysisService(
		dataset.NewLoader(dataDir, nil, logger),
		analysis.New(logger),
		cfg.Data,
		hub,
		metrics,
		logger,
	)
	app.HealthService = services.NewHealthService("test", "", app.AnalysisService, hub)
	app.setupRouter()
	return app
}

func TestApplicationRoutes(t *testing.T) {
	app := newTestApplication(t)
	require.NoError(t, app.AnalysisService.Reload(context.Background()))

	server := httptest.NewServer(app.Router)
	defer server.Close()

	get := func(path string) *http.Response {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	t.Run("health", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/api/health").StatusCode)
		assert.Equal(t, http.StatusOK, get("/api/health/ready").StatusCode)
		assert.Equal(t, http.StatusOK, get("/api/health/live").StatusCode)
		assert.Equal(t, http.StatusOK, get("/api/version").StatusCode)
	})

	t.Run("analysis", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/api/analysis/country-index").StatusCode)
		assert.Equal(t, http.StatusOK, get("/api/analysis/remote-work").StatusCode)
		assert.Equal(t, http.StatusOK, get("/api/analysis/fields").StatusCode)
		assert.Equal(t, http.StatusOK, get("/api/insights").StatusCode)
	})

	t.Run("data", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/api/data/filters").StatusCode)
	})

	t.Run("export", func(t *testing.T) {
		resp := get("/api/export/country-index?format=csv")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	})

	t.Run("metrics", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/metrics").StatusCode)
	})

	t.Run("unknown route", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/api/nope").StatusCode)
	})
}

func TestApplicationReadinessBeforeLoad(t *testing.T) {
	app := newTestApplication(t)

	server := httptest.NewServer(app.Router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
