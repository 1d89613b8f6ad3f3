package services

import (
	"context"
	"runtime"
	"time"
)

// HealthStatus is the aggregate health report returned by /api/health
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Uptime    string                   `json:"uptime"`
	Checks    map[string]ServiceHealth `json:"checks"`
}

// ServiceHealth is the health of a single dependency
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// VersionInfo describes the running build
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// ClientCounter reports connected websocket clients
type ClientCounter interface {
	ClientCount() int
}

// HealthService reports liveness, readiness, and build information
type HealthService struct {
	version   string
	buildTime string
	startTime time.Time

	analysis *AnalysisService
	hub      ClientCounter
}

// NewHealthService creates a health service with build information
func NewHealthService(version, buildTime string, analysis *AnalysisService, hub ClientCounter) *HealthService {
	if version == "" {
		version = "dev"
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		startTime: time.Now(),
		analysis:  analysis,
		hub:       hub,
	}
}

// Health returns the full health report
func (s *HealthService) Health(ctx context.Context) HealthStatus {
	checks := map[string]ServiceHealth{
		"datasets":  s.datasetHealth(),
		"websocket": s.websocketHealth(),
	}

	status := "healthy"
	for _, c := range checks {
		if c.Status != "healthy" {
			status = "degraded"
			break
		}
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Checks:    checks,
	}
}

// Ready reports whether the service can answer analysis requests. The
// datasets must have loaded at least once.
func (s *HealthService) Ready(ctx context.Context) bool {
	return s.analysis != nil && !s.analysis.LoadedAt().IsZero()
}

// Version returns build information
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{
		Version:   s.version,
		BuildTime: s.buildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (s *HealthService) datasetHealth() ServiceHealth {
	if s.analysis == nil || s.analysis.LoadedAt().IsZero() {
		return ServiceHealth{Status: "unhealthy", Message: "datasets not loaded"}
	}
	return ServiceHealth{Status: "healthy"}
}

func (s *HealthService) websocketHealth() ServiceHealth {
	if s.hub == nil {
		return ServiceHealth{Status: "unhealthy", Message: "hub not running"}
	}
	return ServiceHealth{Status: "healthy"}
}
