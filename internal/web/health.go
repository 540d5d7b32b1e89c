package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus represents the status of a health check.
type HealthStatus string

const (
	// HealthStatusHealthy indicates the service is healthy.
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusUnhealthy indicates the service is unhealthy.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// CheckResult represents the result of an individual health check.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker performs a dependency health check.
type HealthChecker func() CheckResult

// HealthResponse is the health check response format.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// HealthOptions configures the health endpoints.
type HealthOptions struct {
	ServiceName    string
	ServiceVersion string
	StartTime      time.Time
	Checks         map[string]HealthChecker
}

// RegisterHealthRoutes mounts GET /health (liveness, always 200 while the
// process serves) and GET /health/ready (runs dependency checks, 503 when any
// fails).
func RegisterHealthRoutes(router *gin.Engine, opts HealthOptions) {
	live := func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:  HealthStatusHealthy,
			Service: opts.ServiceName,
			Version: opts.ServiceVersion,
			Uptime:  time.Since(opts.StartTime).Round(time.Second).String(),
		})
	}
	router.GET("/health", live)
	// Load balancers commonly probe with HEAD.
	router.HEAD("/health", live)

	router.GET("/health/ready", func(c *gin.Context) {
		status := HealthStatusHealthy
		results := make(map[string]CheckResult, len(opts.Checks))

		for name, check := range opts.Checks {
			result := check()
			results[name] = result
			if result.Status != HealthStatusHealthy {
				status = HealthStatusUnhealthy
			}
		}

		code := http.StatusOK
		if status != HealthStatusHealthy {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, HealthResponse{
			Status:  status,
			Service: opts.ServiceName,
			Version: opts.ServiceVersion,
			Uptime:  time.Since(opts.StartTime).Round(time.Second).String(),
			Checks:  results,
		})
	})
}
