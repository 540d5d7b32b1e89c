package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/copyforge/optimizer/internal/config"
	"github.com/copyforge/optimizer/internal/logger"
	"github.com/copyforge/optimizer/internal/web"
)

const readyCheckTimeout = 2 * time.Second

// NewServer builds the HTTP server: standard middleware, health routes with a
// database readiness check, metrics, and the v1 API.
func NewServer(handler *Handler, db *sqlx.DB, cfg *config.Config, log logger.Logger) *web.Server {
	webCfg := &web.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
		CORS:           web.CORSConfig{Enabled: true},
	}

	start := time.Now()

	return web.NewServer(webCfg, log, func(router *gin.Engine) {
		web.RegisterHealthRoutes(router, web.HealthOptions{
			ServiceName:    cfg.Service.Name,
			ServiceVersion: cfg.Service.Version,
			StartTime:      start,
			Checks: map[string]web.HealthChecker{
				"database": databaseCheck(db),
			},
		})

		SetupServiceRoutes(router, handler, handler.telemetry.Handler(), cfg)
	})
}

// databaseCheck pings the database with a short timeout.
func databaseCheck(db *sqlx.DB) web.HealthChecker {
	return func() web.CheckResult {
		if db == nil {
			return web.CheckResult{
				Status:  web.HealthStatusUnhealthy,
				Message: "database not configured",
			}
		}

		start := time.Now()

		ctx, cancel := context.WithTimeout(context.Background(), readyCheckTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return web.CheckResult{
				Status:  web.HealthStatusUnhealthy,
				Message: err.Error(),
			}
		}

		return web.CheckResult{
			Status:  web.HealthStatusHealthy,
			Latency: time.Since(start).String(),
		}
	}
}
