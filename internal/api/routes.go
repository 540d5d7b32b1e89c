package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/copyforge/optimizer/internal/config"
	"github.com/copyforge/optimizer/internal/web"
)

// SetupServiceRoutes configures the service routes. Health routes are mounted
// separately by the server shell; /metrics stays public for the Prometheus
// scraper.
func SetupServiceRoutes(router *gin.Engine, handler *Handler, metricsHandler http.Handler, cfg *config.Config) {
	router.GET("/metrics", gin.WrapH(metricsHandler))

	// API v1 routes - protected with JWT
	v1 := web.ProtectedGroup(router, "/api/v1", cfg.Auth.JWTSecret)

	optimize := v1.Group("/optimize")
	optimize.POST("", handler.Optimize)            // POST /api/v1/optimize
	optimize.POST("/batch", handler.OptimizeBatch) // POST /api/v1/optimize/batch

	v1.POST("/analyze", handler.Analyze)   // POST /api/v1/analyze
	v1.POST("/generate", handler.Generate) // POST /api/v1/generate

	v1.GET("/history", handler.History) // GET /api/v1/history
	v1.GET("/stats", handler.Stats)     // GET /api/v1/stats
	v1.GET("/credits", handler.Credits) // GET /api/v1/credits
}
