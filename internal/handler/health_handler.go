package handler

import (
	"net/http"

	"telecom_assets/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthHandler exposes liveness endpoints
type HealthHandler struct {
	service service.HealthService
	log     *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(s service.HealthService, log *zap.Logger) *HealthHandler {
	return &HealthHandler{service: s, log: log}
}

// Health pings the database pool.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.service.Ping(c.Request.Context()); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
}

// Teste reports whether the app is up and holds data.
func (h *HealthHandler) Teste(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context())
	if err != nil {
		h.log.Error("health report failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "online", "app": AppName, "database": "error"})
		return
	}
	database := "No data"
	if report.HasLines {
		database = "OK"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "online",
		"app":      AppName,
		"database": database,
		"usuarios": report.UserCount,
	})
}

// RegisterHealthRoutes registers public liveness routes
func (h *HealthHandler) RegisterHealthRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/teste", h.Teste)
}
