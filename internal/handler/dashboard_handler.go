package handler

import (
	"net/http"
	"time"

	"telecom_assets/internal/flash"
	"telecom_assets/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler serves the dashboard page and its JSON summary
type DashboardHandler struct {
	service service.DashboardService
	log     *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(s service.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, log: log}
}

func (h *DashboardHandler) Page(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("failed to load dashboard", zap.Error(err))
		redirectWithFlash(c, flash.Error, "Erro ao carregar dashboard", "/login")
		return
	}
	render(c, http.StatusOK, "dashboard.html", gin.H{
		"title":         "Dashboard",
		"resumo":        stats,
		"departamentos": stats.ByDepartment,
		"status_linhas": stats.ByStatus,
		"hoje":          time.Now(),
	})
}

func (h *DashboardHandler) APIStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		jsonFailure(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// RegisterDashboardRoutes registers dashboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(r gin.IRouter, sessionMW gin.HandlerFunc) {
	r.GET("/dashboard", sessionMW, h.Page)
	r.GET("/api/dashboard/stats", sessionMW, h.APIStats)
}
