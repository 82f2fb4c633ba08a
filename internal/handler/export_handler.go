package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"telecom_assets/internal/flash"
	"telecom_assets/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler serves the line file downloads
type ExportHandler struct {
	service service.ExportService
	log     *zap.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(s service.ExportService, log *zap.Logger) *ExportHandler {
	return &ExportHandler{service: s, log: log}
}

func (h *ExportHandler) Legacy(c *gin.Context) {
	c.Redirect(http.StatusFound, "/exportar/linhas/csv")
}

func (h *ExportHandler) CSV(c *gin.Context) {
	buf, err := h.service.CSV(c.Request.Context())
	if err != nil {
		h.log.Error("csv export failed", zap.Error(err))
		redirectWithFlash(c, flash.Error, "Erro ao exportar CSV", "/linhas")
		return
	}
	h.attachment(c, h.service.Filename(service.ExportFormatCSV), mimeCSV, buf)
}

func (h *ExportHandler) Excel(c *gin.Context) {
	buf, err := h.service.Spreadsheet(c.Request.Context())
	if err != nil {
		h.log.Error("spreadsheet export failed", zap.Error(err))
		redirectWithFlash(c, flash.Error, "Erro ao exportar Excel", "/linhas")
		return
	}
	h.attachment(c, h.service.Filename(service.ExportFormatXLSX), mimeXLSX, buf)
}

func (h *ExportHandler) attachment(c *gin.Context, filename, contentType string, buf *bytes.Buffer) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// RegisterExportRoutes registers export routes
func (h *ExportHandler) RegisterExportRoutes(r gin.IRouter, sessionMW gin.HandlerFunc) {
	exports := r.Group("/exportar/linhas", sessionMW)
	{
		exports.GET("", h.Legacy)
		exports.GET("/csv", h.CSV)
		exports.GET("/excel", h.Excel)
	}
}
