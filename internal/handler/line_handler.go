package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"telecom_assets/internal/flash"
	"telecom_assets/internal/middleware"
	"telecom_assets/internal/model"
	"telecom_assets/internal/service"
	"telecom_assets/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LineHandler serves the line pages and the line JSON API
type LineHandler struct {
	service service.LineService
	log     *zap.Logger
}

// NewLineHandler creates a new LineHandler
func NewLineHandler(s service.LineService, log *zap.Logger) *LineHandler {
	return &LineHandler{service: s, log: log}
}

// lineResponse is the JSON shape of a line in /api/linhas.
type lineResponse struct {
	ID             int64   `json:"id"`
	Account        string  `json:"conta"`
	Phone          string  `json:"linha"`
	PhoneRaw       string  `json:"linha_raw"`
	Plan           string  `json:"plano"`
	MonthlyFee     float64 `json:"mensalidade"`
	Responsible    string  `json:"responsavel"`
	Department     string  `json:"departamento"`
	HasChip        string  `json:"chipeira"`
	ActivationDate string  `json:"efetivacao"`
	EndDate        string  `json:"termino"`
	Status         string  `json:"status"`
	InUse          string  `json:"uso"`
	Phase          *string `json:"fase"`
}

func toLineResponse(l *model.Line) lineResponse {
	return lineResponse{
		ID:             l.ID,
		Account:        l.Account,
		Phone:          utils.FormatPhone(l.Phone),
		PhoneRaw:       l.Phone,
		Plan:           l.Plan,
		MonthlyFee:     l.MonthlyFee(),
		Responsible:    l.Responsible,
		Department:     l.Department,
		HasChip:        l.HasChip,
		ActivationDate: utils.FormatDateBR(l.ActivationDate),
		EndDate:        utils.FormatDateBR(l.EndDate),
		Status:         l.Status,
		InUse:          l.InUse,
		Phase:          l.Phase,
	}
}

// formFromLine fills the edit form with the stored values.
func formFromLine(l *model.Line) model.LineForm {
	return model.LineForm{
		Account:        l.Account,
		Phone:          utils.FormatPhone(l.Phone),
		Plan:           l.Plan,
		MonthlyFee:     utils.FormatCents(l.MonthlyFeeCents),
		Responsible:    l.Responsible,
		Department:     l.Department,
		HasChip:        l.HasChip,
		ActivationDate: l.ActivationDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		Status:         l.Status,
		InUse:          l.InUse,
		Phase:          l.PhaseText(),
	}
}

// filterFromQuery reads search, page and per_page. Unparsable numbers fall
// back to their defaults.
func filterFromQuery(c *gin.Context) model.LineFilter {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	perPage, err := strconv.Atoi(c.Query("per_page"))
	if err != nil {
		perPage = model.DefaultPerPage
	}
	return model.LineFilter{Search: c.Query("search"), Page: page, PerPage: perPage}
}

func parseLineID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *LineHandler) List(c *gin.Context) {
	filter := filterFromQuery(c)
	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("failed to list lines", zap.Error(err))
		redirectWithFlash(c, flash.Error, "Erro ao carregar linhas", "/dashboard")
		return
	}

	newID, _ := strconv.ParseInt(c.Query("nova"), 10, 64)
	render(c, http.StatusOK, "linhas.html", gin.H{
		"title":      "Linhas",
		"linhas":     page.Items,
		"search":     filter.Search,
		"pagination": page.Pagination,
		"per_page":   page.Pagination.PerPage,
		"nova":       newID,
	})
}

func (h *LineHandler) AddPage(c *gin.Context) {
	h.renderForm(c, "adicionar_linha.html", 0, model.LineForm{
		HasChip: model.Yes, InUse: model.Yes, Status: model.LineStatusActive,
	})
}

func (h *LineHandler) Add(c *gin.Context) {
	var form model.LineForm
	_ = c.ShouldBind(&form)

	line, err := h.service.Create(c.Request.Context(), form)
	if err != nil {
		h.formFailure(c, err, "adicionar_linha.html", 0, form)
		return
	}
	redirectWithFlash(c, flash.Success, "Linha adicionada com sucesso!", fmt.Sprintf("/linhas?nova=%d", line.ID))
}

func (h *LineHandler) EditPage(c *gin.Context) {
	id, ok := parseLineID(c)
	if !ok {
		pageFailure(c, h.log, service.ErrLineNotFound, "/linhas")
		return
	}
	line, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		pageFailure(c, h.log, err, "/linhas")
		return
	}
	h.renderForm(c, "editar_linha.html", id, formFromLine(line))
}

func (h *LineHandler) Edit(c *gin.Context) {
	id, ok := parseLineID(c)
	if !ok {
		pageFailure(c, h.log, service.ErrLineNotFound, "/linhas")
		return
	}
	var form model.LineForm
	_ = c.ShouldBind(&form)

	if _, err := h.service.Update(c.Request.Context(), id, form); err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.formFailure(c, err, "editar_linha.html", id, form)
			return
		}
		pageFailure(c, h.log, err, "/linhas")
		return
	}
	redirectWithFlash(c, flash.Success, "Linha atualizada com sucesso!", "/linhas")
}

// Delete answers JSON to script callers and redirects plain form posts.
func (h *LineHandler) Delete(c *gin.Context) {
	id, ok := parseLineID(c)
	err := service.ErrLineNotFound
	if ok {
		err = h.service.Delete(c.Request.Context(), id)
	}

	if middleware.WantsJSON(c) {
		if err != nil {
			jsonFailure(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	if err != nil {
		pageFailure(c, h.log, err, "/linhas")
		return
	}
	redirectWithFlash(c, flash.Success, "Linha excluída com sucesso!", "/linhas")
}

func (h *LineHandler) APIList(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		jsonFailure(c, h.log, err)
		return
	}
	data := make([]lineResponse, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, toLineResponse(&page.Items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "pagination": page.Pagination})
}

func (h *LineHandler) renderForm(c *gin.Context, tmpl string, id int64, form model.LineForm) {
	render(c, http.StatusOK, tmpl, gin.H{
		"title":    "Linha",
		"id":       id,
		"form":     form,
		"statuses": model.LineStatuses,
	})
}

// formFailure re-renders the form with the submitted values on validation
// errors and redirects to the list otherwise.
func (h *LineHandler) formFailure(c *gin.Context, err error, tmpl string, id int64, form model.LineForm) {
	msg, known := userMessage(err)
	if !known {
		h.log.Error("failed to save line", zap.Error(err))
	}
	flash.Add(c, flash.Error, "Erro: "+msg)
	h.renderForm(c, tmpl, id, form)
}

// RegisterLineRoutes registers line routes
func (h *LineHandler) RegisterLineRoutes(r gin.IRouter, sessionMW, adminMW gin.HandlerFunc) {
	lines := r.Group("/linhas", sessionMW)
	{
		lines.GET("", h.List)
		lines.GET("/adicionar", h.AddPage)
		lines.POST("/adicionar", h.Add)
		lines.GET("/editar/:id", h.EditPage)
		lines.POST("/editar/:id", h.Edit)
		lines.POST("/excluir/:id", adminMW, h.Delete)
	}
	r.GET("/api/linhas", sessionMW, h.APIList)
}
