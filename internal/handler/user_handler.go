package handler

import (
	"net/http"
	"strconv"

	"telecom_assets/internal/flash"
	"telecom_assets/internal/middleware"
	"telecom_assets/internal/model"
	"telecom_assets/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the admin user management page and its JSON actions
type UserHandler struct {
	service service.UserService
	log     *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{service: s, log: log}
}

func (h *UserHandler) Page(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list users", zap.Error(err))
		redirectWithFlash(c, flash.Error, "Erro ao carregar usuários", "/dashboard")
		return
	}
	render(c, http.StatusOK, "usuarios.html", gin.H{
		"title":    "Usuários",
		"usuarios": users,
		"statuses": []string{model.UserStatusActive, model.UserStatusInactive},
	})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonFailure(c, h.log, &service.ValidationError{Field: "nome/senha", Reason: "campos obrigatórios"})
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		jsonFailure(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": user.ID})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonFailure(c, h.log, service.ErrUserNotFound)
		return
	}
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonFailure(c, h.log, &service.ValidationError{Field: "corpo", Reason: "JSON inválido"})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, req); err != nil {
		jsonFailure(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonFailure(c, h.log, service.ErrUserNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		jsonFailure(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterUserRoutes registers admin-only user routes
func (h *UserHandler) RegisterUserRoutes(r gin.IRouter, sessionMW, adminMW gin.HandlerFunc) {
	users := r.Group("/usuarios", sessionMW, adminMW)
	{
		users.GET("", h.Page)
		users.POST("/adicionar", h.Create)
		users.POST("/atualizar/:id", h.Update)
		users.POST("/excluir/:id", h.Delete)
	}
}
