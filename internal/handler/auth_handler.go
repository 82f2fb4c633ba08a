package handler

import (
	"net/http"
	"time"

	"telecom_assets/internal/flash"
	"telecom_assets/internal/middleware"
	"telecom_assets/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	service       service.AuthService
	ttl           time.Duration
	secureCookies bool
	log           *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, ttl time.Duration, secureCookies bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{service: s, ttl: ttl, secureCookies: secureCookies, log: log}
}

func (h *AuthHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"title": "Login"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Name     string `form:"nome"`
		Password string `form:"senha"`
	}
	_ = c.ShouldBind(&req)

	_, token, err := h.service.Login(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		msg, known := userMessage(err)
		if !known {
			h.log.Error("login failed", zap.Error(err))
		}
		flash.Add(c, flash.Error, msg)
		render(c, http.StatusOK, "login.html", gin.H{"title": "Login", "nome": req.Name})
		return
	}

	middleware.SetSessionCookie(c, token, int(h.ttl.Seconds()), h.secureCookies)
	redirectWithFlash(c, flash.Success, "Login realizado com sucesso!", "/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.TokenFromRequest(c)); err != nil {
		h.log.Error("logout failed", zap.Error(err))
	}
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(r gin.IRouter, sessionMW gin.HandlerFunc) {
	r.GET("/", h.Index)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", sessionMW, h.Logout)
}
