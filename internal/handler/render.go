package handler

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"telecom_assets/internal/flash"
	"telecom_assets/internal/middleware"
	"telecom_assets/internal/service"
	"telecom_assets/internal/utils"
	"telecom_assets/web"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

const (
	AppName    = "PEIXOTO GRUPO EMPRESARIAL"
	AppVersion = "2.0"

	msgUnexpected = "Erro inesperado. Tente novamente."
)

// TemplateFuncs are the helpers available to every page.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"format_phone":    utils.FormatPhone,
		"format_currency": utils.FormatCurrencyBRL,
		"format_cents":    utils.FormatCents,
		"format_date":     utils.FormatDateBR,
		"input_date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"per_page_options": func() []int { return []int{10, 25, 50, 100} },
	}
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(TemplateFuncs()).ParseFS(web.Templates, "templates/*.html")
}

// StaticFS serves the embedded static assets.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// render executes a page template with the shared globals, the queued flash
// messages and the CSRF token merged into data.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["current_year"] = time.Now().Year()
	data["now"] = time.Now()
	data["app_name"] = AppName
	data["company_name"] = AppName
	data["version"] = AppVersion
	data["flashes"] = flash.Pop(c)
	data["csrf_token"] = csrf.Token(c.Request)
	data["csrf_field"] = csrf.TemplateField(c.Request)
	data["current_user"] = middleware.CurrentUser(c)
	c.HTML(status, name, data)
}

func redirectWithFlash(c *gin.Context, category, text, location string) {
	flash.Add(c, category, text)
	c.Redirect(http.StatusFound, location)
}

// jsonFailure answers a JSON route with {success:false, error}. Domain
// failures share one status code and differ only by message.
func jsonFailure(c *gin.Context, log *zap.Logger, err error) {
	msg, known := userMessage(err)
	if !known {
		log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": false, "error": msg})
}

// pageFailure flashes the user message for err and redirects to location.
func pageFailure(c *gin.Context, log *zap.Logger, err error, location string) {
	msg, known := userMessage(err)
	if !known {
		log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	redirectWithFlash(c, flash.Error, msg, location)
}

// userMessage maps domain errors to the Portuguese text shown to users.
// The boolean is false for unexpected errors, which callers should log.
func userMessage(err error) (string, bool) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return "Dados inválidos no campo " + vErr.Field + ": " + vErr.Reason, true
	case errors.Is(err, service.ErrLineNotFound):
		return "Linha não encontrada", true
	case errors.Is(err, service.ErrUserNotFound):
		return "Usuário não encontrado", true
	case errors.Is(err, service.ErrUserAlreadyExists):
		return "Usuário já existe", true
	case errors.Is(err, service.ErrInvalidPassword):
		return "Senha incorreta", true
	case errors.Is(err, service.ErrInactiveAccount):
		return "Usuário inativo", true
	case errors.Is(err, service.ErrSelfDeletion):
		return "Não pode excluir seu próprio usuário", true
	case errors.Is(err, service.ErrPermissionDenied):
		return "Acesso restrito a administradores", true
	}
	return msgUnexpected, false
}
