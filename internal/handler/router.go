package handler

import (
	"crypto/sha256"
	"net/http"
	"strings"

	"telecom_assets/internal/metrics"
	"telecom_assets/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

const flashSessionName = "telecom_flash"

// Handlers groups every HTTP handler of the application.
type Handlers struct {
	Auth      *AuthHandler
	Lines     *LineHandler
	Exports   *ExportHandler
	Users     *UserHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Secret        string
	SecureCookies bool
	Authenticator middleware.Authenticator
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// NewRouter builds the gin engine with templates, static assets, global
// middlewares and all routes.
func NewRouter(h Handlers, opts RouterOptions) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery(), middleware.RequestLogger(opts.Logger), middleware.Metrics(opts.Metrics))

	store := cookie.NewStore([]byte(opts.Secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, Secure: opts.SecureCookies, SameSite: http.SameSiteLaxMode})
	router.Use(sessions.Sessions(flashSessionName, store))

	router.StaticFS("/static", StaticFS())
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	sessionMW := middleware.SessionAuth(opts.Authenticator, opts.Logger)
	adminMW := middleware.AdminOnly()

	h.Auth.RegisterAuthRoutes(router, sessionMW)
	h.Dashboard.RegisterDashboardRoutes(router, sessionMW)
	h.Lines.RegisterLineRoutes(router, sessionMW, adminMW)
	h.Exports.RegisterExportRoutes(router, sessionMW)
	h.Users.RegisterUserRoutes(router, sessionMW, adminMW)
	h.Health.RegisterHealthRoutes(router)

	return router, nil
}

// WithCSRF guards every unsafe request with a gorilla/csrf token, taken from
// the form field or the X-CSRF-Token header.
func WithCSRF(next http.Handler, secret string, secure bool, log *zap.Logger) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + secret))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Warn("csrf validation failed", zap.String("path", r.URL.Path), zap.Error(csrf.FailureReason(r)))
			msg := "Formulário expirado. Recarregue a página e tente novamente."
			if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"success":false,"error":"` + msg + `"}`))
				return
			}
			http.Error(w, msg, http.StatusForbidden)
		})),
	)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !secure && r.TLS == nil {
			r = csrf.PlaintextHTTPRequest(r)
		}
		protect.ServeHTTP(w, r)
	})
}
