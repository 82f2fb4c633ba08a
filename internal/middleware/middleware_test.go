package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"telecom_assets/internal/metrics"
	"telecom_assets/internal/model"
	"telecom_assets/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubAuth struct {
	users map[string]*model.User
	err   error
}

func (s stubAuth) Authenticate(_ context.Context, token string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, service.ErrUnauthenticated
}

func newRouter(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("flash", cookie.NewStore([]byte("secret"))))

	protected := r.Group("/", SessionAuth(auth, zap.NewNop()))
	protected.GET("/dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Name)
	})
	protected.GET("/api/linhas", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	admin := protected.Group("/", AdminOnly())
	admin.GET("/usuarios", func(c *gin.Context) { c.String(http.StatusOK, "users") })
	admin.POST("/usuarios/adicionar", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })
	return r
}

var (
	adminUser    = &model.User{ID: 1, Name: "admin", Status: model.UserStatusActive, IsAdmin: true}
	operatorUser = &model.User{ID: 2, Name: "ana", Status: model.UserStatusActive}
)

func authWithUsers() stubAuth {
	return stubAuth{users: map[string]*model.User{"admin-token": adminUser, "ana-token": operatorUser}}
}

func TestSessionAuth_RedirectsPagesWithoutSession(t *testing.T) {
	r := newRouter(authWithUsers())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSessionAuth_APIAnswers401(t *testing.T) {
	r := newRouter(authWithUsers())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/linhas", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Por favor, faça login para acessar esta página."}`, rec.Body.String())
}

func TestSessionAuth_AcceptsCookieAndBearer(t *testing.T) {
	r := newRouter(authWithUsers())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "ana-token"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
}

func TestSessionAuth_ClearsStaleCookie(t *testing.T) {
	r := newRouter(authWithUsers())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "revoked-token"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestSessionAuth_BackendFailureIsUnauthenticated(t *testing.T) {
	r := newRouter(stubAuth{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodGet, "/api/linhas", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	r := newRouter(authWithUsers())

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "admin-token"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("operator page redirected to dashboard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "ana-token"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("operator JSON gets a failure body, not an HTTP error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/usuarios/adicionar", nil)
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "ana-token"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Acesso restrito a administradores"}`, rec.Body.String())
	})
}

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"none", "", "", ""},
		{"cookie wins", "Bearer header", "cookie", "cookie"},
		{"bearer", "bearer abc", "", "abc"},
		{"malformed header", "Token abc", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			assert.Equal(t, tt.want, TokenFromRequest(c))
		})
	}
}

func TestRequestLoggerAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New("test")

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)), Metrics(m))
	r.GET("/linhas", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/linhas", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/linhas", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/linhas", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}
