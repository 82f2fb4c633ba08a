package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashSurvivesRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("flash", cookie.NewStore([]byte("secret"))))

	var got []Message
	r.GET("/set", func(c *gin.Context) {
		Add(c, Success, "Linha adicionada com sucesso!")
		Add(c, Error, "Usuário inativo")
		c.Redirect(http.StatusFound, "/show")
	})
	r.GET("/show", func(c *gin.Context) {
		got = Pop(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// each Save emits a Set-Cookie; the browser keeps the last one
	req := httptest.NewRequest(http.MethodGet, "/show", nil)
	req.AddCookie(cookies[len(cookies)-1])
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, []Message{
		{Category: Success, Text: "Linha adicionada com sucesso!"},
		{Category: Error, Text: "Usuário inativo"},
	}, got)
}

func TestPopWithoutMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("flash", cookie.NewStore([]byte("secret"))))

	var got []Message
	r.GET("/", func(c *gin.Context) {
		got = Pop(c)
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got)
}
