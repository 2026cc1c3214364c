package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinytales/storefront/internal/session"
	"tinytales/storefront/internal/web"
)

func newEngine(t *testing.T, log zerolog.Logger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(RequestID(log), Logger(log), Recovery(log))
	return engine
}

func TestRequestIDEchoedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	engine := newEngine(t, log)
	engine.GET("/ping", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside")
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"req-1","message":"inside"`)
	assert.Contains(t, buf.String(), `"message":"http request"`)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get(requestIDHeader), 36)
}

func TestRecoveryRendersErrorPage(t *testing.T) {
	engine := newEngine(t, zerolog.Nop())
	engine.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestSessionInstallsVault(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	opts := session.CookieOptions{Name: "tinytales_sid", TTL: time.Hour}

	engine := newEngine(t, zerolog.Nop())
	var seen string
	engine.GET("/", Session(store, opts), func(c *gin.Context) {
		vault := CurrentSession(c)
		require.NotNil(t, vault)
		seen = vault.ID()
		c.Status(http.StatusNoContent)
	})
	engine.GET("/bare", func(c *gin.Context) {
		assert.Nil(t, CurrentSession(c))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, session.ValidID(seen))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, seen, cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	first := seen
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	engine.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, first, seen, "returning visitor keeps its id")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bare", nil))
	assert.Empty(t, w.Result().Cookies())
}
