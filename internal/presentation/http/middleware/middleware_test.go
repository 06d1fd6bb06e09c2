package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/pkg/logger"
	"github.com/sangkips/billbuddy-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterConfigFromWindow(t *testing.T) {
	cfg := RateLimiterConfigFromWindow(120, 60)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)

	cfg = RateLimiterConfigFromWindow(0, 0)
	assert.Equal(t, 100, cfg.BurstSize)
}

func newAuthRouter(jwt *utils.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggerMiddleware(logger.Discard()))
	r.Use(WaiterAuthMiddleware(jwt))
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, clientKey(c))
	})
	return r
}

func TestClientKey(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(jwt)

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "ip:10.0.0.9", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	token, err := jwt.GenerateWaiterToken("w-1", "Asha")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "waiter:w-1", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	r := newAuthRouter(utils.NewJWTManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
