package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parking-gateway/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authTestRouter(jwtService *jwt.Service) *gin.Engine {
	engine := gin.New()
	m := NewAuthMiddleware(jwtService)
	engine.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "missing user id"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return engine
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	token, err := jwtService.GenerateToken(42, "alice@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	authTestRouter(jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)

	authTestRouter(jwtService).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	otherService := jwt.NewService("other-secret", time.Hour)
	token, err := otherService.GenerateToken(42, "alice@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	authTestRouter(jwt.NewService("test-secret", time.Hour)).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret", -time.Minute)
	token, err := jwtService.GenerateToken(42, "alice@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	authTestRouter(jwtService).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
