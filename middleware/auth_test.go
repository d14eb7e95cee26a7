package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"ua-shop/config"
	"ua-shop/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.LoadConfig()
	os.Exit(m.Run())
}

func newProtectedRouter(adminOnly bool) *gin.Engine {
	router := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware()}
	if adminOnly {
		handlers = append(handlers, AdminMiddleware())
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetInt("user_id"),
			"email":  c.GetString("user_email"),
			"role":   c.GetString("user_role"),
		})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	router := newProtectedRouter(false)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc123"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddlewarePassesClaims(t *testing.T) {
	router := newProtectedRouter(false)

	token, err := utils.GenerateToken(7, "juan@example.com", "customer")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":7`)
	assert.Contains(t, w.Body.String(), `"email":"juan@example.com"`)
	assert.Contains(t, w.Body.String(), `"role":"customer"`)
}

func TestAdminMiddleware(t *testing.T) {
	router := newProtectedRouter(true)

	customer, err := utils.GenerateToken(7, "juan@example.com", "customer")
	require.NoError(t, err)
	w := doRequest(router, "Bearer "+customer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, err := utils.GenerateToken(1, "admin@example.com", "admin")
	require.NoError(t, err)
	w = doRequest(router, "Bearer "+admin)
	assert.Equal(t, http.StatusOK, w.Code)
}
