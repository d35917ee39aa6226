package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lowball-ledger/internal/config"
	"github.com/lowball-ledger/internal/middleware"
	"github.com/lowball-ledger/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uint) string {
	claims := &service.JWTClaims{
		UserID:   userID,
		Username: "flipper",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	authService := service.NewAuthService(nil, config.JWTConfig{Secret: testSecret, ExpireHours: 1})

	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(authService), func(c *gin.Context) {
		c.String(http.StatusOK, fmt.Sprintf("%d", middleware.GetUserID(c)))
	})
	return r
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	r := authRouter()
	token := signToken(t, 42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	// Websocket handshakes cannot carry headers from a browser
	r := authRouter()
	token := signToken(t, 42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := authRouter()

	tests := []struct {
		name   string
		header string
		query  string
	}{
		{"missing token", "", ""},
		{"malformed header", "Token abc", ""},
		{"garbage bearer token", "Bearer not-a-jwt", ""},
		{"garbage query token", "", "?token=not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
