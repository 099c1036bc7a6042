package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkspace/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSessions map[string]*domain.User

func (f fakeSessions) GetCurrentUser(_ context.Context, token string) (*domain.User, error) {
	if u, ok := f[token]; ok {
		return u, nil
	}
	return nil, errors.New("unauthorized")
}

var sessions = fakeSessions{
	"client-token": domain.NewClientUser("42", "sam@ink.test", &domain.ClientProfile{Name: "Sam"}),
	"admin-token":  domain.NewAdminUser("7", "", &domain.AdminProfile{Name: "Admin"}),
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(sessions))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
			"name":    CurrentUser(c).DisplayName(),
		})
	})

	w := serve(router, "Bearer client-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"42"`)
	assert.Contains(t, w.Body.String(), "client")
	assert.Contains(t, w.Body.String(), "Sam")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(sessions))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("This handler should not be reached")
	})

	w := serve(router, "Bearer invalid-jwt-here")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_NoToken(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(sessions))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := serve(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_HEADER_MISSING")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(sessions))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := serve(router, "Basic dGVzdA==")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestRequireRole(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(sessions), AdminOnly())
	router.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, "Bearer admin-token").Code)

	w := serve(router, "Bearer client-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	router := gin.New()
	router.Use(ErrorLogger())
	router.GET("/protected", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(router, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
}
