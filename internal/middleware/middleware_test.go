package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func setupProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/protected", JWTAuth(testSecret))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":  c.MustGet("userID"),
			"role": c.MustGet("userRole"),
		})
	})

	admin := protected.Group("/admin", RequireRole("admin"))
	admin.GET("/panel", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func doAuthed(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"uid":  "user-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Add(-time.Minute).Unix(),
	}
}

func TestJWTAuth(t *testing.T) {
	router := setupProtectedRouter()

	t.Run("valid token sets the session identity", func(t *testing.T) {
		token := signToken(t, testSecret, validClaims("user"))
		w := doAuthed(router, "/protected/me", "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"uid": "user-1", "role": "user"}`, w.Body.String())
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty bearer token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + signTokenOther(t)},
		{"expired token", "Bearer " + signExpired(t)},
		{"missing uid claim", "Bearer " + signNoUID(t)},
		{"missing role claim", "Bearer " + signNoRole(t)},
		{"unknown role", "Bearer " + signBadRole(t)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doAuthed(router, "/protected/me", tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "invalid_token")
		})
	}
}

func signTokenOther(t *testing.T) string {
	return signToken(t, []byte("other-secret"), validClaims("user"))
}

func signExpired(t *testing.T) string {
	claims := validClaims("user")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	return signToken(t, testSecret, claims)
}

func signNoUID(t *testing.T) string {
	claims := validClaims("user")
	delete(claims, "uid")
	return signToken(t, testSecret, claims)
}

func signNoRole(t *testing.T) string {
	claims := validClaims("user")
	delete(claims, "role")
	return signToken(t, testSecret, claims)
}

func signBadRole(t *testing.T) string {
	return signToken(t, testSecret, validClaims("superuser"))
}

func TestRequireRole(t *testing.T) {
	router := setupProtectedRouter()

	t.Run("admin token passes", func(t *testing.T) {
		token := signToken(t, testSecret, validClaims("admin"))
		w := doAuthed(router, "/protected/admin/panel", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("user token is forbidden", func(t *testing.T) {
		token := signToken(t, testSecret, validClaims("user"))
		w := doAuthed(router, "/protected/admin/panel", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient permissions")
	})
}
