package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// tokenWith builds a structurally valid JWT around the given claims.
// The signature is garbage, which is fine: validation happens upstream.
func tokenWith(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	body := base64.RawURLEncoding.EncodeToString(payload)
	return header + "." + body + ".sig"
}

func authTestRouter() *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session has expired")
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthMiddlewareMalformedToken(t *testing.T) {
	router := authTestRouter()

	for _, header := range []string{"Bearer not-a-jwt", "Basic abc", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareStoresClaims(t *testing.T) {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		raw, exists := c.Get("claims")
		require.True(t, exists)
		claims := raw.(*models.JWTClaims)
		assert.Equal(t, "clerk@barangay.gov.ph", claims.Email)
		c.Status(http.StatusOK)
	})

	token := tokenWith(t, map[string]interface{}{
		"email":              "clerk@barangay.gov.ph",
		"preferred_username": "clerk",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	config.AppConfig = &config.Config{AdminGroup: "egov-admin"}

	router := gin.New()
	router.GET("/admin", AuthMiddleware(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name     string
		roles    []string
		expected int
	}{
		{"admin role present", []string{"offline_access", "egov-admin"}, http.StatusOK},
		{"citizen only", []string{"offline_access"}, http.StatusForbidden},
		{"no roles", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tokenWith(t, map[string]interface{}{
				"preferred_username": "someone",
				"realm_access":       map[string]interface{}{"roles": tt.roles},
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestActorFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "anonymous", ActorFromContext(c))

	c.Set("claims", &models.JWTClaims{PreferredUsername: "clerk"})
	assert.Equal(t, "clerk", ActorFromContext(c))

	c.Set("claims", &models.JWTClaims{Email: "clerk@barangay.gov.ph", PreferredUsername: "clerk"})
	assert.Equal(t, "clerk@barangay.gov.ph", ActorFromContext(c))
}
