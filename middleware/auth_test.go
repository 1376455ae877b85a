package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane-dev/storefront-api/auth"
	"github.com/shoplane-dev/storefront-api/models"
)

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{ValidateToken}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"email": c.GetString("email"),
			"role":  c.GetString("role"),
		})
	})
	r.GET("/whoami", handlers...)
	return r
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := protectedRouter()

	t.Run("valid token resolves identity", func(t *testing.T) {
		token, err := auth.GenerateToken("user@example.com", models.RoleUser)
		require.NoError(t, err)

		w := get(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user@example.com")
		assert.Contains(t, w.Body.String(), `"role":"user"`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := get(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := get(r, "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "other-secret")
		token, err := auth.GenerateToken("user@example.com", models.RoleUser)
		require.NoError(t, err)
		t.Setenv("JWT_SECRET", "test-secret")

		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := protectedRouter(RequireRole(models.RoleAdmin, models.RoleSeller))

	t.Run("allowed role passes", func(t *testing.T) {
		token, err := auth.GenerateToken("boss@example.com", models.RoleAdmin)
		require.NoError(t, err)
		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		token, err := auth.GenerateToken("user@example.com", models.RoleUser)
		require.NoError(t, err)
		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
