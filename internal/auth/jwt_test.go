package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cmms-platform/cmms-service/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	u := &model.User{ID: 42, Email: "tech@example.com", Role: model.RoleTechnician}

	token, err := GenerateToken("secret", time.Hour, u)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UserID)
	require.Equal(t, "tech@example.com", claims.Email)
	require.Equal(t, model.RoleTechnician, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, &model.User{ID: 1})
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	require.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", -time.Minute, &model.User{ID: 1})
	require.NoError(t, err)

	_, err = ValidateToken("secret", token)
	require.Error(t, err)
}

func TestMiddlewareAndRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", Middleware("secret"), RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(authHeader string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusUnauthorized, do(""))
	require.Equal(t, http.StatusUnauthorized, do("Bearer not-a-token"))

	techToken, err := GenerateToken("secret", time.Hour, &model.User{ID: 2, Role: model.RoleTechnician})
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, do("Bearer "+techToken))

	adminToken, err := GenerateToken("secret", time.Hour, &model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, do("Bearer "+adminToken))
}
