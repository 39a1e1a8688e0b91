package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWT() services.InterfaceJWTService {
	return services.NewJWTService(&config.Config{
		JWTSecretKey:    "middleware-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}, nil)
}

func token(t *testing.T, svc services.InterfaceJWTService, role, tokenType string) string {
	t.Helper()
	admin := &models.Admin{Username: "staff", Role: role}
	admin.ID = "admin-" + role
	signed, _, err := svc.GenerateToken(admin, tokenType)
	require.NoError(t, err)
	return signed
}

func protectedRouter(roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/p", RequireRoles(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRole)+":"+CurrentUserID(c))
	})
	return r
}

func do(r http.Handler, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoles(t *testing.T) {
	svc := testJWT()
	InitAuthMiddleware(svc)
	r := protectedRouter(models.RoleAdmin, models.RoleAccountant)

	w := do(r, http.MethodGet, "/p", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/p", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/p", token(t, svc, models.RoleAccountant, services.TokenTypeRefresh))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/p", token(t, svc, models.RoleLeader, services.TokenTypeAccess))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/p", token(t, svc, models.RoleAccountant, services.TokenTypeAccess))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accountant:admin-accountant", w.Body.String())
}

func TestRequireRolesAnyRole(t *testing.T) {
	svc := testJWT()
	InitAuthMiddleware(svc)
	r := protectedRouter()

	w := do(r, http.MethodGet, "/p", token(t, svc, models.RoleLeader, services.TokenTypeAccess))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", extractToken("Bearer abc"))
	assert.Equal(t, "abc", extractToken("bearer abc"))
	assert.Empty(t, extractToken("abc"))
	assert.Empty(t, extractToken("Bearer "))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:5173"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodOptions, "/x", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = do(r, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := do(r, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
