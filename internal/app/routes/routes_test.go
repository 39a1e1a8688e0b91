package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bluemoon-http-service/internal/app/middleware"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/internal/infrastructure/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success    bool            `json:"success"`
	Code       int             `json:"code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowOrigin:      "http://localhost:5173",
		RateLimitRPS:         1000,
		RateLimitBurst:       1000,
		JWTSecretKey:         "routes-secret",
		AccessTokenTTL:       15 * time.Minute,
		RefreshTokenTTL:      24 * time.Hour,
		DefaultAdminPassword: "admin123",
		VehicleFeeMotorbike:  "Phí gửi xe máy",
		VehicleFeeCar:        "Phí gửi ô tô",
	}
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testConfig()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedFeeServices(db, cfg))
	require.NoError(t, database.EnsureAdminExists(db, cfg))

	r := SetupRouter(container.NewServiceContainer(db, cfg, nil, nil), cfg)
	middleware.PurgeCache()
	return r
}

func call(t *testing.T, r http.Handler, method, path, token string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	return nil
}

func login(t *testing.T, r http.Handler, username, password string) (string, *http.Cookie) {
	t.Helper()
	w, env := call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(t, env, &data)
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken, refreshCookie(w)
}

func register(t *testing.T, r http.Handler, adminToken, username, role string) string {
	t.Helper()
	w, _ := call(t, r, http.MethodPost, "/api/v1/auth/register", adminToken, gin.H{
		"username": username,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := login(t, r, username, "secret123")
	return token
}

func createID(t *testing.T, r http.Handler, path, token string, body interface{}) string {
	t.Helper()
	w, env := call(t, r, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &data)
	require.NotEmpty(t, data.ID)
	return data.ID
}

func TestHealthRoutes(t *testing.T) {
	r := newTestServer(t)

	w, env := call(t, r, http.MethodGet, "/api/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, env = call(t, r, http.MethodGet, "/api/v1/health/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Status   string `json:"status"`
		Database struct {
			Status string `json:"status"`
		} `json:"database"`
		Redis struct {
			Status string `json:"status"`
		} `json:"redis"`
	}
	decodeData(t, env, &status)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "up", status.Database.Status)
	assert.Equal(t, "disabled", status.Redis.Status)
}

func TestAuthFlow(t *testing.T) {
	r := newTestServer(t)

	w, env := call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.Nil(t, refreshCookie(w))

	token, cookie := login(t, r, "admin", "admin123")
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/v1/auth", cookie.Path)

	w, env = call(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	decodeData(t, env, &me)
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, "admin", me.Role)
	assert.Empty(t, me.Password)

	w, env = call(t, r, http.MethodPost, "/api/v1/auth/refresh", "", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var refreshed struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(t, env, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)

	w, _ = call(t, r, http.MethodPost, "/api/v1/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = call(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := refreshCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	w, _ = call(t, r, http.MethodPost, "/api/v1/auth/refresh", "", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRolePolicy(t *testing.T) {
	r := newTestServer(t)
	adminToken, _ := login(t, r, "admin", "admin123")
	leaderToken := register(t, r, adminToken, "totruong", "leader")
	accountantToken := register(t, r, adminToken, "ketoan", "accountant")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/households", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/households", "not-a-jwt", http.StatusUnauthorized},
		{"leader households", http.MethodGet, "/api/v1/households", leaderToken, http.StatusOK},
		{"accountant households", http.MethodGet, "/api/v1/households", accountantToken, http.StatusForbidden},
		{"leader users", http.MethodGet, "/api/v1/users", leaderToken, http.StatusOK},
		{"leader fee services", http.MethodGet, "/api/v1/fee-services", leaderToken, http.StatusForbidden},
		{"accountant fee services", http.MethodGet, "/api/v1/fee-services", accountantToken, http.StatusOK},
		{"accountant utility", http.MethodGet, "/api/v1/utility-usages", accountantToken, http.StatusOK},
		{"leader funds", http.MethodGet, "/api/v1/funds", leaderToken, http.StatusForbidden},
		{"accountant funds", http.MethodGet, "/api/v1/funds", accountantToken, http.StatusOK},
		{"leader vehicles", http.MethodGet, "/api/v1/vehicles", leaderToken, http.StatusOK},
		{"accountant vehicles", http.MethodGet, "/api/v1/vehicles", accountantToken, http.StatusOK},
		{"accountant feedback list", http.MethodGet, "/api/v1/feedback", accountantToken, http.StatusForbidden},
		{"leader dashboard", http.MethodGet, "/api/v1/reports/dashboard", leaderToken, http.StatusOK},
		{"accountant dashboard", http.MethodGet, "/api/v1/reports/dashboard", accountantToken, http.StatusOK},
		{"leader admins", http.MethodGet, "/api/v1/admins", leaderToken, http.StatusForbidden},
		{"admin admins", http.MethodGet, "/api/v1/admins", adminToken, http.StatusOK},
		{"admin everything", http.MethodGet, "/api/v1/fee-households", adminToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := call(t, r, tc.method, tc.path, tc.token, nil)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}

	// any staff member may file feedback; a missing resident is a 404, not a 403
	w, _ := call(t, r, http.MethodPost, "/api/v1/feedback", accountantToken, gin.H{
		"user_id": uuid.NewString(),
		"title":   "Thang máy",
		"content": "Hỏng",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(t, r, http.MethodPost, "/api/v1/auth/register", leaderToken, gin.H{
		"username": "someone",
		"password": "secret123",
		"role":     "leader",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHouseholdBillingFlow(t *testing.T) {
	r := newTestServer(t)
	token, _ := login(t, r, "admin", "admin123")

	householdID := createID(t, r, "/api/v1/households", token, gin.H{"area": 72.5, "note": "Tầng 12"})
	assert.True(t, strings.HasPrefix(householdID, "HK"))
	userID := createID(t, r, "/api/v1/users", token, gin.H{"full_name": "Nguyễn Văn An", "citizen_id": "001090001234"})

	// readings on an inactive household are rejected
	w, _ := call(t, r, http.MethodPost, "/api/v1/utility-usages", token, gin.H{
		"household_id": householdID, "month": "2025-03", "electricity": 100, "water": 10, "internet": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, r, http.MethodPost, "/api/v1/households/"+householdID+"/members", token, gin.H{
		"user_id": userID, "role_in_family": "Chủ hộ", "is_owner": true, "join_date": "2024-05-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := call(t, r, http.MethodGet, "/api/v1/households/"+householdID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var household struct {
		IsActive bool `json:"is_active"`
	}
	decodeData(t, env, &household)
	assert.True(t, household.IsActive)

	w, _ = call(t, r, http.MethodDelete, "/api/v1/households/"+householdID, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = call(t, r, http.MethodPost, "/api/v1/utility-usages", token, gin.H{
		"household_id": householdID, "month": "2025-03", "electricity": 100, "water": 10, "internet": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var usage struct {
		ID         string  `json:"id"`
		TotalPrice float64 `json:"total_price"`
		IsPaid     bool    `json:"is_paid"`
	}
	decodeData(t, env, &usage)
	assert.InDelta(t, 700000, usage.TotalPrice, 0.001)
	assert.False(t, usage.IsPaid)

	w, _ = call(t, r, http.MethodPost, "/api/v1/utility-usages", token, gin.H{
		"household_id": householdID, "month": "2025-03", "electricity": 1, "water": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = call(t, r, http.MethodPatch, "/api/v1/utility-usages/"+usage.ID+"/payment", token, gin.H{"utility": "all"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, env, &usage)
	assert.True(t, usage.IsPaid)

	w, env = call(t, r, http.MethodPost, "/api/v1/fee-households/accrue", token, gin.H{"month": "2025-03"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var accrual struct {
		Created int `json:"created"`
		Skipped int `json:"skipped"`
	}
	decodeData(t, env, &accrual)
	assert.Equal(t, 2, accrual.Created)

	w, env = call(t, r, http.MethodPost, "/api/v1/fee-households/accrue?month=2025-03", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, env, &accrual)
	assert.Equal(t, 0, accrual.Created)
	assert.Equal(t, 2, accrual.Skipped)

	w, env = call(t, r, http.MethodGet, "/api/v1/fee-households?household_id="+householdID+"&month=2025-03", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, env.Total)
	var fees []struct {
		Amount float64 `json:"amount"`
	}
	decodeData(t, env, &fees)
	var sum float64
	for _, fee := range fees {
		sum += fee.Amount
	}
	assert.InDelta(t, 72.5*7000+72.5*5000, sum, 0.001)

	w, _ = call(t, r, http.MethodPost, "/api/v1/vehicles", token, gin.H{
		"household_id": householdID, "license_plate": "29A-123.45", "type": "motorbike", "brand": "Honda",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = call(t, r, http.MethodPost, "/api/v1/vehicles", token, gin.H{
		"household_id": householdID, "license_plate": "29a-123.45", "type": "motorbike",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFeeServiceListIsCached(t *testing.T) {
	r := newTestServer(t)
	token, _ := login(t, r, "admin", "admin123")

	w, env := call(t, r, http.MethodGet, "/api/v1/fee-services", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.EqualValues(t, 7, env.Total)

	w, _ = call(t, r, http.MethodGet, "/api/v1/fee-services", token, nil)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w, _ = call(t, r, http.MethodPost, "/api/v1/fee-services", token, gin.H{
		"name": "Phí vệ sinh", "type": "Dịch vụ", "unit_price": 1000, "unit": "m2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = call(t, r, http.MethodGet, "/api/v1/fee-services", token, nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.EqualValues(t, 8, env.Total)
}

func TestFeedbackStatusRoutes(t *testing.T) {
	r := newTestServer(t)
	token, _ := login(t, r, "admin", "admin123")
	userID := createID(t, r, "/api/v1/users", token, gin.H{"full_name": "Trần Thị Bình", "citizen_id": "001190004321"})

	reportID := createID(t, r, "/api/v1/feedback", token, gin.H{
		"user_id": userID, "title": "Nước yếu", "content": "Tầng 15 nước rất yếu",
	})

	w, env := call(t, r, http.MethodPatch, "/api/v1/feedback/"+reportID+"/status", token, gin.H{
		"status": "resolved", "response": "Đã thay bơm",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report struct {
		Status      string  `json:"status"`
		RespondedBy *string `json:"responded_by"`
	}
	decodeData(t, env, &report)
	assert.Equal(t, "resolved", report.Status)
	require.NotNil(t, report.RespondedBy)
	assert.NotEmpty(t, *report.RespondedBy)

	w, _ = call(t, r, http.MethodPatch, "/api/v1/feedback/"+reportID+"/status", token, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, r, http.MethodPatch, "/api/v1/feedback/"+reportID+"/status", token, gin.H{"status": "closed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportDownload(t *testing.T) {
	r := newTestServer(t)
	token, _ := login(t, r, "admin", "admin123")

	w, _ := call(t, r, http.MethodGet, "/api/v1/reports/fee-households/export?month=2025-03", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "fees-2025-03.xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w, _ = call(t, r, http.MethodGet, "/api/v1/reports/utility-usages/export?month=bad", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
