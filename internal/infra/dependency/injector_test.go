package dependency

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sales-dashboard/backend/config"
	"github.com/sales-dashboard/backend/internal/infra/db"
	"github.com/sales-dashboard/backend/internal/infra/metrics"
	"github.com/sales-dashboard/backend/internal/integration/adapters"
)

const salesCSV = "Date,Item,Qty,Price (KSH)\n" +
	"2024-01-05,Widget,3,10\n" +
	"2024-01-06,Gadget,1,25\n" +
	"2024-02-10,Widget,2,10\n"

type testServer struct {
	engine *gin.Engine
	redis  *miniredis.Miniredis
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gormDB.AutoMigrate(db.Models()...))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = "test-secret"
	if mutate != nil {
		mutate(cfg)
	}

	injector := NewInjector(cfg, gormDB, Options{
		Redis:           client,
		Metrics:         metrics.New(),
		PasswordService: adapters.NewPasswordServiceWithCost(bcrypt.MinCost),
	})

	return &testServer{
		engine: injector.Router.Setup(cfg.Server.Environment),
		redis:  mr,
	}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	body := `{"username":"` + username + `","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := s.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken
}

func uploadRequest(t *testing.T, token, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func authed(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestSalesFlow(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.register(t, "alice")

	rec := s.do(t, uploadRequest(t, token, "january.csv", salesCSV))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	upload := decode(t, rec)
	uploadID := upload["upload_id"].(string)
	stats := upload["stats"].(map[string]any)
	assert.Equal(t, "75", stats["total_sales"])
	assert.Equal(t, float64(2), stats["total_products"])
	assert.Equal(t, "2024-01-05 to 2024-02-10", stats["time_period"])
	assert.Equal(t, "KSH", stats["currency"])
	assert.Equal(t, "KSh", stats["symbol"])

	rec = s.do(t, authed(http.MethodGet, "/api/v1/dashboard", token))
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decode(t, rec)
	assert.Equal(t, uploadID, dashboard["selected_upload_id"])
	series := dashboard["series"].(map[string]any)
	assert.Len(t, series, 5)
	trend := series["sales_trend"].([]any)
	require.Len(t, trend, 2)
	assert.Equal(t, "2024-01", trend[0].(map[string]any)["label"])
	assert.Equal(t, "55", trend[0].(map[string]any)["value"])

	rec = s.do(t, authed(http.MethodGet, "/api/v1/uploads", token))
	require.Equal(t, http.StatusOK, rec.Code)
	uploads := decode(t, rec)["uploads"].([]any)
	require.Len(t, uploads, 1)
	assert.Equal(t, true, uploads[0].(map[string]any)["is_active"])

	rec = s.do(t, authed(http.MethodGet, "/api/v1/reports/export?upload_id="+uploadID, token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sales_report_")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = s.do(t, authed(http.MethodDelete, "/api/v1/uploads/"+uploadID, token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, authed(http.MethodGet, "/api/v1/dashboard", token))
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard = decode(t, rec)
	assert.Nil(t, dashboard["selected_upload_id"])
	assert.Empty(t, dashboard["uploads"])

	rec = s.do(t, authed(http.MethodGet, "/api/v1/reports/export", token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No data to export", decode(t, rec)["error"])
}

func TestUploadRejections(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Upload.MaxBytes = 1024
	})
	token := s.register(t, "alice")

	tests := []struct {
		name     string
		filename string
		content  string
		status   int
		code     string
		message  string
	}{
		{
			name:     "unsupported type",
			filename: "sales.pdf",
			content:  "x",
			status:   http.StatusBadRequest,
			code:     "UPL-020002",
			message:  "Invalid file type",
		},
		{
			name:     "missing quantity",
			filename: "sales.csv",
			content:  "Date,Product,Price\n2024-01-05,Widget,10\n",
			status:   http.StatusBadRequest,
			code:     "UPL-010001",
			message:  "Missing required columns: quantity",
		},
		{
			name:     "missing price and total",
			filename: "sales.csv",
			content:  "Date,Product,Qty\n2024-01-05,Widget,1\n",
			status:   http.StatusBadRequest,
			code:     "UPL-010002",
			message:  "Missing price or total column",
		},
		{
			name:     "bad date",
			filename: "sales.csv",
			content:  "Date,Product,Qty,Price\nyesterday,Widget,1,10\n",
			status:   http.StatusBadRequest,
			code:     "UPL-010003",
			message:  "Invalid date or quantity format",
		},
		{
			name:     "too large",
			filename: "sales.csv",
			content:  salesCSV + strings.Repeat("2024-01-05,Widget,1,10\n", 100),
			status:   http.StatusRequestEntityTooLarge,
			code:     "UPL-020003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, uploadRequest(t, token, tt.filename, tt.content))

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decode(t, rec)
			assert.Equal(t, tt.code, body["code"])
			if tt.message != "" {
				assert.Equal(t, tt.message, body["error"])
			}
		})
	}

	rec := s.do(t, authed(http.MethodGet, "/api/v1/uploads", token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["uploads"])
}

func TestUploadOwnership(t *testing.T) {
	s := newTestServer(t, nil)
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")

	rec := s.do(t, uploadRequest(t, alice, "sales.csv", salesCSV))
	require.Equal(t, http.StatusCreated, rec.Code)
	uploadID := decode(t, rec)["upload_id"].(string)

	rec = s.do(t, authed(http.MethodGet, "/api/v1/dashboard?upload_id="+uploadID, bob))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, authed(http.MethodDelete, "/api/v1/uploads/"+uploadID, bob))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, authed(http.MethodDelete, "/api/v1/uploads/not-a-uuid", bob))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit.LoginLimit = 2
		cfg.RateLimit.Window = time.Minute
	})
	s.register(t, "alice")

	login := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"alice","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		return s.do(t, req).Code
	}

	assert.Equal(t, http.StatusOK, login())
	assert.Equal(t, http.StatusOK, login())
	assert.Equal(t, http.StatusTooManyRequests, login())
	assert.NotEmpty(t, s.redis.Keys())
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode(t, rec)
	assert.Equal(t, "connected", health["database"])
	assert.Equal(t, "connected", health["cache"])

	token := s.register(t, "alice")
	rec = s.do(t, uploadRequest(t, token, "sales.csv", salesCSV))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sales_uploads_total{result="accepted"} 1`)
	assert.Contains(t, rec.Body.String(), "sales_ingested_rows_total 3")
}
