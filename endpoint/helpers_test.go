package endpoint

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/cosec-marketplace/config"
	"github.com/ariebrainware/cosec-marketplace/events"
	"github.com/ariebrainware/cosec-marketplace/middleware"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/repository"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-123"

type requestSpec struct {
	method  string
	path    string
	body    interface{}
	headers map[string]string
}

func performRequest(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	var reader *strings.Reader
	setJSONHeader := false
	switch v := spec.body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(v)
		setJSONHeader = true
	default:
		b, _ := json.Marshal(spec.body)
		reader = strings.NewReader(string(b))
		setJSONHeader = true
	}

	req := httptest.NewRequest(spec.method, spec.path, reader)
	if setJSONHeader {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range spec.headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			return w, nil, err
		}
	}
	return w, response, nil
}

// setupEndpointTest returns a router wired to a fresh in-memory database
// holding the seeded catalog.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("APPENV", "test")
	config.ResetRedisClientForTest()

	db, err := config.ConnectDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = config.CloseDatabase(db) })
	require.NoError(t, model.AutoMigrate(db))
	require.NoError(t, model.Seed(db))

	logger := zap.NewNop()
	h := NewHandler(repository.New(db), events.NopPublisher{}, logger)
	r := gin.New()
	RegisterRoutes(r, h, RouterOptions{
		AppName:   "CoSec Test",
		JWTSecret: testJWTSecret,
		Audit:     util.NewAuditLogger(db, logger),
	})
	return r, db
}

func authHeader(t *testing.T, email string, role model.UserRole) map[string]string {
	t.Helper()
	token, err := middleware.IssueToken(testJWTSecret, email, role, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func mustRequest(t *testing.T, r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w, resp, err := performRequest(r, spec)
	require.NoError(t, err, "body: %s", w.Body.String())
	return w, resp
}

// assertStatus asserts that the response HTTP status code matches the expected value
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, w.Code, "body: %s", w.Body.String())
}

func dataOf(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "data is not an object: %v", resp["data"])
	return data
}

func idOf(t *testing.T, obj map[string]interface{}) uint {
	t.Helper()
	id, ok := obj["ID"].(float64)
	require.True(t, ok, "missing ID in %v", obj)
	return uint(id)
}

func assertDecimal(t *testing.T, want string, got interface{}) {
	t.Helper()
	s, ok := got.(string)
	require.True(t, ok, "decimal not encoded as string: %v", got)
	assert.True(t, decimal.RequireFromString(want).Equal(decimal.RequireFromString(s)), "want %s, got %s", want, s)
}
