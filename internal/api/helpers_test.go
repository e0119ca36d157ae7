package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"bookkeeper/internal/config"
	"bookkeeper/internal/db"
	"bookkeeper/internal/domain"
	"bookkeeper/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter mounts the real router on an in-memory SQLite database.
// Redis is nil, so listing caches are disabled.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))
	cfg := &config.Config{JWTSecret: testSecret}
	return NewRouter(gdb, nil, cfg), gdb
}

// newTestRouterWithRedis is newTestRouter with a live in-process Redis, for
// tests that exercise the listing caches and their invalidation.
func newTestRouterWithRedis(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cfg := &config.Config{JWTSecret: testSecret}
	return NewRouter(gdb, rdb, cfg), gdb
}

// createTestUser inserts a user directly and returns it with a valid token.
func createTestUser(t *testing.T, gdb *gorm.DB, username, password, role string) (domain.User, string) {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := domain.User{Username: username, Password: hash, Role: role}
	require.NoError(t, gdb.Create(&user).Error)
	token, err := utils.GenerateJWT(&user, testSecret)
	require.NoError(t, err)
	return user, token
}

// doRequest performs an HTTP request against the router and records the response.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeJSON unmarshals a response body into dest.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

// errorKind extracts the stable error kind from a failure payload.
func errorKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]any
	decodeJSON(t, w, &payload)
	kind, _ := payload["error"].(string)
	return kind
}

// seedCatalog creates the accounts and employee the record tests reference.
func seedCatalog(t *testing.T, gdb *gorm.DB, createdBy string) {
	t.Helper()
	require.NoError(t, gdb.Create(&domain.Account{
		Name: "Cash", Code: "1000", Type: "Asset", TypeCode: "A1",
		SubAccount: "Petty Cash", SubAccountCode: "1001", FinancialStatement: "Balance Sheet",
		CreatedBy: createdBy,
	}).Error)
	require.NoError(t, gdb.Create(&domain.Account{
		Name: "Bank", Code: "1100", Type: "Asset", TypeCode: "A1",
		CreatedBy: createdBy,
	}).Error)
	require.NoError(t, gdb.Create(&domain.Employee{
		Name: "Alice", Title: "Clerk", Code: "E01", CreatedBy: createdBy,
	}).Error)
}

// recordBody builds a valid record creation payload.
func recordBody() map[string]any {
	return map[string]any{
		"date":          "2026-05-01T00:00:00Z",
		"source_name":   "Cash",
		"target_name":   "Bank",
		"description":   "test",
		"amount":        100.0,
		"employee_name": "Alice",
	}
}
