package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fintrack/internal/config"
	"fintrack/internal/ledger"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/period"
	"fintrack/internal/server"
	"fintrack/internal/taxonomy"
	"fintrack/internal/testutil"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// fixedNow is Friday 2024-03-15, the clock every dated flow runs against.
var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	config.Set(&config.Config{
		JWTSecret:        "integration-secret",
		JWTExpirationDur: time.Hour,
	})
}

// setupApp creates the full router backed by an isolated in-memory SQLite
// and a cached ledger store. A nil now uses the wall clock.
func setupApp(t *testing.T, now func() time.Time) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	router := server.NewRouter(server.Deps{
		DB:       db,
		Store:    ledger.NewCachedStore(ledger.NewGormStore(db), 64, time.Minute),
		Taxonomy: taxonomy.Default(),
		Periods:  period.NewResolver(now),
	})
	return &testApp{DB: db, Router: router}
}

func fixedClock() time.Time { return fixedNow }

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseArray parses the response body into a slice of objects.
func parseArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, username, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":%q,"fullName":"Test User"}`, username, email, password)
	rec := app.request(http.MethodPost, "/api/v1/auth/register", body, "")
	expectStatus(t, rec, http.StatusCreated)
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request(http.MethodPost, "/api/v1/auth/login", body, "")
	expectStatus(t, rec, http.StatusOK)
	return parseJSON(t, rec)["token"].(string)
}

// promote flags a user as admin directly in the database.
func (app *testApp) promote(t *testing.T, userID string) {
	t.Helper()
	if err := app.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_admin", true).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}
}

// addTransaction posts a transaction and returns its ID.
func (app *testApp) addTransaction(t *testing.T, token, date, txType, category, amount string) string {
	t.Helper()
	body := fmt.Sprintf(`{"date":%q,"type":%q,"category":%q,"amount":%s}`, date, txType, category, amount)
	rec := app.request(http.MethodPost, "/api/v1/transactions", body, token)
	expectStatus(t, rec, http.StatusCreated)
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return tx["id"].(string)
}
