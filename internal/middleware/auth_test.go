package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"fintrack/internal/config"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	config.Set(&config.Config{JWTSecret: "test-secret", JWTExpirationDur: time.Hour})
}

type fakeUsers map[string]*models.User

func (f fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if id == "boom" {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down"))
	}
	u, ok := f[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func testUser(id string, admin, active bool) *models.User {
	return &models.User{Base: models.Base{ID: id}, Email: id + "@test.com", IsAdmin: admin, IsActive: active}
}

func setupRouter(users UserLookup) *gin.Engine {
	r := gin.New()
	auth := r.Group("", AuthMiddleware(users))
	auth.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserID), "is_admin": c.GetBool(ContextIsAdmin)})
	})
	auth.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func bearer(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := GenerateToken(u)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	alice := testUser("alice", false, true)
	root := testUser("root", true, true)
	gone := testUser("gone", false, false)
	users := fakeUsers{"alice": alice, "root": root, "gone": gone}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
		UserID: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, _ := expired.SignedString([]byte("test-secret"))

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
		UserID:           "alice",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer},
	})
	forgedToken, _ := forged.SignedString([]byte("other-secret"))

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"missing header", "/me", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong scheme", "/me", "Token abc", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"garbage token", "/me", "Bearer abc", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"expired token", "/me", "Bearer " + expiredToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong signing key", "/me", "Bearer " + forgedToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown user", "/me", bearer(t, testUser("ghost", false, true)), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"inactive user", "/me", bearer(t, gone), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"lookup failure", "/me", bearer(t, testUser("boom", false, true)), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"valid user", "/me", bearer(t, alice), http.StatusOK, ""},
		{"non-admin on admin route", "/admin", bearer(t, alice), http.StatusForbidden, "FORBIDDEN"},
		{"admin on admin route", "/admin", bearer(t, root), http.StatusOK, ""},
	}

	r := setupRouter(users)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(r, tt.path, tt.header)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode == "" {
				return
			}
			errObj, ok := parseBody(t, rec)["error"].(map[string]interface{})
			if !ok {
				t.Fatal("expected error object in response")
			}
			if code, _ := errObj["code"].(string); code != tt.wantCode {
				t.Errorf("error code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestAuthMiddlewareSetsContext(t *testing.T) {
	root := testUser("root", true, true)
	r := setupRouter(fakeUsers{"root": root})

	rec := doRequest(r, "/me", bearer(t, root))
	body := parseBody(t, rec)
	if body["user_id"] != "root" || body["is_admin"] != true {
		t.Errorf("unexpected context values: %v", body)
	}
}

func TestRequireAdminWithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := doRequest(r, "/admin", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestErrorHandlerRendersField(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperrors.InvalidField("amount", "amount must not be zero"))
	})

	rec := doRequest(r, "/fail", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	errObj := parseBody(t, rec)["error"].(map[string]interface{})
	if errObj["field"] != "amount" || errObj["code"] != "INVALID_INPUT" {
		t.Errorf("unexpected error body: %v", errObj)
	}
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := doRequest(r, "/ping", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}
