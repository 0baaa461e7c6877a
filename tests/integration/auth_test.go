package integration

import (
	"net/http"
	"testing"
)

func TestAuthFlow_RegisterLoginProfile(t *testing.T) {
	app := setupApp(t, nil)

	token, userID := app.registerUser(t, "auth", "auth@test.com", "password123")
	if token == "" || userID == "" {
		t.Fatal("expected token and user ID from registration")
	}

	loginToken := app.loginUser(t, "auth@test.com", "password123")

	rec := app.request(http.MethodGet, "/api/v1/profile", "", loginToken)
	expectStatus(t, rec, http.StatusOK)
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["email"] != "auth@test.com" || user["id"] != userID {
		t.Errorf("unexpected profile %v", user)
	}
	if user["isAdmin"] != false {
		t.Errorf("expected new user to not be admin")
	}
}

func TestAuthFlow_RegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t, nil)
	app.registerUser(t, "first", "dup@test.com", "password123")

	rec := app.request(http.MethodPost, "/api/v1/auth/register",
		`{"username":"second","email":"dup@test.com","password":"password123"}`, "")
	expectStatus(t, rec, http.StatusConflict)
	if code := errorCode(t, rec); code != "DUPLICATE_EMAIL" {
		t.Errorf("expected DUPLICATE_EMAIL, got %s", code)
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t, nil)
	app.registerUser(t, "wrong", "wrong@test.com", "password123")

	rec := app.request(http.MethodPost, "/api/v1/auth/login",
		`{"email":"wrong@test.com","password":"wrongpassword"}`, "")
	expectStatus(t, rec, http.StatusUnauthorized)
	if code := errorCode(t, rec); code != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %s", code)
	}
}

func TestAuthFlow_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t, nil)

	for _, path := range []string{"/api/v1/profile", "/api/v1/dashboard", "/api/v1/budget/overview", "/api/v1/admin/stats"} {
		t.Run(path, func(t *testing.T) {
			rec := app.request(http.MethodGet, path, "", "")
			expectStatus(t, rec, http.StatusUnauthorized)

			rec = app.request(http.MethodGet, path, "", "invalid-token")
			expectStatus(t, rec, http.StatusUnauthorized)
		})
	}
}

func TestAuthFlow_HealthAndCategories(t *testing.T) {
	app := setupApp(t, nil)

	rec := app.request(http.MethodGet, "/api/health", "", "")
	expectStatus(t, rec, http.StatusOK)

	token, _ := app.registerUser(t, "cats", "cats@test.com", "password123")
	rec = app.request(http.MethodGet, "/api/v1/categories?type=expense", "", token)
	expectStatus(t, rec, http.StatusOK)
	expense, ok := parseJSON(t, rec)["expense"].([]interface{})
	if !ok || len(expense) == 0 {
		t.Fatalf("expected expense categories, got %s", rec.Body.String())
	}

	rec = app.request(http.MethodGet, "/api/v1/categories?type=bogus", "", token)
	expectStatus(t, rec, http.StatusBadRequest)
}
