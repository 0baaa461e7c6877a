package integration

import (
	"net/http"
	"testing"
)

func TestReportFlow_Dashboard(t *testing.T) {
	app := setupApp(t, fixedClock)
	token, _ := app.registerUser(t, "dash", "dash@test.com", "password123")

	// February: balance 600.
	app.addTransaction(t, token, "2024-02-01", "income", "salary", "1000")
	app.addTransaction(t, token, "2024-02-10", "expense", "food", "400")
	// March: balance 1500 - 300 - 200 - 100 = 900.
	app.addTransaction(t, token, "2024-03-01", "income", "salary", "1500")
	app.addTransaction(t, token, "2024-03-02", "expense", "food", "300")
	app.addTransaction(t, token, "2024-03-03", "savings", "retirement", "200")
	app.addTransaction(t, token, "2024-03-04", "investment", "stocks", "100")

	rec := app.request(http.MethodGet, "/api/v1/dashboard", "", token)
	expectStatus(t, rec, http.StatusOK)
	dash := parseJSON(t, rec)

	want := map[string]float64{
		"totalBalance":    900,
		"monthlyIncome":   1500,
		"monthlyExpenses": 300,
		"netSavings":      200,
		"investments":     100,
	}
	for key, v := range want {
		if got := dash[key].(float64); got != v {
			t.Errorf("%s: expected %v, got %v", key, v, got)
		}
	}

	changes := dash["changes"].(map[string]interface{})
	if changes["income"].(float64) != 50 || changes["expenses"].(float64) != -25 || changes["balance"].(float64) != 50 {
		t.Errorf("unexpected changes %v", changes)
	}
	// No savings last month.
	if changes["savings"].(float64) != 0 {
		t.Errorf("expected 0 savings change against empty month, got %v", changes["savings"])
	}
}

func TestReportFlow_EmptyUserGetsZeroes(t *testing.T) {
	app := setupApp(t, fixedClock)
	token, _ := app.registerUser(t, "empty", "empty@test.com", "password123")

	rec := app.request(http.MethodGet, "/api/v1/dashboard", "", token)
	expectStatus(t, rec, http.StatusOK)
	if dash := parseJSON(t, rec); dash["totalBalance"].(float64) != 0 {
		t.Errorf("expected zero balance, got %v", dash["totalBalance"])
	}

	for _, path := range []string{
		"/api/v1/dashboard/spending-categories",
		"/api/v1/dashboard/recent-activity",
		"/api/v1/dashboard/investment-performance",
		"/api/v1/dashboard/market-overview",
		"/api/v1/transactions/recent",
	} {
		t.Run(path, func(t *testing.T) {
			rec := app.request(http.MethodGet, path, "", token)
			expectStatus(t, rec, http.StatusOK)
			if rows := parseArray(t, rec); len(rows) != 0 {
				t.Errorf("expected empty list, got %d rows", len(rows))
			}
		})
	}

	rec = app.request(http.MethodGet, "/api/v1/dashboard/monthly-stats", "", token)
	expectStatus(t, rec, http.StatusOK)
	if points := parseArray(t, rec); len(points) != 12 {
		t.Errorf("expected 12 months, got %d", len(points))
	}
}

func TestReportFlow_MonthlyStatsAndSpending(t *testing.T) {
	app := setupApp(t, fixedClock)
	token, _ := app.registerUser(t, "stats", "stats@test.com", "password123")

	app.addTransaction(t, token, "2024-01-15", "income", "salary", "800")
	app.addTransaction(t, token, "2024-03-02", "expense", "food", "75")
	app.addTransaction(t, token, "2024-03-05", "expense", "transport", "25")
	app.addTransaction(t, token, "2023-12-31", "income", "salary", "999")

	rec := app.request(http.MethodGet, "/api/v1/dashboard/monthly-stats", "", token)
	expectStatus(t, rec, http.StatusOK)
	points := parseArray(t, rec)
	if points[0]["month"] != "Jan" || points[0]["income"].(float64) != 800 {
		t.Errorf("unexpected January %v", points[0])
	}
	if points[2]["expenses"].(float64) != 100 {
		t.Errorf("expected March expenses 100, got %v", points[2]["expenses"])
	}

	rec = app.request(http.MethodGet, "/api/v1/dashboard/spending-categories", "", token)
	expectStatus(t, rec, http.StatusOK)
	shares := parseArray(t, rec)
	if len(shares) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(shares))
	}
	if shares[0]["name"] != "Food" || shares[0]["value"].(float64) != 75 {
		t.Errorf("unexpected top share %v", shares[0])
	}
}

func TestReportFlow_BusinessDaySeries(t *testing.T) {
	app := setupApp(t, fixedClock)
	token, _ := app.registerUser(t, "days", "days@test.com", "password123")

	// Mon 11 .. Fri 15 March, plus a weekend row that never shows.
	app.addTransaction(t, token, "2024-03-11", "investment", "stocks", "10")
	app.addTransaction(t, token, "2024-03-13", "investment", "bonds", "30")
	app.addTransaction(t, token, "2024-03-15", "investment", "crypto", "50")
	app.addTransaction(t, token, "2024-03-15", "expense", "food", "5")
	app.addTransaction(t, token, "2024-03-09", "investment", "stocks", "99")

	rec := app.request(http.MethodGet, "/api/v1/dashboard/investment-performance", "", token)
	expectStatus(t, rec, http.StatusOK)
	points := parseArray(t, rec)
	if len(points) != 3 {
		t.Fatalf("expected 3 active business days, got %d", len(points))
	}
	if points[0]["date"] != "2024-03-11" || points[2]["value"].(float64) != 50 {
		t.Errorf("unexpected series %v", points)
	}

	rec = app.request(http.MethodGet, "/api/v1/dashboard/market-overview", "", token)
	expectStatus(t, rec, http.StatusOK)
	points = parseArray(t, rec)
	if last := points[len(points)-1]; last["date"] != "2024-03-15" || last["value"].(float64) != 55 {
		t.Errorf("expected Friday volume 55, got %v", last)
	}
}

func TestReportFlow_PeriodOverview(t *testing.T) {
	app := setupApp(t, fixedClock)
	token, _ := app.registerUser(t, "period", "period@test.com", "password123")

	app.addTransaction(t, token, "2023-12-05", "income", "salary", "100")
	app.addTransaction(t, token, "2024-02-05", "savings", "goals", "40")
	app.addTransaction(t, token, "2024-03-05", "expense", "food", "10")

	rec := app.request(http.MethodGet, "/api/v1/reports/overview?startDate=2023-12-01&endDate=2024-02-29", "", token)
	expectStatus(t, rec, http.StatusOK)
	points := parseArray(t, rec)
	if len(points) != 2 {
		t.Fatalf("expected 2 active months, got %d", len(points))
	}
	if points[0]["period"] != "2023-12" || points[1]["period"] != "2024-02" || points[1]["savings"].(float64) != 40 {
		t.Errorf("unexpected overview %v", points)
	}

	rec = app.request(http.MethodGet, "/api/v1/reports/overview?startDate=2024-03-01&endDate=2024-01-01", "", token)
	expectStatus(t, rec, http.StatusBadRequest)
	if code := errorCode(t, rec); code != "INVALID_RANGE" {
		t.Errorf("expected INVALID_RANGE, got %s", code)
	}

	rec = app.request(http.MethodGet, "/api/v1/reports/overview?startDate=2024-03-01", "", token)
	expectStatus(t, rec, http.StatusBadRequest)
}
