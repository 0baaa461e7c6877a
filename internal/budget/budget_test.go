package budget

import (
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/taxonomy"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestEvaluator() *Evaluator {
	tax := taxonomy.Default()
	return NewEvaluator(tax, tax.Values(models.TransactionTypeExpense))
}

func limit(category, amount string) models.BudgetLimit {
	return models.BudgetLimit{UserID: "u1", Category: category, LimitAmount: d(amount)}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		spent    string
		limit    *string
		wantUtil float64
		wantOver bool
		wantHas  bool
	}{
		{"no limit", "500", nil, 0, false, false},
		{"zero limit", "500", strPtr("0"), 0, false, true},
		{"half used", "500", strPtr("1000"), 50, false, true},
		{"exactly full", "1000", strPtr("1000"), 100, false, true},
		{"over", "1200", strPtr("1000"), 120, true, true},
		{"negative stored spend", "-500", strPtr("1000"), 50, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l *decimal.Decimal
			if tt.limit != nil {
				v := d(*tt.limit)
				l = &v
			}
			got := Evaluate("food", d(tt.spent), l)
			if got.Utilization != tt.wantUtil {
				t.Errorf("utilization: expected %v, got %v", tt.wantUtil, got.Utilization)
			}
			if got.OverBudget != tt.wantOver {
				t.Errorf("overBudget: expected %v, got %v", tt.wantOver, got.OverBudget)
			}
			if got.HasLimit != tt.wantHas {
				t.Errorf("hasLimit: expected %v, got %v", tt.wantHas, got.HasLimit)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestOverviewVersusCategories(t *testing.T) {
	e := newTestEvaluator()
	spend := Spend{"food": d("500"), "transport": d("500")}
	limits := []models.BudgetLimit{limit("food", "1000")}

	overview := e.Overview(spend, limits)
	if len(overview.Lines) != 1 {
		t.Fatalf("overview: expected 1 line, got %d", len(overview.Lines))
	}
	if overview.Lines[0].Category != "food" || overview.Lines[0].Utilization != 50 {
		t.Errorf("overview: unexpected line %+v", overview.Lines[0])
	}
	if !overview.TotalSpent.Equal(d("500")) || !overview.TotalBudget.Equal(d("1000")) {
		t.Errorf("overview totals: spent %s budget %s", overview.TotalSpent, overview.TotalBudget)
	}

	cats := e.Categories(spend, limits)
	if len(cats.Lines) != 2 {
		t.Fatalf("categories: expected 2 lines, got %d", len(cats.Lines))
	}
	if cats.Lines[0].Category != "food" || cats.Lines[0].Utilization != 50 {
		t.Errorf("categories: unexpected first line %+v", cats.Lines[0])
	}
	if cats.Lines[1].Category != "transport" || cats.Lines[1].Utilization != 0 || cats.Lines[1].HasLimit {
		t.Errorf("categories: unexpected second line %+v", cats.Lines[1])
	}
	if !cats.TotalSpent.Equal(d("1000")) {
		t.Errorf("categories total spent: expected 1000, got %s", cats.TotalSpent)
	}
}

func TestOverviewIgnoresNonExpenseLimits(t *testing.T) {
	e := newTestEvaluator()
	limits := []models.BudgetLimit{limit("salary", "100"), limit("housing", "800")}

	got := e.Overview(Spend{}, limits)
	if len(got.Lines) != 1 || got.Lines[0].Category != "housing" {
		t.Fatalf("expected only housing, got %+v", got.Lines)
	}
	if got.Lines[0].Label != "Housing" {
		t.Errorf("expected label Housing, got %s", got.Lines[0].Label)
	}
}

func TestGridCoversTaxonomy(t *testing.T) {
	e := newTestEvaluator()
	got := e.Grid(Spend{"other_expense": d("25")}, []models.BudgetLimit{limit("other_expense", "20")})

	if len(got.Lines) != 8 {
		t.Fatalf("expected 8 grid lines, got %d", len(got.Lines))
	}
	if got.Lines[0].Category != "food" {
		t.Errorf("expected food first, got %s", got.Lines[0].Category)
	}
	last := got.Lines[7]
	if last.Category != "other_expense" || !last.OverBudget || last.Label != "Other Expense" {
		t.Errorf("unexpected last line %+v", last)
	}
	if got.Lines[1].Utilization != 0 || got.Lines[1].OverBudget {
		t.Errorf("category without spend or limit should be idle, got %+v", got.Lines[1])
	}
}
