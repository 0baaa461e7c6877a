package aggregate

import (
	"math"
	"testing"

	"fintrack/internal/models"
)

func TestCategoryShares(t *testing.T) {
	d := day(2024, 5, 1)
	rows := []models.Transaction{
		tx(models.TransactionTypeExpense, "food", "-300", d),
		tx(models.TransactionTypeExpense, "transport", "-100", d),
		tx(models.TransactionTypeExpense, "housing", "-600", d),
		tx(models.TransactionTypeIncome, "salary", "5000", d),
	}

	got := CategoryShares(rows)
	want := []struct {
		name  string
		value float64
	}{
		{"housing", 60},
		{"food", 30},
		{"transport", 10},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d shares, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Value != w.value {
			t.Errorf("share %d: expected %s %.1f, got %s %.1f", i, w.name, w.value, got[i].Name, got[i].Value)
		}
	}
}

func TestCategorySharesRounding(t *testing.T) {
	d := day(2024, 5, 1)
	rows := []models.Transaction{
		tx(models.TransactionTypeExpense, "a", "1", d),
		tx(models.TransactionTypeExpense, "b", "1", d),
		tx(models.TransactionTypeExpense, "c", "1", d),
	}

	got := CategoryShares(rows)
	var sum float64
	for _, s := range got {
		if s.Value != 33.3 {
			t.Errorf("%s: expected 33.3, got %v", s.Name, s.Value)
		}
		sum += s.Value
	}
	if math.Abs(sum-100) > 0.5 {
		t.Errorf("shares should sum to about 100, got %v", sum)
	}
	if got[0].Name != "a" || got[2].Name != "c" {
		t.Errorf("ties should be ordered by name, got %s..%s", got[0].Name, got[2].Name)
	}
}

func TestCategorySharesOmitsZero(t *testing.T) {
	d := day(2024, 5, 1)
	rows := []models.Transaction{
		tx(models.TransactionTypeExpense, "food", "0", d),
		tx(models.TransactionTypeExpense, "transport", "-40", d),
	}
	got := CategoryShares(rows)
	if len(got) != 1 || got[0].Name != "transport" || got[0].Value != 100 {
		t.Errorf("unexpected shares %+v", got)
	}
}

func TestCategorySharesEmpty(t *testing.T) {
	got := CategoryShares([]models.Transaction{tx(models.TransactionTypeIncome, "salary", "10", day(2024, 5, 1))})
	if len(got) != 0 {
		t.Errorf("expected no shares, got %+v", got)
	}
}
