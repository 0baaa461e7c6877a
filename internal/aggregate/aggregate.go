// Package aggregate sums ledger rows into totals and grouped breakdowns.
//
// Every sum uses the magnitude of the stored amount, so rows written with
// either sign convention aggregate identically.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// GroupBy selects the grouping key for Aggregate.
type GroupBy int

const (
	GroupNone GroupBy = iota
	GroupCategory
	GroupMonth
	GroupWeekday
)

// Totals holds per-type magnitudes for a set of rows.
type Totals struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Savings     decimal.Decimal `json:"savings"`
	Investments decimal.Decimal `json:"investments"`
	Count       int             `json:"count"`
}

// Add folds a single transaction into the totals.
func (t *Totals) Add(tx models.Transaction) {
	amt := tx.Magnitude()
	switch tx.Type {
	case models.TransactionTypeIncome:
		t.Income = t.Income.Add(amt)
	case models.TransactionTypeExpense:
		t.Expenses = t.Expenses.Add(amt)
	case models.TransactionTypeSavings:
		t.Savings = t.Savings.Add(amt)
	case models.TransactionTypeInvestment:
		t.Investments = t.Investments.Add(amt)
	}
	t.Count++
}

// Balance is income minus every outflow type.
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expenses).Sub(t.Savings).Sub(t.Investments)
}

// Volume is the sum of all magnitudes regardless of type.
func (t Totals) Volume() decimal.Decimal {
	return t.Income.Add(t.Expenses).Add(t.Savings).Add(t.Investments)
}

// Of returns the magnitude sum for a single type.
func (t Totals) Of(txType models.TransactionType) decimal.Decimal {
	switch txType {
	case models.TransactionTypeIncome:
		return t.Income
	case models.TransactionTypeExpense:
		return t.Expenses
	case models.TransactionTypeSavings:
		return t.Savings
	case models.TransactionTypeInvestment:
		return t.Investments
	}
	return decimal.Zero
}

// Group is one bucket of a grouped result.
//
// For GroupMonth, Key is "YYYY-MM" and Label the month abbreviation. For
// GroupWeekday, Key is the calendar date and Label the weekday name.
type Group struct {
	Key    string
	Label  string
	Date   time.Time
	Totals Totals
}

// Result is the outcome of Aggregate. Groups is empty for GroupNone.
type Result struct {
	Totals Totals
	Groups []Group
}

// Sum totals rows without grouping.
func Sum(rows []models.Transaction) Totals {
	var t Totals
	for _, tx := range rows {
		t.Add(tx)
	}
	return t
}

// Aggregate totals rows and splits them by groupBy.
//
// Month groups are ordered by (year, month). Weekday groups hold one entry
// per calendar date, most recent first. Category groups are ordered by name.
func Aggregate(rows []models.Transaction, groupBy GroupBy) Result {
	res := Result{Totals: Sum(rows)}
	if groupBy == GroupNone {
		return res
	}

	index := make(map[string]int)
	for _, tx := range rows {
		key, label, date := groupKey(tx, groupBy)
		i, ok := index[key]
		if !ok {
			i = len(res.Groups)
			index[key] = i
			res.Groups = append(res.Groups, Group{Key: key, Label: label, Date: date})
		}
		res.Groups[i].Totals.Add(tx)
	}

	sort.SliceStable(res.Groups, func(i, j int) bool {
		a, b := res.Groups[i], res.Groups[j]
		switch groupBy {
		case GroupMonth:
			return a.Date.Before(b.Date)
		case GroupWeekday:
			return a.Date.After(b.Date)
		default:
			return a.Key < b.Key
		}
	})
	return res
}

func groupKey(tx models.Transaction, groupBy GroupBy) (key, label string, date time.Time) {
	d := models.CalendarDate(tx.Date)
	switch groupBy {
	case GroupMonth:
		first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first.Format("2006-01"), first.Format("Jan"), first
	case GroupWeekday:
		return d.Format("2006-01-02"), d.Weekday().String(), d
	default:
		return tx.Category, tx.Category, time.Time{}
	}
}
