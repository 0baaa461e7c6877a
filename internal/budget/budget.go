// Package budget joins expense totals with per-category spending limits.
package budget

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Labeler resolves a category value to its display label.
type Labeler interface {
	Label(category string) string
}

// Line is the evaluation of one category.
type Line struct {
	Category    string          `json:"category"`
	Label       string          `json:"label"`
	Spent       decimal.Decimal `json:"spent"`
	Limit       decimal.Decimal `json:"limit"`
	HasLimit    bool            `json:"hasLimit"`
	Utilization float64         `json:"utilization"`
	OverBudget  bool            `json:"overBudget"`
}

// Report is an ordered set of lines with their totals.
type Report struct {
	Lines       []Line          `json:"categories"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
}

// Spend maps a category to its expense magnitude for the period.
type Spend map[string]decimal.Decimal

// Evaluator builds budget reports against a fixed expense taxonomy.
type Evaluator struct {
	labels  Labeler
	expense []string
}

// NewEvaluator returns an Evaluator. expense is the ordered list of expense
// categories used by Overview and Grid.
func NewEvaluator(labels Labeler, expense []string) *Evaluator {
	return &Evaluator{labels: labels, expense: expense}
}

// Evaluate computes a single line. A nil limit means no limit is tracked.
// Utilization is only computed for a positive limit.
func Evaluate(category string, spent decimal.Decimal, limit *decimal.Decimal) Line {
	line := Line{Category: category, Label: category, Spent: spent.Abs()}
	if limit == nil {
		return line
	}
	line.HasLimit = true
	line.Limit = *limit
	if limit.IsPositive() {
		line.Utilization = line.Spent.Div(*limit).Mul(hundred).InexactFloat64()
		line.OverBudget = line.Utilization > 100
	}
	return line
}

// Overview reports every category that has a limit and belongs to the
// expense taxonomy, in taxonomy order.
func (e *Evaluator) Overview(spend Spend, limits []models.BudgetLimit) Report {
	byCategory := indexLimits(limits)
	var cats []string
	for _, c := range e.expense {
		if _, ok := byCategory[c]; ok {
			cats = append(cats, c)
		}
	}
	return e.build(cats, spend, byCategory)
}

// Categories reports every category with expense activity, including those
// without a limit. Ordered by spend descending, ties by name.
func (e *Evaluator) Categories(spend Spend, limits []models.BudgetLimit) Report {
	cats := make([]string, 0, len(spend))
	for c := range spend {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if cmp := spend[cats[i]].Cmp(spend[cats[j]]); cmp != 0 {
			return cmp > 0
		}
		return cats[i] < cats[j]
	})
	return e.build(cats, spend, indexLimits(limits))
}

// Grid reports every expense taxonomy category in taxonomy order.
func (e *Evaluator) Grid(spend Spend, limits []models.BudgetLimit) Report {
	cats := make([]string, len(e.expense))
	copy(cats, e.expense)
	return e.build(cats, spend, indexLimits(limits))
}

func (e *Evaluator) build(cats []string, spend Spend, limits map[string]decimal.Decimal) Report {
	report := Report{Lines: make([]Line, 0, len(cats))}
	for _, c := range cats {
		var limit *decimal.Decimal
		if l, ok := limits[c]; ok {
			limit = &l
		}
		line := Evaluate(c, spend[c], limit)
		if e.labels != nil {
			line.Label = e.labels.Label(c)
		}
		report.Lines = append(report.Lines, line)
		report.TotalSpent = report.TotalSpent.Add(line.Spent)
		report.TotalBudget = report.TotalBudget.Add(line.Limit)
	}
	return report
}

func indexLimits(limits []models.BudgetLimit) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(limits))
	for _, l := range limits {
		out[l.Category] = l.LimitAmount
	}
	return out
}
