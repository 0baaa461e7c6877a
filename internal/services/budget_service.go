package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/budget"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/period"
	"fintrack/internal/taxonomy"
)

// budgetService handles spending limits and their evaluation.
type budgetService struct {
	store     ledger.Store
	taxonomy  *taxonomy.Taxonomy
	periods   *period.Resolver
	evaluator *budget.Evaluator
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(store ledger.Store, tax *taxonomy.Taxonomy, periods *period.Resolver) BudgetServicer {
	return &budgetService{
		store:     store,
		taxonomy:  tax,
		periods:   periods,
		evaluator: budget.NewEvaluator(tax, tax.Values(models.TransactionTypeExpense)),
	}
}

// SetLimit creates or replaces the user's limit for a category.
func (s *budgetService) SetLimit(ctx context.Context, userID, category string, limit decimal.Decimal) (*models.BudgetLimit, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.InvalidField("category", "category is required")
	}
	if !limit.IsPositive() {
		return nil, apperrors.ErrInvalidBudgetLimit
	}
	if !models.WholeCents(limit) {
		return nil, apperrors.InvalidField("limit", "limit must have at most 2 decimal places")
	}

	row := &models.BudgetLimit{UserID: userID, Category: category, LimitAmount: limit}
	if err := s.store.UpsertBudgetLimit(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// GetLimits returns every limit the user has set.
func (s *budgetService) GetLimits(ctx context.Context, userID string) ([]models.BudgetLimit, error) {
	limits, err := s.store.ListBudgetLimits(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	if limits == nil {
		limits = []models.BudgetLimit{}
	}
	return limits, nil
}

// Overview evaluates the categories the user has limited, current month.
func (s *budgetService) Overview(ctx context.Context, userID string) (*budget.Report, error) {
	spend, err := monthlySpend(ctx, s.store, userID, s.periods.CurrentMonth())
	if err != nil {
		return nil, err
	}
	limits, err := s.store.ListBudgetLimits(ctx, userID, s.taxonomy.Values(models.TransactionTypeExpense))
	if err != nil {
		return nil, err
	}
	report := s.evaluator.Overview(spend, limits)
	return &report, nil
}

// Categories evaluates every category with expense activity this month.
func (s *budgetService) Categories(ctx context.Context, userID string) (*budget.Report, error) {
	spend, err := monthlySpend(ctx, s.store, userID, s.periods.CurrentMonth())
	if err != nil {
		return nil, err
	}
	limits, err := s.store.ListBudgetLimits(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	report := s.evaluator.Categories(spend, limits)
	return &report, nil
}

// monthlySpend sums expense magnitudes per category over r.
func monthlySpend(ctx context.Context, store ledger.Store, userID string, r period.Range) (budget.Spend, error) {
	rows, err := store.ListTransactions(ctx, ledger.Filter{
		UserID: userID,
		Range:  &r,
		Types:  []models.TransactionType{models.TransactionTypeExpense},
	})
	if err != nil {
		return nil, err
	}

	res := aggregate.Aggregate(rows, aggregate.GroupCategory)
	spend := make(budget.Spend, len(res.Groups))
	for _, g := range res.Groups {
		spend[g.Key] = g.Totals.Expenses
	}
	return spend, nil
}
