// Package ledger is the read/write boundary for transactions and budget
// limits. Every read is scoped to a single user.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/period"
)

// Filter narrows a transaction read. Zero values mean "no constraint" except
// UserID, which is always required. A Range bound left at its zero value is
// open on that side.
type Filter struct {
	UserID     string
	Range      *period.Range
	Types      []models.TransactionType
	Categories []string
}

// RecentOrder selects the recency column for RecentTransactions.
type RecentOrder int

const (
	// ByCreated orders by insertion time.
	ByCreated RecentOrder = iota
	// ByDate orders by the transaction's calendar date.
	ByDate
)

// FleetStats are cross-user transaction figures for the admin view.
type FleetStats struct {
	TotalTransactions int64
	RecentCount       int64
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
}

// Store is implemented by the gorm-backed ledger and its caching decorator.
type Store interface {
	ListTransactions(ctx context.Context, f Filter) ([]models.Transaction, error)
	PageTransactions(ctx context.Context, f Filter, page pagination.PageRequest) ([]models.Transaction, int64, error)
	RecentTransactions(ctx context.Context, userID string, order RecentOrder, limit int) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error

	UpsertBudgetLimit(ctx context.Context, limit *models.BudgetLimit) error
	ListBudgetLimits(ctx context.Context, userID string, categories []string) ([]models.BudgetLimit, error)

	FleetStats(ctx context.Context, since time.Time) (*FleetStats, error)
}
