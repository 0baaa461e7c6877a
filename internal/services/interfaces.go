package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/budget"
	"fintrack/internal/compare"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, username, email, password, fullName string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	CountUsers(ctx context.Context, since time.Time) (*UserStats, error)
}

// TransactionInput carries the writable fields of a transaction.
type TransactionInput struct {
	Date        time.Time
	Type        models.TransactionType
	Category    string
	Amount      decimal.Decimal
	Description string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*models.Transaction, error)
	GetUserTransactions(ctx context.Context, userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
}

// BudgetServicer defines the contract for budget limits and evaluations.
type BudgetServicer interface {
	SetLimit(ctx context.Context, userID, category string, limit decimal.Decimal) (*models.BudgetLimit, error)
	GetLimits(ctx context.Context, userID string) ([]models.BudgetLimit, error)
	Overview(ctx context.Context, userID string) (*budget.Report, error)
	Categories(ctx context.Context, userID string) (*budget.Report, error)
}

// Dashboard is the current-month summary with deltas against the previous month.
type Dashboard struct {
	TotalBalance    decimal.Decimal `json:"totalBalance"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	NetSavings      decimal.Decimal `json:"netSavings"`
	Investments     decimal.Decimal `json:"investments"`
	Changes         compare.Changes `json:"changes"`
}

// MonthlyPoint is one month of the yearly income/expense series.
type MonthlyPoint struct {
	Month       string          `json:"month"`
	MonthNumber int             `json:"monthNumber"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
}

// DailyPoint is one business day of a short-horizon series.
type DailyPoint struct {
	Name  string          `json:"name"`
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// PeriodPoint is one month of an explicit-range report.
type PeriodPoint struct {
	Period   string          `json:"period"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
}

// ReportServicer composes ledger reads into the fixed report views.
type ReportServicer interface {
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
	MonthlySeries(ctx context.Context, userID string) ([]MonthlyPoint, error)
	SpendingCategories(ctx context.Context, userID string) ([]aggregate.Share, error)
	BudgetGrid(ctx context.Context, userID string) (*budget.Report, error)
	RecentActivity(ctx context.Context, userID string) ([]models.Transaction, error)
	RecentTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	InvestmentPerformance(ctx context.Context, userID string) ([]DailyPoint, error)
	MarketOverview(ctx context.Context, userID string) ([]DailyPoint, error)
	PeriodOverview(ctx context.Context, userID string, start, end time.Time) ([]PeriodPoint, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
}

// UserStats summarizes the user base for the admin view.
type UserStats struct {
	TotalUsers  int64 `json:"totalUsers"`
	NewUsers30d int64 `json:"newUsers30d"`
	AdminCount  int64 `json:"adminCount"`
}

// TransactionStats summarizes ledger activity across all users.
type TransactionStats struct {
	TotalTransactions int64           `json:"totalTransactions"`
	Transactions24h   int64           `json:"transactions24h"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
}

// AdminStats is the admin dashboard payload.
type AdminStats struct {
	Users        UserStats        `json:"users"`
	Transactions TransactionStats `json:"transactions"`
}

// AdminUser is a user row as listed in the admin view.
type AdminUser struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	IsAdmin          bool      `json:"isAdmin"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	TransactionCount int64     `json:"transactionCount"`
}

// UserUpdate holds the admin-editable user flags; nil leaves a flag unchanged.
type UserUpdate struct {
	IsAdmin  *bool
	IsActive *bool
}

// LogEntry is a system log row joined with the acting user's name.
type LogEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceId"`
	IPAddress    string    `json:"ipAddress"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AdminServicer defines the contract for admin-only operations.
type AdminServicer interface {
	ListUsers(ctx context.Context, page pagination.PageRequest, search string) (*pagination.PageResponse[AdminUser], error)
	UpdateUser(ctx context.Context, userID string, update UserUpdate) (*models.User, error)
	ListLogs(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[LogEntry], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, details map[string]interface{})
}
