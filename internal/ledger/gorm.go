package ledger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/uuid"
)

// gormStore is the database-backed Store.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by db.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) scoped(ctx context.Context, f Filter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", f.UserID)
	if f.Range != nil {
		if !f.Range.Start.IsZero() {
			q = q.Where("date >= ?", f.Range.Start)
		}
		if !f.Range.End.IsZero() {
			q = q.Where("date <= ?", f.Range.End)
		}
	}
	if len(f.Types) > 0 {
		q = q.Where("type IN ?", f.Types)
	}
	if len(f.Categories) > 0 {
		q = q.Where("category IN ?", f.Categories)
	}
	return q
}

// ListTransactions returns every matching row ordered by date, then insertion.
func (s *gormStore) ListTransactions(ctx context.Context, f Filter) ([]models.Transaction, error) {
	var rows []models.Transaction
	if err := s.scoped(ctx, f).Order("date ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// PageTransactions returns one page of matching rows, newest date first, with
// the total match count.
func (s *gormStore) PageTransactions(ctx context.Context, f Filter, page pagination.PageRequest) ([]models.Transaction, int64, error) {
	var total int64
	if err := s.scoped(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []models.Transaction
	if err := s.scoped(ctx, f).
		Order("date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&rows).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, total, nil
}

// RecentTransactions returns up to limit rows by the chosen recency column.
func (s *gormStore) RecentTransactions(ctx context.Context, userID string, order RecentOrder, limit int) ([]models.Transaction, error) {
	orderBy := "created_at DESC, id DESC"
	if order == ByDate {
		orderBy = "date DESC, created_at DESC"
	}

	var rows []models.Transaction
	if err := s.scoped(ctx, Filter{UserID: userID}).Order(orderBy).Limit(limit).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// GetTransaction loads a row owned by userID. A row owned by someone else is
// reported exactly like a missing one.
func (s *gormStore) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrTransactionNotFound
	}
	var tx models.Transaction
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

func (s *gormStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateTransaction persists every field of a row previously loaded with
// GetTransaction.
func (s *gormStore) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := s.db.WithContext(ctx).Save(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *gormStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	if !uuid.IsValid(id) {
		return apperrors.ErrTransactionNotFound
	}
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// UpsertBudgetLimit inserts or replaces the limit for (user, category).
func (s *gormStore) UpsertBudgetLimit(ctx context.Context, limit *models.BudgetLimit) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"limit_amount", "updated_at"}),
	}).Create(limit).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListBudgetLimits returns the user's limits, optionally restricted to the
// given categories.
func (s *gormStore) ListBudgetLimits(ctx context.Context, userID string, categories []string) ([]models.BudgetLimit, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(categories) > 0 {
		q = q.Where("category IN ?", categories)
	}

	var limits []models.BudgetLimit
	if err := q.Order("category ASC").Find(&limits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return limits, nil
}

// FleetStats aggregates across all users. since bounds RecentCount.
func (s *gormStore) FleetStats(ctx context.Context, since time.Time) (*FleetStats, error) {
	var stats FleetStats
	row := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select(
			"COUNT(*) AS total_transactions, "+
				"COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0) AS recent_count, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN ABS(amount) ELSE 0 END), 0) AS total_income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN ABS(amount) ELSE 0 END), 0) AS total_expenses",
			since, models.TransactionTypeIncome, models.TransactionTypeExpense,
		).Row()
	if err := row.Scan(&stats.TotalTransactions, &stats.RecentCount, &stats.TotalIncome, &stats.TotalExpenses); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stats, nil
}
