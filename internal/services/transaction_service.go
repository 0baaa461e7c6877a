package services

import (
	"context"
	"strings"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/period"
)

// DefaultTransactionPageLimit is the page size of the transaction listing.
const DefaultTransactionPageLimit = 20

// transactionService handles transaction-related business logic.
type transactionService struct {
	store ledger.Store
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(store ledger.Store) TransactionServicer {
	return &transactionService{store: store}
}

func validateTransactionInput(in *TransactionInput) error {
	in.Category = strings.TrimSpace(in.Category)
	switch {
	case in.Date.IsZero():
		return apperrors.InvalidField("date", "date is required")
	case !in.Type.Valid():
		return apperrors.InvalidField("type", "type must be one of income, expense, savings, investment")
	case in.Category == "":
		return apperrors.InvalidField("category", "category is required")
	case in.Amount.IsZero():
		return apperrors.InvalidField("amount", "amount must not be zero")
	case !models.WholeCents(in.Amount):
		return apperrors.InvalidField("amount", "amount must have at most 2 decimal places")
	}
	return nil
}

func applyInput(tx *models.Transaction, in TransactionInput) {
	tx.Date = models.CalendarDate(in.Date)
	tx.Type = in.Type
	tx.Category = in.Category
	tx.Amount = models.SignedAmount(in.Type, in.Amount)
	tx.Description = strings.TrimSpace(in.Description)
}

// CreateTransaction records a new ledger entry for userID.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	if err := validateTransactionInput(&in); err != nil {
		return nil, err
	}

	tx := &models.Transaction{UserID: userID}
	applyInput(tx, in)

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// UpdateTransaction replaces every writable field of an owned transaction.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, in TransactionInput) (*models.Transaction, error) {
	if err := validateTransactionInput(&in); err != nil {
		return nil, err
	}

	tx, err := s.store.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	applyInput(tx, in)

	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// DeleteTransaction removes an owned transaction. Someone else's transaction
// is reported as not found.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return s.store.DeleteTransaction(ctx, userID, transactionID)
}

// GetTransactionByID returns an owned transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	return s.store.GetTransaction(ctx, userID, transactionID)
}

// GetUserTransactions returns a filtered page of the user's transactions,
// newest first.
func (s *transactionService) GetUserTransactions(ctx context.Context, userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults(DefaultTransactionPageLimit)

	f := ledger.Filter{UserID: userID}
	if filter.FromDate != nil || filter.ToDate != nil {
		r := period.Range{}
		if filter.FromDate != nil {
			r.Start = models.CalendarDate(*filter.FromDate)
		}
		if filter.ToDate != nil {
			r.End = models.CalendarDate(*filter.ToDate)
		}
		if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
			return nil, apperrors.ErrInvalidRange
		}
		f.Range = &r
	}
	if filter.Type != nil {
		if !filter.Type.Valid() {
			return nil, apperrors.InvalidField("type", "type must be one of income, expense, savings, investment")
		}
		f.Types = []models.TransactionType{*filter.Type}
	}
	if filter.Category != nil && *filter.Category != "" {
		f.Categories = []string{*filter.Category}
	}

	rows, total, err := s.store.PageTransactions(ctx, f, page)
	if err != nil {
		return nil, err
	}
	resp := pagination.NewPageResponse(rows, page.Page, page.Limit, total)
	return &resp, nil
}
