package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome     TransactionType = "income"
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeSavings    TransactionType = "savings"
	TransactionTypeInvestment TransactionType = "investment"
)

// TransactionTypes lists every supported type in display order.
var TransactionTypes = []TransactionType{
	TransactionTypeIncome,
	TransactionTypeExpense,
	TransactionTypeSavings,
	TransactionTypeInvestment,
}

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeSavings, TransactionTypeInvestment:
		return true
	}
	return false
}

// Transaction is a single ledger entry. Date is a calendar date stored at
// midnight UTC; CreatedAt records insertion time and drives recency ordering.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index:idx_transactions_user_date" json:"user_id"`
	Date        time.Time       `gorm:"not null;index:idx_transactions_user_date" json:"date"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Category    string          `gorm:"not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	Description string          `json:"description"`
}

// BeforeSave normalizes the stored sign: expenses are negative, every other
// type is positive. Readers still aggregate magnitudes so rows written under
// either convention sum the same way.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Amount = SignedAmount(t.Type, t.Amount)
	t.Date = CalendarDate(t.Date)
	return nil
}

// Magnitude returns the absolute amount regardless of stored sign.
func (t *Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

// SignedAmount applies the canonical sign for a transaction type.
func SignedAmount(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType == TransactionTypeExpense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
