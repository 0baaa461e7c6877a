package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetLimit is a per-category spending ceiling. A missing row means no
// ceiling is tracked for the category, which is distinct from a zero limit.
type BudgetLimit struct {
	UserID      string          `gorm:"type:uuid;primaryKey" json:"user_id"`
	Category    string          `gorm:"primaryKey" json:"category"`
	LimitAmount decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"limit_amount"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
