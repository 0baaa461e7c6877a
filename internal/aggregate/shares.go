package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// Share is one slice of the expense breakdown.
type Share struct {
	Name   string          `json:"name"`
	Value  float64         `json:"value"`
	Amount decimal.Decimal `json:"amount"`
}

var hundred = decimal.NewFromInt(100)

// CategoryShares builds the expense-only category breakdown. Categories with
// no spend are omitted. Values are percentages of total spend rounded to one
// decimal place, or 0 when total spend is 0. Ordered by amount descending,
// ties by name.
func CategoryShares(rows []models.Transaction) []Share {
	expenses := make([]models.Transaction, 0, len(rows))
	for _, tx := range rows {
		if tx.Type == models.TransactionTypeExpense {
			expenses = append(expenses, tx)
		}
	}

	res := Aggregate(expenses, GroupCategory)
	total := res.Totals.Expenses

	shares := make([]Share, 0, len(res.Groups))
	for _, g := range res.Groups {
		amt := g.Totals.Expenses
		if amt.IsZero() {
			continue
		}
		shares = append(shares, Share{Name: g.Key, Amount: amt, Value: percentOf(amt, total)})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if c := shares[i].Amount.Cmp(shares[j].Amount); c != 0 {
			return c > 0
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(hundred).Round(1).InexactFloat64()
}
