package models

import "github.com/shopspring/decimal"

// CentPlaces is the scale of every stored amount column.
const CentPlaces = 2

// WholeCents reports whether d is representable at CentPlaces without
// rounding.
func WholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(CentPlaces))
}

func init() {
	// Amounts are rendered as plain JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
