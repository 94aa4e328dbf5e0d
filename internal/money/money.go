// Package money formats decimal amounts for display.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD renders an amount as a US dollar string, e.g. "$1,234.50" or "-$140.00".
// Amounts are rounded half away from zero to whole cents.
func USD(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	return gomoney.New(cents, gomoney.USD).Display()
}
