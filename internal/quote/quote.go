// Package quote looks up current stock prices.
package quote

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrSymbolNotFound is returned when the upstream source does not know the symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

var symbolPattern = regexp.MustCompile(`^\^?[A-Z0-9][A-Z0-9.=-]{0,14}$`)

// Quote is the current price of a single symbol.
type Quote struct {
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	AsOf     time.Time       `json:"as_of"`
}

// Provider returns the current quote for a symbol. Implementations must return
// ErrSymbolNotFound (possibly wrapped) for unknown symbols, and any other error
// when the source could not be reached or returned garbage.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// NormalizeSymbol trims surrounding whitespace and upper-cases the symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidSymbol reports whether a normalized symbol has a plausible ticker shape.
func ValidSymbol(symbol string) bool {
	return symbolPattern.MatchString(symbol)
}
