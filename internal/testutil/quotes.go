package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"papertrade/internal/quote"

	"github.com/shopspring/decimal"
)

// FakeQuotes is an in-memory quote.Provider with fixed prices.
type FakeQuotes struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
	errs   map[string]error
	calls  map[string]int
}

var _ quote.Provider = (*FakeQuotes)(nil)

// NewFakeQuotes creates a provider serving the given symbol → price table.
func NewFakeQuotes(prices map[string]string) *FakeQuotes {
	f := &FakeQuotes{
		prices: make(map[string]decimal.Decimal, len(prices)),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
	for sym, p := range prices {
		f.prices[sym] = decimal.RequireFromString(p)
	}
	return f
}

// SetPrice changes the quoted price of a symbol.
func (f *FakeQuotes) SetPrice(symbol, price string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[symbol] = decimal.RequireFromString(price)
}

// FailWith makes lookups of symbol return err.
func (f *FakeQuotes) FailWith(symbol string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[symbol] = err
}

// Calls returns how many times symbol was looked up.
func (f *FakeQuotes) Calls(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[symbol]
}

func (f *FakeQuotes) Lookup(_ context.Context, symbol string) (*quote.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	symbol = quote.NormalizeSymbol(symbol)
	f.calls[symbol]++

	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	price, ok := f.prices[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", quote.ErrSymbolNotFound, symbol)
	}
	return &quote.Quote{
		Symbol:   symbol,
		Name:     symbol + " Corp",
		Price:    price,
		Currency: "USD",
		AsOf:     time.Date(2024, 6, 3, 20, 0, 0, 0, time.UTC),
	}, nil
}
