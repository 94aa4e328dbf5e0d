// Package portfolio folds a user's trade ledger into current holdings.
package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/metrics"
	"papertrade/internal/models"
	"papertrade/internal/quote"
)

// LedgerReader is the read side of the ledger the aggregator needs.
type LedgerReader interface {
	DistinctSymbols(ctx context.Context, userID string) ([]string, error)
	TransactionsOf(ctx context.Context, userID, symbol string, txType models.TransactionType) ([]ledger.Entry, error)
}

// Position is one currently held symbol.
type Position struct {
	Symbol           string          `json:"symbol"`
	QuantityHeld     int64           `json:"quantity_held"`
	AverageCostBasis decimal.Decimal `json:"average_cost_basis"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	MarketValue      decimal.Decimal `json:"market_value"`
	LifetimeReturn   decimal.Decimal `json:"lifetime_return"`

	BoughtQuantity   int64           `json:"bought_quantity"`
	SoldQuantity     int64           `json:"sold_quantity"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	SaleProceeds     decimal.Decimal `json:"sale_proceeds"`
	AverageExitPrice decimal.Decimal `json:"average_exit_price"`
}

// Aggregator computes positions from the ledger and live quotes.
type Aggregator struct {
	ledger LedgerReader
	quotes quote.Provider
}

// NewAggregator creates an Aggregator.
func NewAggregator(l LedgerReader, quotes quote.Provider) *Aggregator {
	return &Aggregator{ledger: l, quotes: quotes}
}

// ComputeHoldings returns the user's open positions in order of first trade.
//
// Every symbol the user ever traded is folded. Symbols whose sales have
// consumed every purchased share are skipped and never quoted. The call fails
// as a whole with DATA_INCONSISTENCY when a symbol has sales but no purchases,
// and with QUOTE_UNAVAILABLE when any held symbol cannot be priced.
//
// The lifetime return blends realized and unrealized gains:
//
//	(average_exit_price − average_cost_basis) × bought_quantity
//
// where average_exit_price = (sale_proceeds + held × current_price) / bought_quantity.
// It is computed as exit_value − total_cost, which is the same quantity
// without a rounding division.
func (a *Aggregator) ComputeHoldings(ctx context.Context, userID string) ([]Position, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.AggregationDuration)

	positions, err := a.computeHoldings(ctx, userID)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			metrics.RecordAggregationFailure(appErr.Code)
		}
		return nil, err
	}
	return positions, nil
}

func (a *Aggregator) computeHoldings(ctx context.Context, userID string) ([]Position, error) {
	symbols, err := a.ledger.DistinctSymbols(ctx, userID)
	if err != nil {
		return nil, err
	}

	positions := make([]Position, 0, len(symbols))
	for _, symbol := range symbols {
		pos, err := a.fold(ctx, userID, symbol)
		if err != nil {
			return nil, err
		}
		if pos.QuantityHeld <= 0 {
			continue
		}
		if err := a.price(ctx, pos); err != nil {
			return nil, err
		}
		positions = append(positions, *pos)
	}
	return positions, nil
}

// fold sums purchases and sales of one symbol. Pricing fields are left zero.
func (a *Aggregator) fold(ctx context.Context, userID, symbol string) (*Position, error) {
	purchases, err := a.ledger.TransactionsOf(ctx, userID, symbol, models.TransactionTypePurchase)
	if err != nil {
		return nil, err
	}
	sales, err := a.ledger.TransactionsOf(ctx, userID, symbol, models.TransactionTypeSale)
	if err != nil {
		return nil, err
	}

	pos := &Position{Symbol: symbol}
	pos.BoughtQuantity, pos.TotalCost = sum(purchases)
	pos.SoldQuantity, pos.SaleProceeds = sum(sales)

	if pos.BoughtQuantity == 0 {
		logger.Get().Errorw("Ledger has sales without purchases",
			"user_id", userID, "symbol", symbol, "sold_quantity", pos.SoldQuantity)
		return nil, apperrors.Wrap(apperrors.ErrDataInconsistency,
			fmt.Errorf("symbol %s has no purchases but %d shares sold", symbol, pos.SoldQuantity))
	}

	pos.AverageCostBasis = pos.TotalCost.Div(decimal.NewFromInt(pos.BoughtQuantity))
	pos.QuantityHeld = pos.BoughtQuantity - pos.SoldQuantity
	return pos, nil
}

// price fills the live-price dependent fields of a held position.
func (a *Aggregator) price(ctx context.Context, pos *Position) error {
	q, err := a.quotes.Lookup(ctx, pos.Symbol)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrQuoteUnavailable, fmt.Errorf("pricing %s: %w", pos.Symbol, err))
	}

	held := decimal.NewFromInt(pos.QuantityHeld)
	pos.CurrentPrice = q.Price
	pos.MarketValue = held.Mul(q.Price)

	exitValue := pos.SaleProceeds.Add(pos.MarketValue)
	pos.AverageExitPrice = exitValue.Div(decimal.NewFromInt(pos.BoughtQuantity))
	pos.LifetimeReturn = exitValue.Sub(pos.TotalCost)
	return nil
}

func sum(entries []ledger.Entry) (int64, decimal.Decimal) {
	var qty int64
	total := decimal.Zero
	for _, e := range entries {
		qty += e.Quantity
		total = total.Add(e.UnitPrice.Mul(decimal.NewFromInt(e.Quantity)))
	}
	return qty, total
}
