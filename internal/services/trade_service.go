package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/metrics"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
	"papertrade/internal/quote"
)

// tradeService executes simulated buys and sells against the ledger.
type tradeService struct {
	ledger ledger.Store
	quotes quote.Provider
}

// NewTradeService creates a new TradeServicer.
func NewTradeService(store ledger.Store, quotes quote.Provider) TradeServicer {
	return &tradeService{ledger: store, quotes: quotes}
}

// Buy purchases shares at the current price, debiting the user's cash.
func (s *tradeService) Buy(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error) {
	return s.execute(ctx, userID, symbol, shares, models.TransactionTypePurchase)
}

// Sell sells shares the user holds at the current price, crediting the proceeds.
func (s *tradeService) Sell(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error) {
	return s.execute(ctx, userID, symbol, shares, models.TransactionTypeSale)
}

func (s *tradeService) execute(ctx context.Context, userID, symbol string, shares int64, txType models.TransactionType) (*models.Transaction, error) {
	symbol = quote.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidSymbol, "Missing symbol")
	}
	if shares < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Shares must be a positive integer")
	}

	q, err := lookupQuote(ctx, s.quotes, symbol)
	if err != nil {
		metrics.RecordTrade(string(txType), "rejected")
		return nil, err
	}

	amount := q.Price.Mul(decimal.NewFromInt(shares))
	txn := &models.Transaction{
		UserID:    userID,
		Type:      txType,
		Symbol:    symbol,
		Quantity:  shares,
		UnitPrice: q.Price,
	}

	err = s.ledger.Atomic(ctx, func(store ledger.Store) error {
		cash, err := store.CashBalance(ctx, userID)
		if err != nil {
			return err
		}

		switch txType {
		case models.TransactionTypePurchase:
			if cash.LessThan(amount) {
				return apperrors.ErrInsufficientFunds
			}
			if err := store.AdjustCash(ctx, userID, amount.Neg()); err != nil {
				return err
			}
		case models.TransactionTypeSale:
			held, err := store.HeldQuantity(ctx, userID, symbol)
			if err != nil {
				return err
			}
			if held < shares {
				return apperrors.ErrInsufficientShares
			}
			if err := store.AdjustCash(ctx, userID, amount); err != nil {
				return err
			}
		default:
			return apperrors.ErrInvalidTransactionType
		}

		return store.AppendTransaction(ctx, txn)
	})
	if err != nil {
		metrics.RecordTrade(string(txType), "rejected")
		return nil, err
	}

	metrics.RecordTrade(string(txType), "ok")
	logger.Get().Infow("Trade executed",
		"user_id", userID,
		"type", txType,
		"symbol", symbol,
		"shares", shares,
		"unit_price", q.Price.String(),
	)
	return txn, nil
}

// GetHistory returns a page of the user's trades, newest first.
func (s *tradeService) GetHistory(ctx context.Context, userID string, filter ledger.Filter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must not be after to")
	}
	filter.Symbol = quote.NormalizeSymbol(filter.Symbol)

	return s.ledger.History(ctx, userID, filter, page)
}

// lookupQuote maps provider failures onto the API error taxonomy.
func lookupQuote(ctx context.Context, quotes quote.Provider, symbol string) (*quote.Quote, error) {
	q, err := quotes.Lookup(ctx, symbol)
	if err != nil {
		if errors.Is(err, quote.ErrSymbolNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInvalidSymbol, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
	}
	return q, nil
}
