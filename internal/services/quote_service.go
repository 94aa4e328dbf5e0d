package services

import (
	"context"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/quote"
)

type quoteService struct {
	quotes quote.Provider
}

// NewQuoteService creates a new QuoteServicer.
func NewQuoteService(quotes quote.Provider) QuoteServicer {
	return &quoteService{quotes: quotes}
}

// GetQuote returns the current quote for a symbol.
func (s *quoteService) GetQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	symbol = quote.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidSymbol, "Missing symbol")
	}
	return lookupQuote(ctx, s.quotes, symbol)
}
