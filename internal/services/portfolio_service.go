package services

import (
	"context"

	"github.com/shopspring/decimal"

	"papertrade/internal/portfolio"
)

// HoldingsComputer folds a user's ledger into open positions.
type HoldingsComputer interface {
	ComputeHoldings(ctx context.Context, userID string) ([]portfolio.Position, error)
}

// CashReader returns a user's cash balance.
type CashReader interface {
	CashBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// portfolioService combines positions with the user's cash.
type portfolioService struct {
	holdings HoldingsComputer
	cash     CashReader
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(holdings HoldingsComputer, cash CashReader) PortfolioServicer {
	return &portfolioService{holdings: holdings, cash: cash}
}

// GetPortfolio returns open positions, cash, and the grand total.
// Any aggregation failure fails the whole call.
func (s *portfolioService) GetPortfolio(ctx context.Context, userID string) (*PortfolioSummary, error) {
	cash, err := s.cash.CashBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	positions, err := s.holdings.ComputeHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdingsValue := decimal.Zero
	for _, p := range positions {
		holdingsValue = holdingsValue.Add(p.MarketValue)
	}

	return &PortfolioSummary{
		Positions:     positions,
		Cash:          cash,
		HoldingsValue: holdingsValue,
		TotalValue:    cash.Add(holdingsValue),
	}, nil
}
