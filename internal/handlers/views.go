package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"papertrade/internal/models"
	"papertrade/internal/money"
	"papertrade/internal/portfolio"
	"papertrade/internal/quote"
	"papertrade/internal/services"
)

// UserResponse represents the user data in a response.
type UserResponse struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	Cash        decimal.Decimal `json:"cash"`
	CashDisplay string          `json:"cash_display"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Cash:        u.Cash,
		CashDisplay: money.USD(u.Cash),
	}
}

// QuoteResponse is a live quote with a formatted price.
type QuoteResponse struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"price_display"`
	Currency     string          `json:"currency"`
	AsOf         time.Time       `json:"as_of"`
}

func newQuoteResponse(q *quote.Quote) QuoteResponse {
	return QuoteResponse{
		Symbol:       q.Symbol,
		Name:         q.Name,
		Price:        q.Price,
		PriceDisplay: money.USD(q.Price),
		Currency:     q.Currency,
		AsOf:         q.AsOf,
	}
}

// TransactionResponse is a ledger row with formatted amounts.
type TransactionResponse struct {
	ID               string                 `json:"id"`
	Type             models.TransactionType `json:"type"`
	Symbol           string                 `json:"symbol"`
	Quantity         int64                  `json:"quantity"`
	UnitPrice        decimal.Decimal        `json:"unit_price"`
	UnitPriceDisplay string                 `json:"unit_price_display"`
	Total            decimal.Decimal        `json:"total"`
	TotalDisplay     string                 `json:"total_display"`
	CreatedAt        time.Time              `json:"created_at"`
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	total := t.Total()
	return TransactionResponse{
		ID:               t.ID,
		Type:             t.Type,
		Symbol:           t.Symbol,
		Quantity:         t.Quantity,
		UnitPrice:        t.UnitPrice,
		UnitPriceDisplay: money.USD(t.UnitPrice),
		Total:            total,
		TotalDisplay:     money.USD(total),
		CreatedAt:        t.CreatedAt,
	}
}

// PositionResponse is a held position with formatted amounts.
type PositionResponse struct {
	Symbol                  string          `json:"symbol"`
	QuantityHeld            int64           `json:"quantity_held"`
	AverageCostBasis        decimal.Decimal `json:"average_cost_basis"`
	AverageCostBasisDisplay string          `json:"average_cost_basis_display"`
	CurrentPrice            decimal.Decimal `json:"current_price"`
	CurrentPriceDisplay     string          `json:"current_price_display"`
	MarketValue             decimal.Decimal `json:"market_value"`
	MarketValueDisplay      string          `json:"market_value_display"`
	LifetimeReturn          decimal.Decimal `json:"lifetime_return"`
	LifetimeReturnDisplay   string          `json:"lifetime_return_display"`
}

func newPositionResponse(p portfolio.Position) PositionResponse {
	return PositionResponse{
		Symbol:                  p.Symbol,
		QuantityHeld:            p.QuantityHeld,
		AverageCostBasis:        p.AverageCostBasis.Round(4),
		AverageCostBasisDisplay: money.USD(p.AverageCostBasis),
		CurrentPrice:            p.CurrentPrice,
		CurrentPriceDisplay:     money.USD(p.CurrentPrice),
		MarketValue:             p.MarketValue,
		MarketValueDisplay:      money.USD(p.MarketValue),
		LifetimeReturn:          p.LifetimeReturn,
		LifetimeReturnDisplay:   money.USD(p.LifetimeReturn),
	}
}

// PortfolioResponse is the portfolio overview.
type PortfolioResponse struct {
	Positions            []PositionResponse `json:"positions"`
	Cash                 decimal.Decimal    `json:"cash"`
	CashDisplay          string             `json:"cash_display"`
	HoldingsValue        decimal.Decimal    `json:"holdings_value"`
	HoldingsValueDisplay string             `json:"holdings_value_display"`
	TotalValue           decimal.Decimal    `json:"total_value"`
	TotalValueDisplay    string             `json:"total_value_display"`
}

func newPortfolioResponse(s *services.PortfolioSummary) PortfolioResponse {
	positions := make([]PositionResponse, len(s.Positions))
	for i, p := range s.Positions {
		positions[i] = newPositionResponse(p)
	}
	return PortfolioResponse{
		Positions:            positions,
		Cash:                 s.Cash,
		CashDisplay:          money.USD(s.Cash),
		HoldingsValue:        s.HoldingsValue,
		HoldingsValueDisplay: money.USD(s.HoldingsValue),
		TotalValue:           s.TotalValue,
		TotalValueDisplay:    money.USD(s.TotalValue),
	}
}
