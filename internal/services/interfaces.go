package services

import (
	"context"

	"github.com/shopspring/decimal"

	"papertrade/internal/ledger"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
	"papertrade/internal/portfolio"
	"papertrade/internal/quote"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, password, confirmation string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	ClearRefreshTokenHash(userID string) error
}

// TradeServicer defines the contract for buying, selling and listing trades.
type TradeServicer interface {
	Buy(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error)
	Sell(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error)
	GetHistory(ctx context.Context, userID string, filter ledger.Filter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// PortfolioSummary is the user's open positions together with their cash.
type PortfolioSummary struct {
	Positions     []portfolio.Position `json:"positions"`
	Cash          decimal.Decimal      `json:"cash"`
	HoldingsValue decimal.Decimal      `json:"holdings_value"`
	TotalValue    decimal.Decimal      `json:"total_value"`
}

// PortfolioServicer defines the contract for the portfolio overview.
type PortfolioServicer interface {
	GetPortfolio(ctx context.Context, userID string) (*PortfolioSummary, error)
}

// QuoteServicer defines the contract for stand-alone quote lookups.
type QuoteServicer interface {
	GetQuote(ctx context.Context, symbol string) (*quote.Quote, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
