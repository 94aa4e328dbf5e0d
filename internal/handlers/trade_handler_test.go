package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/ledger"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
)

func setupTradeRouter(handler *TradeHandler) *gin.Engine {
	r := gin.New()
	r.POST("/trades/buy", injectUserID(testUserID), handler.Buy)
	r.POST("/trades/sell", injectUserID(testUserID), handler.Sell)
	r.GET("/transactions", injectUserID(testUserID), handler.GetHistory)
	return r
}

func executedTrade(txType models.TransactionType, symbol string, shares int64, price string) *models.Transaction {
	return &models.Transaction{
		ID:        "0190a3e4-0000-7000-8000-0000000000aa",
		UserID:    testUserID,
		Type:      txType,
		Symbol:    symbol,
		Quantity:  shares,
		UnitPrice: decimal.RequireFromString(price),
		CreatedAt: time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC),
	}
}

func TestTradeHandler_Buy(t *testing.T) {
	t.Run("returns 201 with the executed trade", func(t *testing.T) {
		audit := &mockAuditService{}
		var gotSymbol string
		var gotShares int64
		tradeSvc := &mockTradeService{
			buyFn: func(_ context.Context, userID, symbol string, shares int64) (*models.Transaction, error) {
				if userID != testUserID {
					t.Errorf("expected user %s, got %s", testUserID, userID)
				}
				gotSymbol, gotShares = symbol, shares
				return executedTrade(models.TransactionTypePurchase, "AAPL", shares, "150.25"), nil
			},
		}
		r := setupTradeRouter(NewTradeHandler(tradeSvc, audit))

		rec := doRequest(r, "POST", "/trades/buy", `{"symbol":"aapl","shares":10}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotSymbol != "aapl" || gotShares != 10 {
			t.Errorf("service got (%q, %d)", gotSymbol, gotShares)
		}
		result := parseJSON(t, rec)
		if result["message"] != "Bought!" {
			t.Errorf("expected message Bought!, got %v", result["message"])
		}
		txn := result["transaction"].(map[string]interface{})
		if txn["type"] != "purchase" {
			t.Errorf("expected type purchase, got %v", txn["type"])
		}
		if txn["total_display"] != "$1,502.50" {
			t.Errorf("expected total_display $1,502.50, got %v", txn["total_display"])
		}
		if len(audit.calls) != 1 || audit.calls[0].action != "BUY" || audit.calls[0].resourceType != "transaction" {
			t.Errorf("expected one BUY audit entry, got %+v", audit.calls)
		}
	})

	t.Run("returns 400 on zero shares", func(t *testing.T) {
		r := setupTradeRouter(NewTradeHandler(&mockTradeService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/trades/buy", `{"symbol":"AAPL","shares":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on fractional shares", func(t *testing.T) {
		r := setupTradeRouter(NewTradeHandler(&mockTradeService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/trades/buy", `{"symbol":"AAPL","shares":1.5}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed symbol", func(t *testing.T) {
		r := setupTradeRouter(NewTradeHandler(&mockTradeService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/trades/buy", `{"symbol":"AA PL!","shares":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("maps service errors", func(t *testing.T) {
		tests := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{"unknown symbol", apperrors.ErrInvalidSymbol, http.StatusBadRequest, "INVALID_SYMBOL"},
			{"insufficient funds", apperrors.ErrInsufficientFunds, http.StatusBadRequest, "INSUFFICIENT_FUNDS"},
			{"quotes down", apperrors.ErrQuoteUnavailable, http.StatusServiceUnavailable, "QUOTE_UNAVAILABLE"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				audit := &mockAuditService{}
				tradeSvc := &mockTradeService{
					buyFn: func(context.Context, string, string, int64) (*models.Transaction, error) {
						return nil, tt.err
					},
				}
				r := setupTradeRouter(NewTradeHandler(tradeSvc, audit))

				rec := doRequest(r, "POST", "/trades/buy", `{"symbol":"AAPL","shares":1}`)

				if rec.Code != tt.status {
					t.Fatalf("expected %d, got %d", tt.status, rec.Code)
				}
				assertErrorCode(t, parseJSON(t, rec), tt.code)
				if len(audit.calls) != 0 {
					t.Errorf("expected no audit entry for a failed trade, got %+v", audit.calls)
				}
			})
		}
	})

	t.Run("marks quote outages retryable", func(t *testing.T) {
		tradeSvc := &mockTradeService{
			buyFn: func(context.Context, string, string, int64) (*models.Transaction, error) {
				return nil, apperrors.ErrQuoteUnavailable
			},
		}
		r := setupTradeRouter(NewTradeHandler(tradeSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/trades/buy", `{"symbol":"AAPL","shares":1}`)

		errObj := parseJSON(t, rec)["error"].(map[string]interface{})
		if errObj["retryable"] != true {
			t.Errorf("expected retryable true, got %v", errObj["retryable"])
		}
	})
}

func TestTradeHandler_Sell(t *testing.T) {
	t.Run("returns 201 with the executed trade", func(t *testing.T) {
		audit := &mockAuditService{}
		tradeSvc := &mockTradeService{
			sellFn: func(_ context.Context, _, _ string, shares int64) (*models.Transaction, error) {
				return executedTrade(models.TransactionTypeSale, "NFLX", shares, "114"), nil
			},
		}
		r := setupTradeRouter(NewTradeHandler(tradeSvc, audit))

		rec := doRequest(r, "POST", "/trades/sell", `{"symbol":"NFLX","shares":5}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["message"] != "Sold!" {
			t.Errorf("expected message Sold!, got %v", result["message"])
		}
		if len(audit.calls) != 1 || audit.calls[0].action != "SELL" {
			t.Errorf("expected one SELL audit entry, got %+v", audit.calls)
		}
	})

	t.Run("returns 400 on insufficient shares", func(t *testing.T) {
		tradeSvc := &mockTradeService{
			sellFn: func(context.Context, string, string, int64) (*models.Transaction, error) {
				return nil, apperrors.ErrInsufficientShares
			},
		}
		r := setupTradeRouter(NewTradeHandler(tradeSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/trades/sell", `{"symbol":"NFLX","shares":500}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_SHARES")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewTradeHandler(&mockTradeService{}, &mockAuditService{})
		r := gin.New()
		r.POST("/trades/sell", handler.Sell)

		rec := doRequest(r, "POST", "/trades/sell", `{"symbol":"NFLX","shares":1}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestTradeHandler_GetHistory(t *testing.T) {
	t.Run("passes filters and pagination through", func(t *testing.T) {
		var gotFilter ledger.Filter
		var gotPage pagination.PageRequest
		tradeSvc := &mockTradeService{
			getHistoryFn: func(_ context.Context, _ string, filter ledger.Filter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter, gotPage = filter, page
				rows := []models.Transaction{*executedTrade(models.TransactionTypeSale, "NFLX", 5, "114")}
				resp := pagination.NewPageResponse(rows, 2, 5, 6)
				return &resp, nil
			},
		}
		r := setupTradeRouter(NewTradeHandler(tradeSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?page=2&page_size=5&symbol=nflx&type=sale&from=2024-01-01&to=2024-01-31", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("expected page 2 size 5, got %+v", gotPage)
		}
		if gotFilter.Symbol != "NFLX" {
			t.Errorf("expected symbol NFLX, got %q", gotFilter.Symbol)
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeSale {
			t.Errorf("expected type sale, got %v", gotFilter.Type)
		}
		if gotFilter.From == nil || !gotFilter.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected from %v", gotFilter.From)
		}
		if gotFilter.To == nil || gotFilter.To.Day() != 31 || gotFilter.To.Hour() != 23 {
			t.Errorf("expected to to cover all of 2024-01-31, got %v", gotFilter.To)
		}

		result := parseJSON(t, rec)
		if result["total_items"] != float64(6) || result["total_pages"] != float64(2) {
			t.Errorf("unexpected pagination metadata: %v", result)
		}
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Fatalf("expected 1 row, got %d", len(data))
		}
		if data[0].(map[string]interface{})["unit_price_display"] != "$114.00" {
			t.Errorf("unexpected row %v", data[0])
		}
	})

	t.Run("returns empty data as an array", func(t *testing.T) {
		r := setupTradeRouter(NewTradeHandler(&mockTradeService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if _, ok := parseJSON(t, rec)["data"].([]interface{}); !ok {
			t.Error("expected data to be a JSON array")
		}
	})

	t.Run("rejects invalid filters", func(t *testing.T) {
		tests := []struct {
			name  string
			query string
			code  string
		}{
			{"bad type", "type=dividend", "INVALID_INPUT"},
			{"bad from", "from=yesterday", "INVALID_INPUT"},
			{"reversed range", "from=2024-02-01&to=2024-01-01", "INVALID_INPUT"},
			{"bad symbol", "symbol=%24%24%24", "INVALID_SYMBOL"},
			{"page size too large", "page_size=1000", "INVALID_INPUT"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r := setupTradeRouter(NewTradeHandler(&mockTradeService{}, &mockAuditService{}))

				rec := doRequest(r, "GET", "/transactions?"+tt.query, "")

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d", rec.Code)
				}
				assertErrorCode(t, parseJSON(t, rec), tt.code)
			})
		}
	})
}
