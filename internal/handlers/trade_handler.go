package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/ledger"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
	"papertrade/internal/quote"
	"papertrade/internal/services"
)

// TradeHandler handles buying, selling and trade history.
type TradeHandler struct {
	tradeService services.TradeServicer
	auditService services.AuditServicer
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService services.TradeServicer, auditService services.AuditServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, auditService: auditService}
}

// TradeRequest represents a buy or sell order.
type TradeRequest struct {
	Symbol string `json:"symbol" binding:"required,ticker"`
	Shares int64  `json:"shares" binding:"required,min=1"`
}

// TradeResponse is the executed trade and a confirmation message.
type TradeResponse struct {
	Message     string              `json:"message"`
	Transaction TransactionResponse `json:"transaction"`
}

// Buy purchases shares
// @Summary     Buy shares
// @Description Buy a whole number of shares at the current quoted price
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TradeRequest true "Order"
// @Success     201 {object} TradeResponse "Bought"
// @Failure     400 {object} ErrorResponse "Invalid input, invalid symbol or insufficient funds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Quotes unavailable"
// @Router      /trades/buy [post]
func (h *TradeHandler) Buy(c *gin.Context) {
	h.trade(c, models.TransactionTypePurchase)
}

// Sell sells shares
// @Summary     Sell shares
// @Description Sell a whole number of held shares at the current quoted price
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TradeRequest true "Order"
// @Success     201 {object} TradeResponse "Sold"
// @Failure     400 {object} ErrorResponse "Invalid input, invalid symbol or insufficient shares"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Quotes unavailable"
// @Router      /trades/sell [post]
func (h *TradeHandler) Sell(c *gin.Context) {
	h.trade(c, models.TransactionTypeSale)
}

func (h *TradeHandler) trade(c *gin.Context, txType models.TransactionType) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var (
		tx      *models.Transaction
		message string
		action  string
	)
	if txType == models.TransactionTypePurchase {
		tx, err = h.tradeService.Buy(c.Request.Context(), userID, req.Symbol, req.Shares)
		message, action = "Bought!", models.AuditActionBuy
	} else {
		tx, err = h.tradeService.Sell(c.Request.Context(), userID, req.Symbol, req.Shares)
		message, action = "Sold!", models.AuditActionSell
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, action, "transaction", tx.ID, c.ClientIP(), map[string]interface{}{
		"symbol":     tx.Symbol,
		"quantity":   tx.Quantity,
		"unit_price": tx.UnitPrice.String(),
	})

	c.JSON(http.StatusCreated, TradeResponse{Message: message, Transaction: newTransactionResponse(tx)})
}

// GetHistory lists the user's trades
// @Summary     Trade history
// @Description List the user's trades, newest first
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size (max 100)"
// @Param       symbol    query string false "Only this symbol"
// @Param       type      query string false "purchase or sale"
// @Param       from      query string false "Earliest time, RFC3339 or YYYY-MM-DD"
// @Param       to        query string false "Latest time, RFC3339 or YYYY-MM-DD"
// @Success     200 {object} pagination.PageResponse[TransactionResponse] "Trades"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TradeHandler) GetHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseHistoryFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.tradeService.GetHistory(c.Request.Context(), userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]TransactionResponse, len(result.Data))
	for i := range result.Data {
		items[i] = newTransactionResponse(&result.Data[i])
	}
	c.JSON(http.StatusOK, pagination.NewPageResponse(items, result.Page, result.PageSize, result.TotalItems))
}

func parseHistoryFilter(c *gin.Context) (ledger.Filter, error) {
	var filter ledger.Filter

	if v := c.Query("symbol"); v != "" {
		symbol := quote.NormalizeSymbol(v)
		if !quote.ValidSymbol(symbol) {
			return filter, apperrors.ErrInvalidSymbol
		}
		filter.Symbol = symbol
	}

	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		if !txType.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be purchase or sale")
		}
		filter.Type = &txType
	}

	if v := c.Query("from"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from format, use RFC3339 or YYYY-MM-DD")
		}
		filter.From = &t
	}

	if v := c.Query("to"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to format, use RFC3339 or YYYY-MM-DD")
		}
		// A bare date covers the whole day.
		if len(v) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &t
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must not be after to")
	}

	return filter, nil
}

// parseFlexibleTime accepts RFC3339 or a YYYY-MM-DD date (UTC midnight).
func parseFlexibleTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
