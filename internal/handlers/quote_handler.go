package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"papertrade/internal/services"
)

// QuoteHandler serves live stock quotes.
type QuoteHandler struct {
	quoteService services.QuoteServicer
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService services.QuoteServicer) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// GetQuote looks up a symbol
// @Summary     Get a stock quote
// @Description Look up the current price of a stock symbol
// @Tags        quotes
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} QuoteResponse "Quote"
// @Failure     400 {object} ErrorResponse "Invalid symbol"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Quotes unavailable"
// @Router      /quotes/{symbol} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": newQuoteResponse(q)})
}
