package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"papertrade/internal/services"
)

// PortfolioHandler serves the portfolio overview.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// GetPortfolio returns current holdings
// @Summary     Portfolio overview
// @Description Current positions valued at live prices, cash, and the grand total
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} PortfolioResponse "Portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Data inconsistency"
// @Failure     503 {object} ErrorResponse "Quotes unavailable"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.portfolioService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPortfolioResponse(summary))
}
