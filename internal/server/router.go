// Package server assembles the services, handlers and middleware into the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "papertrade/internal/docs" // Import swagger docs
	"papertrade/internal/handlers"
	"papertrade/internal/ledger"
	"papertrade/internal/middleware"
	"papertrade/internal/portfolio"
	"papertrade/internal/quote"
	"papertrade/internal/services"
)

// Services is the set of business services the router serves.
type Services struct {
	Users     services.UserServicer
	Trades    services.TradeServicer
	Portfolio services.PortfolioServicer
	Quotes    services.QuoteServicer
	Audit     services.AuditServicer
}

// NewServices wires the gorm-backed services around one quote provider.
func NewServices(db *gorm.DB, quotes quote.Provider, startingCash decimal.Decimal) Services {
	store := ledger.NewStore(db)
	return Services{
		Users:     services.NewUserService(db, startingCash),
		Trades:    services.NewTradeService(store, quotes),
		Portfolio: services.NewPortfolioService(portfolio.NewAggregator(store, quotes), store),
		Quotes:    services.NewQuoteService(quotes),
		Audit:     services.NewAuditService(db),
	}
}

// Options configures the router.
type Options struct {
	Tokens        *middleware.TokenIssuer
	MetricsAPIKey string
}

// NewRouter builds the gin engine with every route and middleware.
func NewRouter(svc Services, opts Options) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, opts.Tokens, svc.Audit)
	tradeHandler := handlers.NewTradeHandler(svc.Trades, svc.Audit)
	portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
	quoteHandler := handlers.NewQuoteHandler(svc.Quotes)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.NoCache())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", middleware.APIKeyAuth(opts.MetricsAPIKey), gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(opts.Tokens))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/portfolio", portfolioHandler.GetPortfolio)
	protected.GET("/quotes/:symbol", quoteHandler.GetQuote)
	protected.GET("/transactions", tradeHandler.GetHistory)

	trades := protected.Group("/trades")
	trades.POST("/buy", tradeHandler.Buy)
	trades.POST("/sell", tradeHandler.Sell)

	return router
}
