package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"papertrade/internal/config"
	"papertrade/internal/database"
	"papertrade/internal/logger"
	"papertrade/internal/middleware"
	"papertrade/internal/quote"
	"papertrade/internal/server"
	"papertrade/internal/validator"
)

// @title           Papertrade API
// @version         1.0
// @description     Papertrade is a stock-trading simulator: buy and sell shares at live prices with simulated cash and track your positions.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Quote provider, optionally behind Redis
	var quotes quote.Provider = quote.NewYahooProvider(&http.Client{Timeout: appConfig.QuoteTimeout}, appConfig.QuoteBaseURL)
	if appConfig.RedisURL != "" {
		cache, err := quote.NewRedisCache(ctx, appConfig.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to quote cache: %w", err)
		}
		defer func() {
			if err := cache.Close(); err != nil {
				log.Warnf("quote cache close error: %v", err)
			}
		}()
		quotes = quote.NewCachedProvider(quotes, cache, appConfig.QuoteCacheTTL)
		log.Infow("Quote cache enabled", "ttl", appConfig.QuoteCacheTTL)
	}

	tokens := middleware.NewTokenIssuer(appConfig.JWTSecret, appConfig.JWTAccessTTL, appConfig.JWTRefreshTTL)
	router := server.NewRouter(
		server.NewServices(dbManager.DB(), quotes, appConfig.StartingCash),
		server.Options{Tokens: tokens, MetricsAPIKey: appConfig.MetricsAPIKey},
	)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Papertrade backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
