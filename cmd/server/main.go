package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockportfoliotracker/backend/internal/api"
	"github.com/stockportfoliotracker/backend/internal/config"
	"github.com/stockportfoliotracker/backend/internal/database"
	"github.com/stockportfoliotracker/backend/internal/fmp"
	"github.com/stockportfoliotracker/backend/internal/repository"
	"github.com/stockportfoliotracker/backend/internal/scheduler"
	"github.com/stockportfoliotracker/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	stockRepo := repository.NewStockRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Quote provider client
	quotes := fmp.NewClient(cfg.Quotes.BaseURL)

	// Create services
	systemService := service.NewSystemService(db)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Quotes)
	transactionService := service.NewTransactionService(transactionRepo)
	portfolioService := service.NewPortfolioService(transactionRepo)
	refreshService := service.NewRefreshService(
		transactionRepo,
		quotes,
		settingsService,
		cfg.Quotes.RequestTimeout,
		cfg.Quotes.MaxConcurrent,
	)
	stockService := service.NewStockService(stockRepo, quotes, quotes, settingsService)

	// Optional scheduled refresh
	sched := scheduler.New(refreshService, stockService)
	if err := sched.Start(cfg.Quotes.RefreshCron); err != nil {
		log.Fatalf("Failed to start refresh scheduler: %v", err)
	}
	defer sched.Stop()

	// Create router
	router := api.NewRouter(
		systemService,
		transactionService,
		portfolioService,
		refreshService,
		stockService,
		settingsService,
		cfg,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
