package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stockportfoliotracker/backend/internal/api/handlers"
	custommiddleware "github.com/stockportfoliotracker/backend/internal/api/middleware"
	"github.com/stockportfoliotracker/backend/internal/config"
	"github.com/stockportfoliotracker/backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	transactionService *service.TransactionService,
	portfolioService *service.PortfolioService,
	refreshService *service.RefreshService,
	stockService *service.StockService,
	settingsService *service.SettingsService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(transactionService)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Get("/{id}", transactionHandler.GetTransaction)
			r.Put("/{id}", transactionHandler.UpdateTransaction)
			r.Delete("/{id}", transactionHandler.DeleteTransaction)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService, refreshService)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/position/{ticker}", portfolioHandler.Position)
			r.Post("/refresh", portfolioHandler.Refresh)
		})

		r.Route("/stock", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(stockService)
			r.Get("/", stockHandler.AllStocks)
			r.Post("/", stockHandler.AddStock)
			r.Post("/refresh", stockHandler.RefreshStocks)
			r.Get("/{ticker}", stockHandler.GetStock)
			r.Delete("/{ticker}", stockHandler.DeleteStock)
			r.Get("/{ticker}/history", stockHandler.StockHistory)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(settingsService)
			r.Get("/apikey", settingsHandler.APIKeyStatus)
			r.Put("/apikey", settingsHandler.SetAPIKey)
		})
	})

	return r
}
