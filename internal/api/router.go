// Package api wires the HTTP surface: router, middleware and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arambaladev/StockPortfolio/internal/api/handlers"
	custommiddleware "github.com/arambaladev/StockPortfolio/internal/api/middleware"
	"github.com/arambaladev/StockPortfolio/internal/config"
	"github.com/arambaladev/StockPortfolio/internal/service"
)

// Services bundles the service-layer dependencies the router needs.
type Services struct {
	System      *service.SystemService
	Stock       *service.StockService
	Price       *service.PriceService
	Transaction *service.TransactionService
	Holding     *service.HoldingService
	Setting     *service.SettingService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
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
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/stock", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(svc.Stock)
			r.Get("/", stockHandler.AllStocks)
			r.Post("/", stockHandler.CreateStock)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", stockHandler.GetStock)
				r.Put("/", stockHandler.UpdateStock)
				r.Delete("/", stockHandler.DeleteStock)
			})
		})

		r.Route("/price", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svc.Price)
			r.Get("/", priceHandler.Prices)
			r.Post("/", priceHandler.UpsertPrice)
			r.Post("/refresh", priceHandler.RefreshPrices)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", priceHandler.DeletePrice)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/holdings/{uuid}", func(r chi.Router) {
			holdingHandler := handlers.NewHoldingHandler(svc.Holding, svc.Transaction)
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", holdingHandler.Holdings)
			r.Get("/can-sell", holdingHandler.CanSell)
			r.Get("/{ticker}/lots", holdingHandler.LotBreakdown)
		})

		r.Route("/settings", func(r chi.Router) {
			settingHandler := handlers.NewSettingHandler(svc.Setting)
			r.Put("/market-data", settingHandler.UpdateMarketDataKey)
		})
	})

	return r
}
