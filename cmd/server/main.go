package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/arambaladev/StockPortfolio/internal/api"
	"github.com/arambaladev/StockPortfolio/internal/config"
	"github.com/arambaladev/StockPortfolio/internal/database"
	"github.com/arambaladev/StockPortfolio/internal/repository"
	"github.com/arambaladev/StockPortfolio/internal/service"
	"github.com/arambaladev/StockPortfolio/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply pending migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	stockRepo := repository.NewStockRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	yahooClient := yahoo.NewFinanceClient()

	// Create services
	systemService := service.NewSystemService(db)
	settingService, err := service.NewSettingService(settingRepo, cfg.Market.SecretKey)
	if err != nil {
		log.Fatalf("Failed to initialise settings: %v", err)
	}
	stockService := service.NewStockService(stockRepo, transactionRepo, yahooClient)
	priceService := service.NewPriceService(priceRepo, stockRepo, settingService, yahooClient)
	transactionService := service.NewTransactionService(db, transactionRepo, priceRepo, portfolioRepo, stockRepo)
	holdingService := service.NewHoldingService(transactionRepo, stockRepo, priceRepo)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Stock:       stockService,
		Price:       priceService,
		Transaction: transactionService,
		Holding:     holdingService,
		Setting:     settingService,
	}, cfg)

	// Schedule the price refresh job
	scheduler := cron.New()
	if spec := cfg.Scheduler.PriceRefreshSpec; spec != "" {
		_, err := scheduler.AddFunc(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			result, err := priceService.RefreshAllPrices(ctx)
			if err != nil {
				log.Printf("Scheduled price refresh failed: %v", err)
				return
			}
			log.Printf("Scheduled price refresh: %d updated, %d failed", result.Updated, len(result.Failed))
		})
		if err != nil {
			log.Fatalf("Invalid price refresh schedule %q: %v", spec, err)
		}
		scheduler.Start()
		log.Printf("Price refresh scheduled: %s", spec)
	}

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

	// Stop the scheduler and wait for a running refresh to finish
	<-scheduler.Stop().Done()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
