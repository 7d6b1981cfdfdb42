package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/arambaladev/StockPortfolio/internal/api/request"
	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/model"
	"github.com/arambaladev/StockPortfolio/internal/repository"
	"github.com/arambaladev/StockPortfolio/internal/yahoo"
)

// StockService handles stock reference-data operations. Ticker symbols are
// validated against the market-data provider before they enter the system.
type StockService struct {
	stockRepo       *repository.StockRepository
	transactionRepo *repository.TransactionRepository
	yahooClient     yahoo.Client
}

// NewStockService creates a new StockService with the provided dependencies.
func NewStockService(
	stockRepo *repository.StockRepository,
	transactionRepo *repository.TransactionRepository,
	yahooClient yahoo.Client,
) *StockService {
	return &StockService{
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		yahooClient:     yahooClient,
	}
}

// GetAllStocks retrieves all registered stocks.
func (s *StockService) GetAllStocks() ([]model.Stock, error) {
	return s.stockRepo.GetAllStocks()
}

// GetStock retrieves a single stock by ID.
func (s *StockService) GetStock(stockID string) (model.Stock, error) {
	return s.stockRepo.GetStock(stockID)
}

// CreateStock registers a new stock. The ticker is upper-cased, checked for
// uniqueness, and validated against the market-data provider; descriptive
// fields left empty are filled from provider metadata where available.
func (s *StockService) CreateStock(ctx context.Context, req request.CreateStockRequest) (*model.Stock, error) {
	stock := &model.Stock{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Ticker:   strings.ToUpper(strings.TrimSpace(req.Ticker)),
		Exchange: req.Exchange,
		Sector:   req.Sector,
		Market:   req.Market,
		Currency: req.Currency,
	}

	if _, err := s.stockRepo.GetStockByTicker(stock.Ticker); err == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateTicker, stock.Ticker)
	} else if !errors.Is(err, apperrors.ErrStockNotFound) {
		return nil, err
	}

	if err := s.enrichFromProvider(stock); err != nil {
		return nil, err
	}

	if err := s.stockRepo.InsertStock(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to create stock: %w", err)
	}

	return stock, nil
}

// UpdateStock edits an existing stock. A changed ticker is re-validated
// against the provider and checked for uniqueness.
func (s *StockService) UpdateStock(ctx context.Context, stockID string, req request.UpdateStockRequest) (*model.Stock, error) {
	stock, err := s.stockRepo.GetStock(stockID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		stock.Name = *req.Name
	}
	if req.Exchange != nil {
		stock.Exchange = *req.Exchange
	}
	if req.Sector != nil {
		stock.Sector = *req.Sector
	}
	if req.Market != nil {
		stock.Market = *req.Market
	}
	if req.Currency != nil {
		stock.Currency = *req.Currency
	}

	if req.Ticker != nil {
		newTicker := strings.ToUpper(strings.TrimSpace(*req.Ticker))
		if newTicker != stock.Ticker {
			if _, err := s.stockRepo.GetStockByTicker(newTicker); err == nil {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateTicker, newTicker)
			} else if !errors.Is(err, apperrors.ErrStockNotFound) {
				return nil, err
			}
			stock.Ticker = newTicker
		}
	}

	if err := s.enrichFromProvider(&stock); err != nil {
		return nil, err
	}

	if err := s.stockRepo.UpdateStock(ctx, &stock); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	return &stock, nil
}

// DeleteStock removes a stock. Deletion is rejected while transactions still
// reference the ticker, so ledger history can never dangle.
func (s *StockService) DeleteStock(ctx context.Context, stockID string) error {
	stock, err := s.stockRepo.GetStock(stockID)
	if err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByTicker(stock.Ticker)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s has %d transactions", apperrors.ErrStockInUse, stock.Ticker, count)
	}

	return s.stockRepo.DeleteStock(ctx, stockID)
}

// enrichFromProvider validates the ticker against the market-data provider
// and fills empty descriptive fields from provider metadata. Defaults mirror
// the schema: NYSE exchange, USD currency.
func (s *StockService) enrichFromProvider(stock *model.Stock) error {
	resp, err := s.yahooClient.QueryFiveDaySymbol(stock.Ticker)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, stock.Ticker)
	}

	chart, err := s.yahooClient.ParseChart(resp)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, stock.Ticker)
	}

	if stock.Name == "" {
		if chart.LongName != "" {
			stock.Name = chart.LongName
		} else {
			stock.Name = chart.Shortname
		}
	}
	if stock.Exchange == "" {
		if chart.FullExchangeName != "" {
			stock.Exchange = chart.FullExchangeName
		} else {
			stock.Exchange = "NYSE"
		}
	}
	if stock.Currency == "" {
		if chart.Currency != "" {
			stock.Currency = chart.Currency
		} else {
			stock.Currency = "USD"
		}
	}

	return nil
}
