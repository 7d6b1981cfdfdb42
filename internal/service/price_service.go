package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arambaladev/StockPortfolio/internal/alphavantage"
	"github.com/arambaladev/StockPortfolio/internal/api/request"
	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/model"
	"github.com/arambaladev/StockPortfolio/internal/repository"
	"github.com/arambaladev/StockPortfolio/internal/yahoo"
)

// refreshConcurrency bounds parallel provider requests during a bulk refresh.
const refreshConcurrency = 4

// PriceService handles price observations: manual upserts, latest-price
// lookups, and bulk refreshes from the market-data providers.
type PriceService struct {
	priceRepo      *repository.PriceRepository
	stockRepo      *repository.StockRepository
	settingService *SettingService
	yahooClient    yahoo.Client
}

// NewPriceService creates a new PriceService with the provided dependencies.
func NewPriceService(
	priceRepo *repository.PriceRepository,
	stockRepo *repository.StockRepository,
	settingService *SettingService,
	yahooClient yahoo.Client,
) *PriceService {
	return &PriceService{
		priceRepo:      priceRepo,
		stockRepo:      stockRepo,
		settingService: settingService,
		yahooClient:    yahooClient,
	}
}

// GetPrices retrieves price observations, optionally filtered by ticker.
func (s *PriceService) GetPrices(ticker string) ([]model.Price, error) {
	return s.priceRepo.GetPrices(ticker)
}

// UpsertPrice records a manually supplied price for (ticker, date).
// The ticker must be registered; the write is last-write-wins for that day.
func (s *PriceService) UpsertPrice(ctx context.Context, req request.UpsertPriceRequest) (*model.Price, error) {
	if _, err := s.stockRepo.GetStockByTicker(req.Ticker); err != nil {
		return nil, err
	}

	date, err := repository.ParseTime(req.Date)
	if err != nil {
		return nil, err
	}

	price := &model.Price{
		ID:     uuid.New().String(),
		Ticker: req.Ticker,
		Date:   date,
		Price:  req.Price,
	}
	if err := s.priceRepo.UpsertPrice(ctx, price); err != nil {
		return nil, err
	}

	return price, nil
}

// DeletePrice removes a price observation by ID.
func (s *PriceService) DeletePrice(ctx context.Context, priceID string) error {
	return s.priceRepo.DeletePrice(ctx, priceID)
}

// LatestPriceValue returns the most recent recorded price for a ticker, or 0
// when no observation exists. Absence of a price is not an error; valuations
// degrade to zero.
func (s *PriceService) LatestPriceValue(ticker string) (float64, error) {
	price, err := s.priceRepo.GetLatestPrice(ticker)
	if errors.Is(err, apperrors.ErrPriceNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return price.Price, nil
}

// RefreshResult summarizes one bulk price refresh.
type RefreshResult struct {
	Updated int      `json:"updated"`
	Failed  []string `json:"failed"`
}

// RefreshAllPrices fetches the latest close for every registered stock and
// upserts it as today's observation. Provider failures for individual tickers
// are logged and reported in the result; they never abort the refresh.
func (s *PriceService) RefreshAllPrices(ctx context.Context) (RefreshResult, error) {
	stocks, err := s.stockRepo.GetAllStocks()
	if err != nil {
		return RefreshResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
	}

	var mu sync.Mutex
	result := RefreshResult{Failed: []string{}}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for _, stock := range stocks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			closePrice, err := s.latestClose(stock.Ticker)
			if err != nil {
				log.Printf("price refresh: %s: %v", stock.Ticker, err)
				mu.Lock()
				result.Failed = append(result.Failed, stock.Ticker)
				mu.Unlock()
				return nil
			}

			price := &model.Price{
				ID:     uuid.New().String(),
				Ticker: stock.Ticker,
				Date:   today(),
				Price:  round(closePrice),
			}
			if err := s.priceRepo.UpsertPrice(ctx, price); err != nil {
				log.Printf("price refresh: %s: %v", stock.Ticker, err)
				mu.Lock()
				result.Failed = append(result.Failed, stock.Ticker)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			result.Updated++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
	}

	return result, nil
}

// latestClose asks Yahoo for the most recent close, falling back to Alpha
// Vantage when Yahoo fails and an API key has been configured.
func (s *PriceService) latestClose(ticker string) (float64, error) {
	resp, yahooErr := s.yahooClient.QueryFiveDaySymbol(ticker)
	if yahooErr == nil {
		chart, err := s.yahooClient.ParseChart(resp)
		if err == nil {
			if indicator, ok := chart.LatestClose(); ok {
				return indicator.PriceClose, nil
			}
		}
		yahooErr = fmt.Errorf("no usable close in chart")
	}

	apiKey, keyErr := s.settingService.MarketDataAPIKey()
	if keyErr != nil {
		return 0, fmt.Errorf("%w: yahoo: %v", apperrors.ErrQuoteUnavailable, yahooErr)
	}

	quote, avErr := alphavantage.NewClient(apiKey).LatestQuote(ticker)
	if avErr != nil {
		return 0, fmt.Errorf("%w: yahoo: %v; alphavantage: %v", apperrors.ErrQuoteUnavailable, yahooErr, avErr)
	}

	return quote.Price, nil
}
