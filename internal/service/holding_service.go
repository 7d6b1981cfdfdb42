package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/model"
	"github.com/arambaladev/StockPortfolio/internal/repository"
)

// HoldingService computes per-owner portfolio valuations by combining the
// transaction ledger (through the FIFO matcher), price observations, and
// stock reference data. It only reads; portfolio maintenance after ledger
// writes lives in TransactionService.
type HoldingService struct {
	transactionRepo *repository.TransactionRepository
	stockRepo       *repository.StockRepository
	priceRepo       *repository.PriceRepository
}

// NewHoldingService creates a new HoldingService with the provided repository dependencies.
func NewHoldingService(
	transactionRepo *repository.TransactionRepository,
	stockRepo *repository.StockRepository,
	priceRepo *repository.PriceRepository,
) *HoldingService {
	return &HoldingService{
		transactionRepo: transactionRepo,
		stockRepo:       stockRepo,
		priceRepo:       priceRepo,
	}
}

// GetHoldings computes the owner's current holdings: one entry per ticker
// with a positive net position, valued at the latest recorded price. Missing
// prices value at zero, and a ledger that fails to match (possible after
// deleting a buy out from under its sells) is logged and skipped; neither
// aborts the aggregation of other holdings.
//
// Recomputing from unchanged ledger and price state yields identical output.
func (s *HoldingService) GetHoldings(ownerID string) (model.HoldingsReport, error) {
	tickers, err := s.transactionRepo.ListOwnedTickers(ownerID)
	if err != nil {
		return model.HoldingsReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeHoldings, err)
	}

	report := model.HoldingsReport{
		OwnerID:         ownerID,
		Holdings:        []model.Holding{},
		ValueBySector:   map[string]float64{},
		ValueByCurrency: map[string]float64{},
	}

	for _, ticker := range tickers {
		ledger, err := s.transactionRepo.GetLedger(ownerID, ticker)
		if err != nil {
			return model.HoldingsReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeHoldings, err)
		}

		lots, err := MatchLots(ledger)
		if err != nil {
			log.Printf("holdings: skipping %s for owner %s: %v", ticker, ownerID, err)
			continue
		}
		if lots.NetQuantity <= 0 {
			continue
		}

		latest, err := s.latestPriceValue(ticker)
		if err != nil {
			return model.HoldingsReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeHoldings, err)
		}

		holding := model.Holding{
			Ticker:       ticker,
			Quantity:     lots.NetQuantity,
			LatestPrice:  latest,
			MarketValue:  round(float64(lots.NetQuantity) * latest),
			CostBasis:    round(lots.CostBasis),
			RealizedGain: round(lots.RealizedGain),
			Xirr:         holdingXirr(ledger, lots.NetQuantity, latest),
		}
		holding.UnrealizedGain = round(holding.MarketValue - holding.CostBasis)

		if stock, err := s.stockRepo.GetStockByTicker(ticker); err == nil {
			holding.Name = stock.Name
			holding.Exchange = stock.Exchange
			holding.Sector = stock.Sector
			holding.Market = stock.Market
			holding.Currency = stock.Currency
		}

		report.Holdings = append(report.Holdings, holding)
		report.TotalValue += holding.MarketValue
		report.TotalCostBasis += holding.CostBasis

		sector := holding.Sector
		if sector == "" {
			sector = "Unknown"
		}
		currency := holding.Currency
		if currency == "" {
			currency = "Unknown"
		}
		report.ValueBySector[sector] = round(report.ValueBySector[sector] + holding.MarketValue)
		report.ValueByCurrency[currency] = round(report.ValueByCurrency[currency] + holding.MarketValue)
	}

	// Percentages need the final total; zero total means zero percentages.
	for i := range report.Holdings {
		if report.TotalValue > 0 {
			report.Holdings[i].PercentOfPortfolio = round(report.Holdings[i].MarketValue / report.TotalValue * 100)
		}
	}

	report.TotalValue = round(report.TotalValue)
	report.TotalCostBasis = round(report.TotalCostBasis)
	report.TotalGain = round(report.TotalValue - report.TotalCostBasis)

	return report, nil
}

// GetLotBreakdown produces the detailed FIFO view for one (owner, ticker)
// pair: every lot with its remaining quantity and valuation, and every
// realized sale with the gain and the matched-pair rate of return.
func (s *HoldingService) GetLotBreakdown(ownerID, ticker string) (model.LotBreakdown, error) {
	if _, err := s.stockRepo.GetStockByTicker(ticker); err != nil {
		return model.LotBreakdown{}, err
	}

	ledger, err := s.transactionRepo.GetLedger(ownerID, ticker)
	if err != nil {
		return model.LotBreakdown{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeHoldings, err)
	}

	lots, err := MatchLots(ledger)
	if err != nil {
		return model.LotBreakdown{}, err
	}

	latest, err := s.latestPriceValue(ticker)
	if err != nil {
		return model.LotBreakdown{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputeHoldings, err)
	}

	breakdown := model.LotBreakdown{
		OwnerID:      ownerID,
		Ticker:       ticker,
		LatestPrice:  latest,
		Lots:         []model.LotDetail{},
		Sales:        []model.RealizedSale{},
		CostBasis:    round(lots.CostBasis),
		RealizedGain: round(lots.RealizedGain),
		NetQuantity:  lots.NetQuantity,
	}

	for _, lot := range lots.Lots {
		detail := model.LotDetail{
			TransactionID: lot.TransactionID,
			AcquiredOn:    lot.AcquiredOn,
			Quantity:      lot.Quantity,
			Remaining:     lot.Remaining,
			UnitCost:      lot.UnitCost,
			CostBasis:     round(float64(lot.Remaining) * lot.UnitCost),
			MarketValue:   round(float64(lot.Remaining) * latest),
			Xirr:          lotXirr(lot, latest),
		}
		detail.UnrealizedGain = round(detail.MarketValue - detail.CostBasis)
		breakdown.Lots = append(breakdown.Lots, detail)

		for _, sale := range lot.Sales {
			breakdown.Sales = append(breakdown.Sales, model.RealizedSale{
				TransactionID: sale.TransactionID,
				LotID:         lot.TransactionID,
				Date:          sale.Date,
				Quantity:      sale.Quantity,
				SalePrice:     sale.SalePrice,
				UnitCost:      sale.UnitCost,
				Gain:          round(sale.Gain),
				Xirr:          saleXirr(lot, sale),
			})
		}
	}

	return breakdown, nil
}

func (s *HoldingService) latestPriceValue(ticker string) (float64, error) {
	price, err := s.priceRepo.GetLatestPrice(ticker)
	if errors.Is(err, apperrors.ErrPriceNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return price.Price, nil
}

// holdingXirr builds the money-weighted return for a whole holding: every buy
// is an outflow, every sell an inflow, plus a synthetic terminal inflow
// marking the open position to the latest price, dated today. The terminal
// flow is only added for a positive position with a usable price.
func holdingXirr(ledger []model.Transaction, quantity int64, latestPrice float64) *float64 {
	flows := make([]CashFlow, 0, len(ledger)+1)
	for _, t := range ledger {
		amount := float64(t.Quantity) * t.Price
		if t.Operation == model.OperationBuy {
			amount = -amount
		}
		flows = append(flows, CashFlow{Date: t.Date, Amount: amount})
	}

	if quantity > 0 && latestPrice > 0 {
		flows = append(flows, CashFlow{Date: today(), Amount: float64(quantity) * latestPrice})
	}

	return xirrOrNil(flows)
}

// lotXirr computes the money-weighted return of a single lot: the full
// purchase as the outflow, each sale event as an inflow, and the remaining
// shares marked to the latest price.
func lotXirr(lot Lot, latestPrice float64) *float64 {
	flows := []CashFlow{{Date: lot.AcquiredOn, Amount: -float64(lot.Quantity) * lot.UnitCost}}
	for _, sale := range lot.Sales {
		flows = append(flows, CashFlow{Date: sale.Date, Amount: float64(sale.Quantity) * sale.SalePrice})
	}
	if lot.Remaining > 0 && latestPrice > 0 {
		flows = append(flows, CashFlow{Date: today(), Amount: float64(lot.Remaining) * latestPrice})
	}

	return xirrOrNil(flows)
}

// saleXirr computes the annualized return of one matched buy/sell pair.
// A pair bought and sold on the same day has no defined rate.
func saleXirr(lot Lot, sale SaleEvent) *float64 {
	if sale.Date.Equal(lot.AcquiredOn) {
		return nil
	}

	return xirrOrNil([]CashFlow{
		{Date: lot.AcquiredOn, Amount: -float64(sale.Quantity) * lot.UnitCost},
		{Date: sale.Date, Amount: float64(sale.Quantity) * sale.SalePrice},
	})
}

func xirrOrNil(flows []CashFlow) *float64 {
	rate, ok := ComputeXIRR(flows)
	if !ok {
		return nil
	}
	return &rate
}
