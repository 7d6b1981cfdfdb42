package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/model"
)

// Lot is a block of shares acquired by one Buy, consumed oldest-first by
// subsequent Sells. Remaining is monotonically non-increasing; a fully
// consumed lot stays in the report with Remaining == 0 so its sale history
// remains addressable.
type Lot struct {
	TransactionID string
	Ticker        string
	AcquiredOn    time.Time
	Quantity      int64
	Remaining     int64
	UnitCost      float64
	Sales         []SaleEvent
}

// SaleEvent records one consumption of a lot by a Sell: the quantity taken
// from the lot, the sale terms, and the realized gain for that slice.
type SaleEvent struct {
	TransactionID string
	Date          time.Time
	Quantity      int64
	SalePrice     float64
	UnitCost      float64
	Gain          float64
}

// LotReport is the result of FIFO-matching one (owner, ticker) ledger.
type LotReport struct {
	Lots         []Lot   // all lots in acquisition order, consumed ones included
	CostBasis    float64 // sum of remaining quantity x unit cost over open lots
	RealizedGain float64 // sum of gains over all sale events
	NetQuantity  int64   // sum of remaining quantities
}

// OpenLots returns the lots that still hold shares, in acquisition order.
func (r LotReport) OpenLots() []Lot {
	open := make([]Lot, 0, len(r.Lots))
	for _, lot := range r.Lots {
		if lot.Remaining > 0 {
			open = append(open, lot)
		}
	}
	return open
}

// MatchLots consumes the transaction history of a single (owner, ticker) pair
// and produces the open lots, the sale events matched against each lot, the
// remaining cost basis and the total realized gain.
//
// The input is sorted by (date, insertion sequence) before matching, the same
// ordering rule used by sell validation, so the two can never disagree on
// which lot a sale consumes. Each Buy appends a lot; each Sell consumes from
// the oldest lot with shares remaining.
//
// Callers validate sells against available quantity before the ledger is
// written, so an over-consuming Sell indicates a corrupted ledger. It is
// reported as an error rather than silently under-consumed.
func MatchLots(transactions []model.Transaction) (LotReport, error) {
	ordered := make([]model.Transaction, len(transactions))
	copy(ordered, transactions)
	sortLedger(ordered)

	var report LotReport
	lots := make([]*Lot, 0, len(ordered))
	// index of the oldest lot that still has shares remaining
	front := 0

	for _, t := range ordered {
		switch t.Operation {
		case model.OperationBuy:
			lots = append(lots, &Lot{
				TransactionID: t.ID,
				Ticker:        t.Ticker,
				AcquiredOn:    t.Date,
				Quantity:      t.Quantity,
				Remaining:     t.Quantity,
				UnitCost:      t.Price,
			})

		case model.OperationSell:
			remaining := t.Quantity
			for remaining > 0 && front < len(lots) {
				lot := lots[front]
				if lot.Remaining == 0 {
					front++
					continue
				}

				consumed := min(remaining, lot.Remaining)
				gain := (t.Price - lot.UnitCost) * float64(consumed)
				lot.Sales = append(lot.Sales, SaleEvent{
					TransactionID: t.ID,
					Date:          t.Date,
					Quantity:      consumed,
					SalePrice:     t.Price,
					UnitCost:      lot.UnitCost,
					Gain:          gain,
				})
				lot.Remaining -= consumed
				remaining -= consumed
				report.RealizedGain += gain

				if lot.Remaining == 0 {
					front++
				}
			}

			if remaining > 0 {
				return LotReport{}, fmt.Errorf("sell of %d %s on %s exceeds held quantity: %w",
					t.Quantity, t.Ticker, t.Date.Format("2006-01-02"), apperrors.ErrInsufficientShares)
			}

		default:
			return LotReport{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidOperation, t.Operation)
		}
	}

	report.Lots = make([]Lot, len(lots))
	for i, lot := range lots {
		report.Lots[i] = *lot
		report.NetQuantity += lot.Remaining
		report.CostBasis += float64(lot.Remaining) * lot.UnitCost
	}

	return report, nil
}

// sortLedger orders transactions by date ascending, breaking same-day ties by
// insertion sequence. Both sell validation and lot matching rely on this rule.
func sortLedger(transactions []model.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Date.Before(transactions[j].Date)
		}
		return transactions[i].Seq < transactions[j].Seq
	})
}
