package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/arambaladev/StockPortfolio/internal/api/request"
	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/model"
	"github.com/arambaladev/StockPortfolio/internal/repository"
)

// ledgerEndSeq orders a hypothetical entry after every existing row; a fresh
// insert always receives the highest rowid on its date.
const ledgerEndSeq = int64(math.MaxInt64)

// TransactionService handles ledger writes and the portfolio maintenance that
// follows them. Writes to the same (owner, ticker) history are serialized with
// a per-pair lock held across the write and the recompute, so the FIFO
// ordering observed by reports is always that of a quiesced ledger. The write
// and its derived updates run in one database transaction.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	priceRepo       *repository.PriceRepository
	portfolioRepo   *repository.PortfolioRepository
	stockRepo       *repository.StockRepository

	locks *keyedLock
}

// NewTransactionService creates a new TransactionService with the provided
// database handle and repository dependencies.
func NewTransactionService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	priceRepo *repository.PriceRepository,
	portfolioRepo *repository.PortfolioRepository,
	stockRepo *repository.StockRepository,
) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		priceRepo:       priceRepo,
		portfolioRepo:   portfolioRepo,
		stockRepo:       stockRepo,
		locks:           newKeyedLock(),
	}
}

// lockPairs acquires the write locks for the given (owner, ticker) pairs.
func (s *TransactionService) lockPairs(ownerID string, tickers ...string) func() {
	keys := make([]string, len(tickers))
	for i, ticker := range tickers {
		keys[i] = ownerID + "/" + ticker
	}
	return s.locks.acquire(keys...)
}

// writeRepos bundles the write-path repositories, scoped to one database
// transaction when tx is non-nil.
type writeRepos struct {
	transactions *repository.TransactionRepository
	prices       *repository.PriceRepository
	portfolios   *repository.PortfolioRepository
}

func (s *TransactionService) repos() writeRepos {
	return writeRepos{
		transactions: s.transactionRepo,
		prices:       s.priceRepo,
		portfolios:   s.portfolioRepo,
	}
}

func (s *TransactionService) scopedRepos(tx *sql.Tx) writeRepos {
	return writeRepos{
		transactions: s.transactionRepo.WithTx(tx),
		prices:       s.priceRepo.WithTx(tx),
		portfolios:   s.portfolioRepo.WithTx(tx),
	}
}

// GetTransactions retrieves all transactions, optionally filtered by owner.
func (s *TransactionService) GetTransactions(ownerID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(ownerID)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}

// GetLedger retrieves the ordered transaction history for one (owner, ticker) pair.
func (s *TransactionService) GetLedger(ownerID, ticker string) ([]model.Transaction, error) {
	return s.transactionRepo.GetLedger(ownerID, ticker)
}

// AvailableQuantity returns the net quantity (buys minus sells) an owner
// holds in a ticker at a ledger position, optionally excluding one
// transaction. The position is the excluded transaction's own sequence when
// one is given, and the end of the ledger otherwise, so the answer counts
// exactly the entries the FIFO matcher would order before the sell.
func (s *TransactionService) AvailableQuantity(ownerID, ticker string, asOf time.Time, excludeTransactionID string) (int64, error) {
	seq := ledgerEndSeq
	if excludeTransactionID != "" {
		existing, err := s.transactionRepo.GetTransaction(excludeTransactionID)
		switch {
		case err == nil:
			seq = existing.Seq
		case errors.Is(err, apperrors.ErrTransactionNotFound):
			// Advisory checks may reference an entry that no longer exists.
		default:
			return 0, err
		}
	}
	return s.transactionRepo.NetQuantityBefore(ownerID, ticker, asOf, seq, excludeTransactionID)
}

// CheckSell answers whether a sell of the given size on the given date could
// be satisfied by the owner's holdings as of that date.
func (s *TransactionService) CheckSell(ownerID, ticker string, quantity int64, date time.Time, excludeTransactionID string) (model.SellCheck, error) {
	available, err := s.AvailableQuantity(ownerID, ticker, date, excludeTransactionID)
	if err != nil {
		return model.SellCheck{}, err
	}

	return model.SellCheck{
		Ticker:    ticker,
		Quantity:  quantity,
		Date:      date.Format("2006-01-02"),
		Available: available,
		Allowed:   quantity <= available,
	}, nil
}

// ledgerWithout returns the (owner, ticker) ledger with the entry identified
// by removeID left out.
func (s *TransactionService) ledgerWithout(ownerID, ticker, removeID string) ([]model.Transaction, error) {
	ledger, err := s.transactionRepo.GetLedger(ownerID, ticker)
	if err != nil {
		return nil, err
	}

	remaining := make([]model.Transaction, 0, len(ledger))
	for _, t := range ledger {
		if t.ID == removeID {
			continue
		}
		remaining = append(remaining, t)
	}
	return remaining, nil
}

// validateEditedLedger replays the FIFO matcher over the hypothetical ledger
// that would exist after an edit, so an entry moved onto another entry's date
// cannot be accepted by one ordering rule and rejected by the other. The
// matcher's own bookkeeping is the single authority on what a sell may take.
func (s *TransactionService) validateEditedLedger(edited *model.Transaction) error {
	hypothetical, err := s.ledgerWithout(edited.OwnerID, edited.Ticker, edited.ID)
	if err != nil {
		return err
	}
	hypothetical = append(hypothetical, *edited)

	if _, err := MatchLots(hypothetical); err != nil {
		return err
	}
	return nil
}

// CreateTransaction validates and records a new ledger entry, then upserts
// the (ticker, date) price from the transaction price and recomputes the
// owner's portfolio row, all in one database transaction. The whole sequence
// holds the (owner, ticker) lock.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := repository.ParseTime(req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.stockRepo.GetStockByTicker(req.Ticker); err != nil {
		return nil, err
	}

	unlock := s.lockPairs(req.OwnerID, req.Ticker)
	defer unlock()

	if req.Operation == model.OperationSell {
		available, err := s.AvailableQuantity(req.OwnerID, req.Ticker, date, "")
		if err != nil {
			return nil, err
		}
		if req.Quantity > available {
			return nil, fmt.Errorf("%w: requested %d, available %d", apperrors.ErrInsufficientShares, req.Quantity, available)
		}
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		OwnerID:   req.OwnerID,
		Ticker:    req.Ticker,
		Operation: req.Operation,
		Quantity:  req.Quantity,
		Date:      date,
		Price:     req.Price,
		Currency:  req.Currency,
		CreatedAt: time.Now().UTC(),
	}

	err = s.inWriteTx(ctx, func(r writeRepos) error {
		if err := r.transactions.InsertTransaction(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		if err := recordTransactionPrice(ctx, r, transaction); err != nil {
			return err
		}
		return recomputePortfolio(ctx, r, req.OwnerID, req.Ticker)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// UpdateTransaction edits an existing ledger entry. The post-edit history is
// re-validated with the FIFO matcher, which catches both an oversized sell and
// a buy moved out from under a later sell. Both the old and the new ticker's
// portfolio rows are recomputed when the edit moves the entry between tickers.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	previousTicker := transaction.Ticker

	if req.Ticker != nil {
		transaction.Ticker = *req.Ticker
	}
	if req.Operation != nil {
		transaction.Operation = *req.Operation
	}
	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.Date != nil {
		date, err := repository.ParseTime(*req.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = date
	}
	if req.Price != nil {
		transaction.Price = *req.Price
	}
	if req.Currency != nil {
		transaction.Currency = *req.Currency
	}

	if _, err := s.stockRepo.GetStockByTicker(transaction.Ticker); err != nil {
		return nil, err
	}

	unlock := s.lockPairs(transaction.OwnerID, previousTicker, transaction.Ticker)
	defer unlock()

	if err := s.validateEditedLedger(&transaction); err != nil {
		return nil, err
	}
	if previousTicker != transaction.Ticker {
		// Moving the entry away must not strand a sell it was funding.
		remaining, err := s.ledgerWithout(transaction.OwnerID, previousTicker, transaction.ID)
		if err != nil {
			return nil, err
		}
		if _, err := MatchLots(remaining); err != nil {
			return nil, err
		}
	}

	err = s.inWriteTx(ctx, func(r writeRepos) error {
		if err := r.transactions.UpdateTransaction(ctx, &transaction); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if err := recordTransactionPrice(ctx, r, &transaction); err != nil {
			return err
		}
		if err := recomputePortfolio(ctx, r, transaction.OwnerID, transaction.Ticker); err != nil {
			return err
		}
		if previousTicker != transaction.Ticker {
			return recomputePortfolio(ctx, r, transaction.OwnerID, previousTicker)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// DeleteTransaction removes a ledger entry and recomputes the owner's
// portfolio row for its ticker. Removing a buy that a later sell depends on
// is rejected, for the same reason an edit is: the remaining history must
// still satisfy the matcher.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return err
	}

	unlock := s.lockPairs(transaction.OwnerID, transaction.Ticker)
	defer unlock()

	remaining, err := s.ledgerWithout(transaction.OwnerID, transaction.Ticker, transaction.ID)
	if err != nil {
		return err
	}
	if _, err := MatchLots(remaining); err != nil {
		return err
	}

	return s.inWriteTx(ctx, func(r writeRepos) error {
		if err := r.transactions.DeleteTransaction(ctx, transactionID); err != nil {
			return err
		}
		return recomputePortfolio(ctx, r, transaction.OwnerID, transaction.Ticker)
	})
}

// RecomputePortfolio rebuilds the derived portfolio row for an (owner,
// ticker) pair from the ledger and the latest price: the row is deleted when
// the net quantity reaches zero and upserted otherwise. The operation is
// idempotent and safe to re-run at any time.
func (s *TransactionService) RecomputePortfolio(ctx context.Context, ownerID, ticker string) error {
	return recomputePortfolio(ctx, s.repos(), ownerID, ticker)
}

// inWriteTx runs fn over transaction-scoped repositories and commits, rolling
// everything back when fn errors. A ledger write never lands without its
// price side-write and portfolio recompute.
func (s *TransactionService) inWriteTx(ctx context.Context, fn func(r writeRepos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin database transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(s.scopedRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger write: %w", err)
	}
	return nil
}

func recomputePortfolio(ctx context.Context, r writeRepos, ownerID, ticker string) error {
	net, err := r.transactions.NetQuantity(ownerID, ticker)
	if err != nil {
		return err
	}

	if net == 0 {
		return r.portfolios.DeleteEntry(ctx, ownerID, ticker)
	}

	latest := 0.0
	if price, err := r.prices.GetLatestPrice(ticker); err == nil {
		latest = price.Price
	}

	return r.portfolios.UpsertEntry(ctx, &model.PortfolioEntry{
		OwnerID:  ownerID,
		Ticker:   ticker,
		Quantity: net,
		Value:    round(float64(net) * latest),
	})
}

// recordTransactionPrice upserts the transaction's unit price as the
// authoritative price observation for (ticker, date).
func recordTransactionPrice(ctx context.Context, r writeRepos, t *model.Transaction) error {
	price := &model.Price{
		ID:     uuid.New().String(),
		Ticker: t.Ticker,
		Date:   t.Date,
		Price:  t.Price,
	}
	if err := r.prices.UpsertPrice(ctx, price); err != nil {
		return fmt.Errorf("failed to record transaction price: %w", err)
	}
	return nil
}
