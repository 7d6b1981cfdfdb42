package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// All ledger reads are ordered by (date, rowid) so that same-day transactions
// keep a deterministic insertion-order tie-break; the rowid is surfaced as Seq.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{db: r.db, tx: tx}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `rowid, id, owner_id, ticker, operation, quantity, date, price, COALESCE(currency, ''), created_at`

func scanTransaction(scan func(dest ...any) error) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string

	err := scan(
		&t.Seq,
		&t.ID,
		&t.OwnerID,
		&t.Ticker,
		&t.Operation,
		&t.Quantity,
		&dateStr,
		&t.Price,
		&t.Currency,
		&createdAtStr,
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}

// GetLedger retrieves the full transaction history for one (owner, ticker)
// pair, ordered by date then insertion sequence. This is the input contract of
// the FIFO lot matcher.
func (r *TransactionRepository) GetLedger(ownerID, ticker string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE owner_id = ? AND ticker = ?
		ORDER BY date ASC, rowid ASC
	`

	rows, err := r.getQuerier().Query(query, ownerID, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactions retrieves all transactions, optionally filtered by owner.
// An empty ownerID returns every transaction in the ledger.
func (r *TransactionRepository) GetTransactions(ownerID string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
	`

	var args []any
	if ownerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY date ASC, rowid ASC`

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if no transaction with the given ID exists.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE id = ?
	`

	row := r.getQuerier().QueryRow(query, transactionID)
	t, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// InsertTransaction creates a new ledger entry.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, owner_id, ticker, operation, quantity, date, price, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?)
	`
	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.OwnerID,
		t.Ticker,
		t.Operation,
		t.Quantity,
		t.Date.Format("2006-01-02"),
		t.Price,
		t.Currency,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction rewrites an existing ledger entry in place.
// The rowid (and therefore the insertion sequence) is preserved by the update.
// Returns apperrors.ErrTransactionNotFound if no row was updated.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET ticker = ?, operation = ?, quantity = ?, date = ?, price = ?, currency = NULLIF(?, '')
		WHERE id = ?
	`
	result, err := r.getQuerier().ExecContext(ctx, query,
		t.Ticker,
		t.Operation,
		t.Quantity,
		t.Date.Format("2006-01-02"),
		t.Price,
		t.Currency,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// DeleteTransaction removes a ledger entry by ID.
// Returns apperrors.ErrTransactionNotFound if no row was deleted.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// NetQuantityBefore computes buys minus sells for an (owner, ticker) pair over
// all transactions ordered strictly before the ledger position (asOf,
// beforeSeq), optionally excluding one transaction (the one being edited).
// The position comparison uses the same (date, rowid) ordering the FIFO
// matcher consumes, so a same-day entry with a later sequence is not counted.
func (r *TransactionRepository) NetQuantityBefore(ownerID, ticker string, asOf time.Time, beforeSeq int64, excludeTransactionID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN operation = 'Buy' THEN quantity ELSE -quantity END), 0)
		FROM "transaction"
		WHERE owner_id = ? AND ticker = ? AND (date < ? OR (date = ? AND rowid < ?))
	`
	asOfStr := asOf.Format("2006-01-02")
	args := []any{ownerID, ticker, asOfStr, asOfStr, beforeSeq}

	if excludeTransactionID != "" {
		query += ` AND id != ?`
		args = append(args, excludeTransactionID)
	}

	var net int64
	if err := r.getQuerier().QueryRow(query, args...).Scan(&net); err != nil {
		return 0, fmt.Errorf("failed to sum transaction quantities: %w", err)
	}

	return net, nil
}

// NetQuantity computes buys minus sells over the full history of an (owner, ticker) pair.
func (r *TransactionRepository) NetQuantity(ownerID, ticker string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN operation = 'Buy' THEN quantity ELSE -quantity END), 0)
		FROM "transaction"
		WHERE owner_id = ? AND ticker = ?
	`

	var net int64
	if err := r.getQuerier().QueryRow(query, ownerID, ticker).Scan(&net); err != nil {
		return 0, fmt.Errorf("failed to sum transaction quantities: %w", err)
	}

	return net, nil
}

// CountByTicker returns how many transactions reference a ticker symbol,
// across all owners. Used to guard stock deletion.
func (r *TransactionRepository) CountByTicker(ticker string) (int, error) {
	var count int
	err := r.getQuerier().QueryRow(`SELECT COUNT(*) FROM "transaction" WHERE ticker = ?`, ticker).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// ListOwnedTickers returns the distinct tickers an owner has ever transacted
// in, ordered alphabetically.
func (r *TransactionRepository) ListOwnedTickers(ownerID string) ([]string, error) {
	rows, err := r.getQuerier().Query(`SELECT DISTINCT ticker FROM "transaction" WHERE owner_id = ? ORDER BY ticker ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, ticker)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return tickers, nil
}
