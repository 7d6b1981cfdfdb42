package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arambaladev/StockPortfolio/internal/model"
)

// PortfolioRepository provides data access methods for the derived portfolio
// table. Rows are maintained exclusively by the portfolio-recompute operation;
// nothing else writes here.
type PortfolioRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// WithTx returns a new PortfolioRepository scoped to the provided transaction.
func (r *PortfolioRepository) WithTx(tx *sql.Tx) *PortfolioRepository {
	return &PortfolioRepository{db: r.db, tx: tx}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *PortfolioRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// UpsertEntry writes the aggregate row for an (owner, ticker) pair.
func (r *PortfolioRepository) UpsertEntry(ctx context.Context, e *model.PortfolioEntry) error {
	query := `
		INSERT INTO portfolio (owner_id, ticker, quantity, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (owner_id, ticker) DO UPDATE SET quantity = excluded.quantity, value = excluded.value
	`
	if _, err := r.getQuerier().ExecContext(ctx, query, e.OwnerID, e.Ticker, e.Quantity, e.Value); err != nil {
		return fmt.Errorf("failed to upsert portfolio entry: %w", err)
	}
	return nil
}

// DeleteEntry removes the aggregate row for an (owner, ticker) pair.
// Deleting a row that does not exist is not an error; the recompute operation
// is idempotent.
func (r *PortfolioRepository) DeleteEntry(ctx context.Context, ownerID, ticker string) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM portfolio WHERE owner_id = ? AND ticker = ?`, ownerID, ticker); err != nil {
		return fmt.Errorf("failed to delete portfolio entry: %w", err)
	}
	return nil
}

// GetEntries retrieves all aggregate rows for an owner, ordered by ticker.
func (r *PortfolioRepository) GetEntries(ownerID string) ([]model.PortfolioEntry, error) {
	query := `
		SELECT owner_id, ticker, quantity, value
		FROM portfolio
		WHERE owner_id = ?
		ORDER BY ticker ASC
	`

	rows, err := r.getQuerier().Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	entries := []model.PortfolioEntry{}
	for rows.Next() {
		var e model.PortfolioEntry
		if err := rows.Scan(&e.OwnerID, &e.Ticker, &e.Quantity, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return entries, nil
}
