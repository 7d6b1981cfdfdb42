package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/model"
)

// PriceRepository provides data access methods for the price table.
// Each (ticker, date) pair holds at most one observation; writes are
// last-write-wins via the unique constraint.
type PriceRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// WithTx returns a new PriceRepository scoped to the provided transaction.
func (r *PriceRepository) WithTx(tx *sql.Tx) *PriceRepository {
	return &PriceRepository{db: r.db, tx: tx}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *PriceRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// UpsertPrice records a price for (ticker, date), overwriting any existing
// observation for that day. The original row ID is kept on overwrite.
func (r *PriceRepository) UpsertPrice(ctx context.Context, p *model.Price) error {
	query := `
		INSERT INTO price (id, ticker, date, price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (ticker, date) DO UPDATE SET price = excluded.price
	`
	_, err := r.getQuerier().ExecContext(ctx, query, p.ID, p.Ticker, p.Date.Format("2006-01-02"), p.Price)
	if err != nil {
		return fmt.Errorf("failed to upsert price: %w", err)
	}
	return nil
}

// GetLatestPrice returns the most recent observation for a ticker.
// Returns apperrors.ErrPriceNotFound when the ticker has no prices on record.
func (r *PriceRepository) GetLatestPrice(ticker string) (model.Price, error) {
	query := `
		SELECT id, ticker, date, price
		FROM price
		WHERE ticker = ?
		ORDER BY date DESC
		LIMIT 1
	`

	var p model.Price
	var dateStr string
	err := r.getQuerier().QueryRow(query, ticker).Scan(&p.ID, &p.Ticker, &dateStr, &p.Price)
	if err == sql.ErrNoRows {
		return model.Price{}, apperrors.ErrPriceNotFound
	}
	if err != nil {
		return model.Price{}, fmt.Errorf("failed to scan price table results: %w", err)
	}

	p.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Price{}, err
	}

	return p, nil
}

// GetPriceForDate returns the observation for an exact (ticker, date) pair.
// Returns apperrors.ErrPriceNotFound when no observation exists for that day.
func (r *PriceRepository) GetPriceForDate(ticker string, date time.Time) (model.Price, error) {
	query := `
		SELECT id, ticker, date, price
		FROM price
		WHERE ticker = ? AND date = ?
	`

	var p model.Price
	var dateStr string
	err := r.getQuerier().QueryRow(query, ticker, date.Format("2006-01-02")).Scan(&p.ID, &p.Ticker, &dateStr, &p.Price)
	if err == sql.ErrNoRows {
		return model.Price{}, apperrors.ErrPriceNotFound
	}
	if err != nil {
		return model.Price{}, fmt.Errorf("failed to scan price table results: %w", err)
	}

	p.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Price{}, err
	}

	return p, nil
}

// GetPrices retrieves price observations, optionally filtered by ticker,
// ordered by ticker then date ascending.
func (r *PriceRepository) GetPrices(ticker string) ([]model.Price, error) {
	query := `
		SELECT id, ticker, date, price
		FROM price
	`

	var args []any
	if ticker != "" {
		query += ` WHERE ticker = ?`
		args = append(args, ticker)
	}
	query += ` ORDER BY ticker ASC, date ASC`

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price table: %w", err)
	}
	defer rows.Close()

	prices := []model.Price{}
	for rows.Next() {
		var p model.Price
		var dateStr string
		if err := rows.Scan(&p.ID, &p.Ticker, &dateStr, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan price table results: %w", err)
		}
		p.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price table: %w", err)
	}

	return prices, nil
}

// DeletePrice removes a price observation by ID.
// Returns apperrors.ErrPriceNotFound if no row was deleted.
func (r *PriceRepository) DeletePrice(ctx context.Context, priceID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM price WHERE id = ?`, priceID)
	if err != nil {
		return fmt.Errorf("failed to delete price: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPriceNotFound
	}

	return nil
}
