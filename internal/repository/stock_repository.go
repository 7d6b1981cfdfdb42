package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/model"
)

// StockRepository provides data access methods for the stock table.
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new StockRepository with the provided database connection.
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

const stockColumns = `id, name, ticker, exchange, COALESCE(sector, ''), COALESCE(market, ''), currency`

// GetAllStocks retrieves all stocks ordered by ticker symbol.
func (r *StockRepository) GetAllStocks() ([]model.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock ORDER BY ticker ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	stocks := []model.Stock{}
	for rows.Next() {
		var s model.Stock
		if err := rows.Scan(&s.ID, &s.Name, &s.Ticker, &s.Exchange, &s.Sector, &s.Market, &s.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}
		stocks = append(stocks, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	return stocks, nil
}

// GetStock retrieves a single stock by its ID.
// Returns apperrors.ErrStockNotFound if no stock with the given ID exists.
func (r *StockRepository) GetStock(stockID string) (model.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = ?`

	var s model.Stock
	err := r.db.QueryRow(query, stockID).Scan(&s.ID, &s.Name, &s.Ticker, &s.Exchange, &s.Sector, &s.Market, &s.Currency)
	if err == sql.ErrNoRows {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to scan stock table results: %w", err)
	}

	return s, nil
}

// GetStockByTicker retrieves a single stock by its ticker symbol.
// Returns apperrors.ErrStockNotFound if the ticker is not registered.
func (r *StockRepository) GetStockByTicker(ticker string) (model.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE ticker = ?`

	var s model.Stock
	err := r.db.QueryRow(query, ticker).Scan(&s.ID, &s.Name, &s.Ticker, &s.Exchange, &s.Sector, &s.Market, &s.Currency)
	if err == sql.ErrNoRows {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to scan stock table results: %w", err)
	}

	return s, nil
}

// InsertStock creates a new stock row.
func (r *StockRepository) InsertStock(ctx context.Context, s *model.Stock) error {
	query := `
		INSERT INTO stock (id, name, ticker, exchange, sector, market, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.Ticker, s.Exchange, s.Sector, s.Market, s.Currency); err != nil {
		return fmt.Errorf("failed to insert stock: %w", err)
	}
	return nil
}

// UpdateStock updates an existing stock row.
// Returns apperrors.ErrStockNotFound if no row was updated.
func (r *StockRepository) UpdateStock(ctx context.Context, s *model.Stock) error {
	query := `
		UPDATE stock
		SET name = ?, ticker = ?, exchange = ?, sector = ?, market = ?, currency = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, s.Name, s.Ticker, s.Exchange, s.Sector, s.Market, s.Currency, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStockNotFound
	}

	return nil
}

// DeleteStock removes a stock row by ID.
// Returns apperrors.ErrStockNotFound if no row was deleted.
func (r *StockRepository) DeleteStock(ctx context.Context, stockID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock WHERE id = ?`, stockID)
	if err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStockNotFound
	}

	return nil
}
