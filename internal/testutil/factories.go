package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/arambaladev/StockPortfolio/internal/model"
)

// StockBuilder provides a fluent interface for creating test stocks.
//
// Example usage:
//
//	// Simple creation with defaults
//	stock := testutil.NewStock().Build(t, db)
//
//	// Customized stock
//	stock := testutil.NewStock().
//	    WithTicker("AAPL").
//	    WithSector("Technology").
//	    Build(t, db)
type StockBuilder struct {
	ID       string
	Name     string
	Ticker   string
	Exchange string
	Sector   string
	Market   string
	Currency string
}

// NewStock creates a StockBuilder with sensible defaults.
func NewStock() *StockBuilder {
	return &StockBuilder{
		ID:       MakeID(),
		Name:     "Test Stock",
		Ticker:   MakeTicker("TST"),
		Exchange: "NYSE",
		Sector:   "Technology",
		Market:   "us_market",
		Currency: "USD",
	}
}

// WithID sets a custom ID.
func (b *StockBuilder) WithID(id string) *StockBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *StockBuilder) WithName(name string) *StockBuilder {
	b.Name = name
	return b
}

// WithTicker sets a custom ticker symbol.
func (b *StockBuilder) WithTicker(ticker string) *StockBuilder {
	b.Ticker = ticker
	return b
}

// WithExchange sets a custom exchange.
func (b *StockBuilder) WithExchange(exchange string) *StockBuilder {
	b.Exchange = exchange
	return b
}

// WithSector sets a custom sector.
func (b *StockBuilder) WithSector(sector string) *StockBuilder {
	b.Sector = sector
	return b
}

// WithMarket sets a custom market.
func (b *StockBuilder) WithMarket(market string) *StockBuilder {
	b.Market = market
	return b
}

// WithCurrency sets a custom currency.
func (b *StockBuilder) WithCurrency(currency string) *StockBuilder {
	b.Currency = currency
	return b
}

// Build creates the stock in the database and returns it.
func (b *StockBuilder) Build(t *testing.T, db *sql.DB) model.Stock {
	t.Helper()

	query := `
		INSERT INTO stock (id, name, ticker, exchange, sector, market, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Ticker, b.Exchange, b.Sector, b.Market, b.Currency)
	if err != nil {
		t.Fatalf("Failed to create test stock: %v", err)
	}

	return model.Stock{
		ID:       b.ID,
		Name:     b.Name,
		Ticker:   b.Ticker,
		Exchange: b.Exchange,
		Sector:   b.Sector,
		Market:   b.Market,
		Currency: b.Currency,
	}
}

// CreateStock creates a stock with the given ticker and default values.
//
// Example usage:
//
//	stock := testutil.CreateStock(t, db, "AAPL")
func CreateStock(t *testing.T, db *sql.DB, ticker string) model.Stock {
	t.Helper()
	return NewStock().WithTicker(ticker).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating test ledger entries.
// Entries are assigned insertion order as they are built, which is the order
// reports read them back in for equal dates.
//
// Example usage:
//
//	tx := testutil.NewTransaction(owner, "AAPL").
//	    Sell(5).
//	    OnDate("2024-03-01").
//	    AtPrice(190).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	OwnerID   string
	Ticker    string
	Operation string
	Quantity  int64
	Date      string
	Price     float64
	Currency  string
}

// NewTransaction creates a TransactionBuilder with sensible defaults: a buy of
// 10 shares at 100.0 dated today.
func NewTransaction(ownerID, ticker string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		OwnerID:   ownerID,
		Ticker:    ticker,
		Operation: model.OperationBuy,
		Quantity:  10,
		Date:      time.Now().UTC().Format("2006-01-02"),
		Price:     100.0,
		Currency:  "USD",
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// Buy marks the entry as a buy of the given quantity.
func (b *TransactionBuilder) Buy(quantity int64) *TransactionBuilder {
	b.Operation = model.OperationBuy
	b.Quantity = quantity
	return b
}

// Sell marks the entry as a sell of the given quantity.
func (b *TransactionBuilder) Sell(quantity int64) *TransactionBuilder {
	b.Operation = model.OperationSell
	b.Quantity = quantity
	return b
}

// OnDate sets the transaction date (YYYY-MM-DD).
func (b *TransactionBuilder) OnDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// AtPrice sets the per-share price.
func (b *TransactionBuilder) AtPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithCurrency sets the transaction currency.
func (b *TransactionBuilder) WithCurrency(currency string) *TransactionBuilder {
	b.Currency = currency
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, owner_id, ticker, operation, quantity, date, price, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query, b.ID, b.OwnerID, b.Ticker, b.Operation, b.Quantity, b.Date, b.Price, b.Currency)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read transaction sequence: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test transaction date %q: %v", b.Date, err)
	}

	return model.Transaction{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Ticker:    b.Ticker,
		Operation: b.Operation,
		Quantity:  b.Quantity,
		Date:      date,
		Price:     b.Price,
		Currency:  b.Currency,
		Seq:       seq,
	}
}

// CreateBuy records a buy for the owner with default price.
func CreateBuy(t *testing.T, db *sql.DB, ownerID, ticker string, quantity int64, date string, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(ownerID, ticker).Buy(quantity).OnDate(date).AtPrice(price).Build(t, db)
}

// CreateSell records a sell for the owner.
func CreateSell(t *testing.T, db *sql.DB, ownerID, ticker string, quantity int64, date string, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(ownerID, ticker).Sell(quantity).OnDate(date).AtPrice(price).Build(t, db)
}

// PriceBuilder provides a fluent interface for creating test price observations.
type PriceBuilder struct {
	ID     string
	Ticker string
	Date   string
	Price  float64
}

// NewPrice creates a PriceBuilder with sensible defaults.
func NewPrice(ticker string) *PriceBuilder {
	return &PriceBuilder{
		ID:     MakeID(),
		Ticker: ticker,
		Date:   time.Now().UTC().Format("2006-01-02"),
		Price:  100.0,
	}
}

// OnDate sets the observation date (YYYY-MM-DD).
func (b *PriceBuilder) OnDate(date string) *PriceBuilder {
	b.Date = date
	return b
}

// AtPrice sets the observed price.
func (b *PriceBuilder) AtPrice(price float64) *PriceBuilder {
	b.Price = price
	return b
}

// Build creates the price observation in the database and returns it.
func (b *PriceBuilder) Build(t *testing.T, db *sql.DB) model.Price {
	t.Helper()

	query := `
		INSERT INTO price (id, ticker, date, price)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Ticker, b.Date, b.Price)
	if err != nil {
		t.Fatalf("Failed to create test price: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test price date %q: %v", b.Date, err)
	}

	return model.Price{
		ID:     b.ID,
		Ticker: b.Ticker,
		Date:   date,
		Price:  b.Price,
	}
}

// CreatePrice records a price observation for the ticker.
//
// Example usage:
//
//	testutil.CreatePrice(t, db, "AAPL", "2024-03-01", 190.0)
func CreatePrice(t *testing.T, db *sql.DB, ticker, date string, price float64) model.Price {
	t.Helper()
	return NewPrice(ticker).OnDate(date).AtPrice(price).Build(t, db)
}
