package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrStockNotFound indicates that a stock with the given ID or ticker does not exist.
	ErrStockNotFound = errors.New("stock not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPriceNotFound indicates that a price observation with the given ID does not exist.
	ErrPriceNotFound = errors.New("price not found")

	// ErrPortfolioEntryNotFound indicates that no portfolio row exists for an (owner, ticker) pair.
	ErrPortfolioEntryNotFound = errors.New("portfolio entry not found")

	// ErrSettingNotFound indicates that a system setting key has not been configured.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientShares indicates that a sell cannot be satisfied by the
	// net quantity held as of the sell date.
	ErrInsufficientShares = errors.New("insufficient quantity to sell")

	// ErrStockInUse indicates that a stock cannot be deleted because
	// transactions still reference its ticker.
	ErrStockInUse = errors.New("stock has associated transactions")

	// ErrDuplicateTicker indicates that a stock with the same ticker symbol already exists.
	ErrDuplicateTicker = errors.New("ticker symbol already exists")

	// ErrUnknownTicker indicates that the market-data provider has no data for a symbol.
	ErrUnknownTicker = errors.New("ticker symbol not found at market-data provider")

	// ErrInvalidOperation indicates a transaction operation outside Buy/Sell.
	ErrInvalidOperation = errors.New("invalid transaction operation")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")
)

// External collaborator errors represent failures talking to market-data providers.
var (
	// ErrQuoteUnavailable indicates that no provider could produce a quote for a symbol.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrProviderKeyMissing indicates that the fallback provider has no API key configured.
	ErrProviderKeyMissing = errors.New("market-data provider API key not configured")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveStocks       = errors.New("failed to retrieve stocks")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrievePrices       = errors.New("failed to retrieve prices")
	ErrFailedToComputeHoldings      = errors.New("failed to compute holdings")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh prices")
)
