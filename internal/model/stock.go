package model

// Stock represents reference data for a tradeable security.
// The ticker symbol is the natural key used by transactions and prices.
type Stock struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
	Sector   string `json:"sector,omitempty"`
	Market   string `json:"market,omitempty"`
	Currency string `json:"currency"`
}

// Quote is a provider-agnostic market-data observation for a symbol.
// Descriptive fields may be empty depending on the provider.
type Quote struct {
	Symbol   string
	Name     string
	Exchange string
	Currency string
	Price    float64
	AsOf     string // YYYY-MM-DD
}
