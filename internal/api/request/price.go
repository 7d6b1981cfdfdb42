package request

// UpsertPriceRequest is the request body for recording a price observation.
// Writing the same (ticker, date) twice overwrites the earlier value.
type UpsertPriceRequest struct {
	Ticker string  `json:"ticker"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Price  float64 `json:"price"`
}

// UpdateMarketDataKeyRequest is the request body for storing the fallback
// market-data provider API key.
type UpdateMarketDataKeyRequest struct {
	APIKey string `json:"apiKey"`
}
