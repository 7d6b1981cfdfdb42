// Package request defines the JSON request bodies accepted by the API.
package request

// CreateStockRequest is the request body for creating a stock.
type CreateStockRequest struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
	Sector   string `json:"sector"`
	Market   string `json:"market"`
	Currency string `json:"currency"`
}

// UpdateStockRequest is the request body for updating a stock.
// All fields are optional; omitted fields keep their current values.
type UpdateStockRequest struct {
	Name     *string `json:"name"`
	Ticker   *string `json:"ticker"`
	Exchange *string `json:"exchange"`
	Sector   *string `json:"sector"`
	Market   *string `json:"market"`
	Currency *string `json:"currency"`
}
