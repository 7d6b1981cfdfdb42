package request

// CreateTransactionRequest is the request body for creating a ledger entry.
type CreateTransactionRequest struct {
	OwnerID   string  `json:"ownerId"`
	Ticker    string  `json:"ticker"`
	Operation string  `json:"operation"`
	Quantity  int64   `json:"quantity"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
}

// UpdateTransactionRequest is the request body for editing a ledger entry.
// All fields are optional; omitted fields keep their current values. The
// owning user cannot be changed.
type UpdateTransactionRequest struct {
	Ticker    *string  `json:"ticker"`
	Operation *string  `json:"operation"`
	Quantity  *int64   `json:"quantity"`
	Date      *string  `json:"date"`
	Price     *float64 `json:"price"`
	Currency  *string  `json:"currency"`
}
