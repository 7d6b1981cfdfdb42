package model

import "time"

// Transaction operation values.
const (
	OperationBuy  = "Buy"
	OperationSell = "Sell"
)

// Transaction represents a single buy or sell entry in an owner's ledger.
// Seq is the storage-assigned insertion sequence; together with Date it forms
// the deterministic ordering key used by sell validation and lot matching.
type Transaction struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Ticker    string    `json:"ticker"`
	Operation string    `json:"operation"`
	Quantity  int64     `json:"quantity"`
	Date      time.Time `json:"date"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency,omitempty"`
	Seq       int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
