package model

// PortfolioEntry is the persisted per-(owner, ticker) aggregate: net quantity
// and its market value at the latest recorded price. Rows are deleted when the
// net quantity reaches zero and upserted otherwise.
type PortfolioEntry struct {
	OwnerID  string  `json:"ownerId"`
	Ticker   string  `json:"ticker"`
	Quantity int64   `json:"quantity"`
	Value    float64 `json:"value"`
}
