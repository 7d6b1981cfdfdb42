package model

import "time"

// Holding is the aggregated state of one ticker in an owner's portfolio.
// Xirr is nil when the solver reports no result; clients render it as "N/A".
// All monetary values are rounded to two decimal places.
type Holding struct {
	Ticker             string   `json:"ticker"`
	Name               string   `json:"name"`
	Exchange           string   `json:"exchange"`
	Sector             string   `json:"sector,omitempty"`
	Market             string   `json:"market,omitempty"`
	Currency           string   `json:"currency"`
	Quantity           int64    `json:"quantity"`
	LatestPrice        float64  `json:"latestPrice"`
	MarketValue        float64  `json:"marketValue"`
	CostBasis          float64  `json:"costBasis"`
	UnrealizedGain     float64  `json:"unrealizedGain"`
	RealizedGain       float64  `json:"realizedGain"`
	PercentOfPortfolio float64  `json:"percentOfPortfolio"`
	Xirr               *float64 `json:"xirr"`
}

// HoldingsReport is the per-owner portfolio valuation: every held ticker plus
// portfolio-level totals and market-value groupings.
type HoldingsReport struct {
	OwnerID         string             `json:"ownerId"`
	Holdings        []Holding          `json:"holdings"`
	TotalValue      float64            `json:"totalValue"`
	TotalCostBasis  float64            `json:"totalCostBasis"`
	TotalGain       float64            `json:"totalGain"`
	ValueBySector   map[string]float64 `json:"valueBySector"`
	ValueByCurrency map[string]float64 `json:"valueByCurrency"`
}

// LotDetail is one FIFO lot enriched with valuation for the lot breakdown view.
type LotDetail struct {
	TransactionID  string    `json:"transactionId"`
	AcquiredOn     time.Time `json:"acquiredOn"`
	Quantity       int64     `json:"quantity"`
	Remaining      int64     `json:"remaining"`
	UnitCost       float64   `json:"unitCost"`
	CostBasis      float64   `json:"costBasis"`
	MarketValue    float64   `json:"marketValue"`
	UnrealizedGain float64   `json:"unrealizedGain"`
	Xirr           *float64  `json:"xirr"`
}

// RealizedSale describes one matched buy/sell pair produced by FIFO matching.
// Xirr covers just this pair and is nil when the buy and sale share a date.
type RealizedSale struct {
	TransactionID string    `json:"transactionId"`
	LotID         string    `json:"lotTransactionId"`
	Date          time.Time `json:"date"`
	Quantity      int64     `json:"quantity"`
	SalePrice     float64   `json:"salePrice"`
	UnitCost      float64   `json:"unitCost"`
	Gain          float64   `json:"gain"`
	Xirr          *float64  `json:"xirr"`
}

// LotBreakdown is the per-(owner, ticker) detail view: every lot with its
// valuation plus the realized-sale history.
type LotBreakdown struct {
	OwnerID      string         `json:"ownerId"`
	Ticker       string         `json:"ticker"`
	LatestPrice  float64        `json:"latestPrice"`
	Lots         []LotDetail    `json:"lots"`
	Sales        []RealizedSale `json:"sales"`
	CostBasis    float64        `json:"costBasis"`
	RealizedGain float64        `json:"realizedGain"`
	NetQuantity  int64          `json:"netQuantity"`
}

// SellCheck is the answer to "can this sell be satisfied by holdings as of its
// date", optionally excluding a transaction being edited.
type SellCheck struct {
	Ticker    string `json:"ticker"`
	Quantity  int64  `json:"quantity"`
	Date      string `json:"date"`
	Available int64  `json:"available"`
	Allowed   bool   `json:"allowed"`
}
