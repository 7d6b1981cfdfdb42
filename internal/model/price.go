package model

import "time"

// Price is a single authoritative price observation for a ticker on a calendar
// date. The (ticker, date) pair is unique; re-recording a price for the same
// day overwrites the previous value.
type Price struct {
	ID     string    `json:"id"`
	Ticker string    `json:"ticker"`
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
}
