package service

import (
	"math"
	"time"
)

// RoundingPrecision yields two-decimal rounding for monetary values.
const RoundingPrecision = 100

// round rounds a monetary value to two decimal places.
// Used throughout the service layer so API responses stay consistent.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// today returns the current UTC calendar date with the time component dropped,
// matching how ledger and price dates are stored.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
