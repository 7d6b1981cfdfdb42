package service

import (
	"math"
	"sort"
	"time"
)

// CashFlow is a dated money movement: negative for outflows (buys), positive
// for inflows (sale proceeds or a terminal mark-to-market).
type CashFlow struct {
	Date   time.Time
	Amount float64
}

// Newton-Raphson parameters for the XIRR solver.
const (
	xirrInitialGuess  = 0.1
	xirrMaxIterations = 100
	xirrTolerance     = 1e-6
)

// ComputeXIRR returns the annualized money-weighted rate of return r solving
//
//	sum( cf_i / (1+r)^(days_i/365) ) = 0
//
// where days_i counts from the earliest date in the set. The input order does
// not matter; flows are sorted by date before solving.
//
// The second return value is false when no result exists: fewer than two
// flows, fewer than two distinct dates, a non-positive discount base reached
// during iteration, a zero derivative, or no convergence within the iteration
// budget. Callers render the absence of a result, they never fail on it.
func ComputeXIRR(flows []CashFlow) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}

	ordered := make([]CashFlow, len(flows))
	copy(ordered, flows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	anchor := ordered[0].Date
	if ordered[len(ordered)-1].Date.Equal(anchor) {
		return 0, false
	}

	guess := xirrInitialGuess
	for i := 0; i < xirrMaxIterations; i++ {
		// Discount base must stay positive; below -100% the powers go complex.
		if 1+guess <= 0 {
			return 0, false
		}

		value, ok := npv(guess, ordered, anchor)
		if !ok {
			return 0, false
		}
		if math.Abs(value) < xirrTolerance {
			return guess, true
		}

		derivative := npvDerivative(guess, ordered, anchor)
		if derivative == 0 {
			return 0, false
		}

		guess -= value / derivative
	}

	return 0, false
}

// npv discounts the flows at the given rate, anchored at the earliest date.
// Rates at or below -100% have no defined present value.
func npv(rate float64, flows []CashFlow, anchor time.Time) (float64, bool) {
	if rate <= -1 {
		return 0, false
	}

	var total float64
	for _, cf := range flows {
		years := yearFraction(anchor, cf.Date)
		total += cf.Amount / math.Pow(1+rate, years)
	}
	return total, true
}

// npvDerivative is d(NPV)/d(rate). Flows on the anchor date have a zero
// exponent and are skipped; they would otherwise divide by zero while
// contributing nothing to the slope.
func npvDerivative(rate float64, flows []CashFlow, anchor time.Time) float64 {
	var total float64
	for _, cf := range flows {
		years := yearFraction(anchor, cf.Date)
		if years == 0 {
			continue
		}
		total -= years * cf.Amount / math.Pow(1+rate, years+1)
	}
	return total
}

func yearFraction(anchor, date time.Time) float64 {
	return date.Sub(anchor).Hours() / 24 / 365
}
