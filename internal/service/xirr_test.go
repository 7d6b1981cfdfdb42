package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/arambaladev/StockPortfolio/internal/service"
)

func flow(date string, amount float64) service.CashFlow {
	return service.CashFlow{Date: day(date), Amount: amount}
}

// TestComputeXIRR_KnownRates tests the solver against hand-checkable cases.
//
// WHY: The solver's output feeds user-facing return percentages. A flow of
// -100 followed by +110 exactly one 365-day year later has a closed-form
// answer of 10%, which pins both the day-count convention and the root.
func TestComputeXIRR_KnownRates(t *testing.T) {
	t.Run("ten percent over one year", func(t *testing.T) {
		flows := []service.CashFlow{
			flow("2023-01-01", -100),
			flow("2024-01-01", 110),
		}

		rate, ok := service.ComputeXIRR(flows)
		if !ok {
			t.Fatal("Expected convergence, got none")
		}
		if math.Abs(rate-0.10) > 1e-4 {
			t.Errorf("Expected rate ~0.10, got %v", rate)
		}
	})

	t.Run("negative return", func(t *testing.T) {
		flows := []service.CashFlow{
			flow("2023-01-01", -100),
			flow("2024-01-01", 80),
		}

		rate, ok := service.ComputeXIRR(flows)
		if !ok {
			t.Fatal("Expected convergence, got none")
		}
		if math.Abs(rate-(-0.20)) > 1e-4 {
			t.Errorf("Expected rate ~-0.20, got %v", rate)
		}
	})

	t.Run("root satisfies the NPV equation", func(t *testing.T) {
		flows := []service.CashFlow{
			flow("2023-01-01", -1000),
			flow("2023-07-01", -500),
			flow("2023-10-01", 200),
			flow("2024-06-01", 1500),
		}

		rate, ok := service.ComputeXIRR(flows)
		if !ok {
			t.Fatal("Expected convergence, got none")
		}

		// Re-evaluate NPV at the returned rate with the same day count.
		anchor := day("2023-01-01")
		var npv float64
		for _, cf := range flows {
			years := cf.Date.Sub(anchor).Hours() / 24 / 365
			npv += cf.Amount / math.Pow(1+rate, years)
		}
		if math.Abs(npv) > 1e-4 {
			t.Errorf("NPV at returned rate should be ~0, got %v", npv)
		}
	})

	t.Run("input order does not matter", func(t *testing.T) {
		ordered := []service.CashFlow{
			flow("2023-01-01", -100),
			flow("2024-01-01", 110),
		}
		reversed := []service.CashFlow{
			flow("2024-01-01", 110),
			flow("2023-01-01", -100),
		}

		rate1, ok1 := service.ComputeXIRR(ordered)
		rate2, ok2 := service.ComputeXIRR(reversed)
		if !ok1 || !ok2 {
			t.Fatal("Expected convergence for both orderings")
		}
		if rate1 != rate2 {
			t.Errorf("Order changed the result: %v vs %v", rate1, rate2)
		}
	})
}

// TestComputeXIRR_NoResult tests the inputs for which no rate exists.
//
// WHY: Callers render a missing rate as an absent field; they rely on the
// solver reporting false instead of returning a garbage number or running
// forever. Each guard in the iteration needs a case that trips it.
func TestComputeXIRR_NoResult(t *testing.T) {
	t.Run("fewer than two flows", func(t *testing.T) {
		if _, ok := service.ComputeXIRR([]service.CashFlow{flow("2023-01-01", -100)}); ok {
			t.Error("Expected no result for a single flow")
		}
		if _, ok := service.ComputeXIRR(nil); ok {
			t.Error("Expected no result for no flows")
		}
	})

	t.Run("all flows on the same date", func(t *testing.T) {
		flows := []service.CashFlow{
			flow("2023-01-01", -100),
			flow("2023-01-01", 110),
		}
		if _, ok := service.ComputeXIRR(flows); ok {
			t.Error("Expected no result when no time elapses")
		}
	})

	t.Run("all flows negative never converges", func(t *testing.T) {
		flows := []service.CashFlow{
			flow("2023-01-01", -100),
			flow("2024-01-01", -100),
		}
		if rate, ok := service.ComputeXIRR(flows); ok {
			t.Errorf("Expected no result for strictly negative flows, got %v", rate)
		}
	})

	t.Run("total loss drives the rate below -100%", func(t *testing.T) {
		flows := []service.CashFlow{
			flow("2023-01-01", -100),
			flow("2024-01-01", 0.0000001),
		}

		// Either the solver bails on the discount-base guard or it converges
		// to a rate barely above -1; it must not return a nonsense value.
		if rate, ok := service.ComputeXIRR(flows); ok {
			if rate <= -1 || rate > 0 {
				t.Errorf("Converged to implausible rate %v", rate)
			}
		}
	})
}

// TestComputeXIRR_HoldingStyleFlows tests the flow shape the holdings report
// produces: dated buys plus a terminal valuation today.
//
// WHY: This is the solver's one production caller shape. A position bought in
// two parts and currently worth more than its cost must produce a positive
// rate; worth less, a negative one.
func TestComputeXIRR_HoldingStyleFlows(t *testing.T) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	buys := []service.CashFlow{
		{Date: today.AddDate(-2, 0, 0), Amount: -1000},
		{Date: today.AddDate(-1, 0, 0), Amount: -1000},
	}

	t.Run("appreciated position yields positive rate", func(t *testing.T) {
		flows := append(append([]service.CashFlow{}, buys...), service.CashFlow{Date: today, Amount: 3000})

		rate, ok := service.ComputeXIRR(flows)
		if !ok {
			t.Fatal("Expected convergence, got none")
		}
		if rate <= 0 {
			t.Errorf("Expected positive rate for appreciated position, got %v", rate)
		}
	})

	t.Run("depreciated position yields negative rate", func(t *testing.T) {
		flows := append(append([]service.CashFlow{}, buys...), service.CashFlow{Date: today, Amount: 1200})

		rate, ok := service.ComputeXIRR(flows)
		if !ok {
			t.Fatal("Expected convergence, got none")
		}
		if rate >= 0 {
			t.Errorf("Expected negative rate for depreciated position, got %v", rate)
		}
	})
}
