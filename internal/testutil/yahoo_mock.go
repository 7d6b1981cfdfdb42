package testutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/arambaladev/StockPortfolio/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockYahooClient struct {
	// MockResponse is the response to return from query methods
	MockResponse yahoo.Response
	// MockError is the error to return from query methods
	MockError error
	// QueryCount tracks how many times a query method was called
	QueryCount int
}

// NewMockYahooClient creates a new mock Yahoo client with default test data:
// 5 days of closes ending yesterday, latest close 102.0.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockResponse: MakeChartResponse("TEST", 5, 100.0),
	}
}

// QueryFiveDaySymbol mocks the 5-day symbol query with predefined test data.
func (m *MockYahooClient) QueryFiveDaySymbol(_ string) (yahoo.Response, error) {
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// QuerySymbolByDateRange mocks the date range query with predefined test data.
func (m *MockYahooClient) QuerySymbolByDateRange(_ string, _, _ time.Time) (yahoo.Response, error) {
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// ParseChart delegates to the real implementation since it is pure logic.
func (m *MockYahooClient) ParseChart(result yahoo.Response) (yahoo.PriceChart, error) {
	return yahoo.NewFinanceClient().ParseChart(result)
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithResponse configures the mock to return the specified response.
func (m *MockYahooClient) WithResponse(resp yahoo.Response) *MockYahooClient {
	m.MockResponse = resp
	return m
}

// MakeChartResponse builds a chart response with `days` consecutive daily
// closes ending yesterday. The close rises 0.5 per day from basePrice, so the
// latest close is basePrice + 0.5*(days-1). Building through the JSON decoder
// keeps the fixture aligned with what the real API would produce.
func MakeChartResponse(symbol string, days int, basePrice float64) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, days)
	closes := make([]float64, days)
	for i := 0; i < days; i++ {
		timestamps[i] = yesterday.AddDate(0, 0, -days+i+1).Unix()
		closes[i] = basePrice + float64(i)*0.5
	}

	payload := map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []interface{}{
				map[string]interface{}{
					"meta": map[string]interface{}{
						"symbol":           symbol,
						"currency":         "USD",
						"exchangeName":     "NMS",
						"fullExchangeName": "NASDAQ",
						"longName":         "Test Stock Inc.",
						"shortName":        symbol,
					},
					"timestamp": timestamps,
					"indicators": map[string]interface{}{
						"quote": []interface{}{
							map[string]interface{}{
								"open":   closes,
								"close":  closes,
								"high":   closes,
								"low":    closes,
								"volume": make([]int64, days),
							},
						},
					},
				},
			},
			"error": nil,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("marshal chart fixture: %v", err))
	}

	var resp yahoo.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		panic(fmt.Sprintf("unmarshal chart fixture: %v", err))
	}
	return resp
}

// MakeEmptyChartResponse builds a chart response with no results, which the
// provider returns for unknown symbols.
func MakeEmptyChartResponse() yahoo.Response {
	return yahoo.Response{}
}
