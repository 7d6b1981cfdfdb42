// Package alphavantage provides a minimal Alpha Vantage GLOBAL_QUOTE client,
// used as a fallback quote source when Yahoo Finance fails. Requires an API
// key, which the settings service stores encrypted.
package alphavantage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrQuoteNotFound indicates that Alpha Vantage has no quote for the symbol.
	ErrQuoteNotFound = errors.New("alpha vantage: quote not found")

	// ErrRateLimited indicates an API rate-limit or informational response
	// instead of quote data.
	ErrRateLimited = errors.New("alpha vantage: rate limited")
)

// Quote is the latest trade data for a symbol as reported by GLOBAL_QUOTE.
type Quote struct {
	Symbol string
	Price  float64
	AsOf   time.Time
}

// Client queries the Alpha Vantage GLOBAL_QUOTE endpoint.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

// LatestQuote fetches the most recent quote for a symbol.
// Rate-limit responses arrive as HTTP 200 with a Note/Information body and are
// reported as ErrRateLimited.
func (c *Client) LatestQuote(symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, ErrQuoteNotFound
	}

	url := fmt.Sprintf("https://www.alphavantage.co/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s", symbol, c.apiKey)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("User-Agent", "StockPortfolio/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("alpha vantage http %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Quote{}, err
	}
	if _, ok := raw["Note"]; ok {
		return Quote{}, ErrRateLimited
	}
	if _, ok := raw["Information"]; ok {
		return Quote{}, ErrRateLimited
	}

	gq, ok := raw["Global Quote"].(map[string]any)
	if !ok || len(gq) == 0 {
		return Quote{}, ErrQuoteNotFound
	}

	priceStr, _ := gq["05. price"].(string)
	asOfStr, _ := gq["07. latest trading day"].(string)

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		return Quote{}, ErrQuoteNotFound
	}

	asOf := time.Now().UTC()
	if asOfStr != "" {
		if t, parseErr := time.Parse("2006-01-02", asOfStr); parseErr == nil {
			asOf = t
		}
	}

	return Quote{Symbol: symbol, Price: price, AsOf: asOf}, nil
}
