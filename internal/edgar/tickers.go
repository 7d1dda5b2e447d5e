package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type companyTicker struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// lookupCIK resolves a ticker through the SEC mapping file. The mapping is
// fetched once per client.
func (c *Client) lookupCIK(ctx context.Context, ticker string) (companyTicker, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return companyTicker{}, ErrTickerNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tickers == nil {
		mapping, err := c.fetchTickers(ctx)
		if err != nil {
			return companyTicker{}, err
		}
		c.tickers = mapping
	}

	entry, ok := c.tickers[ticker]
	if !ok {
		return companyTicker{}, fmt.Errorf("%s: %w", ticker, ErrTickerNotFound)
	}
	return entry, nil
}

func (c *Client) fetchTickers(ctx context.Context) (map[string]companyTicker, error) {
	body, err := c.get(ctx, c.tickersURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticker mapping: %w", err)
	}

	// { "0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ... }
	var raw map[string]companyTicker
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse ticker mapping: %w", err)
	}

	mapping := make(map[string]companyTicker, len(raw))
	for _, entry := range raw {
		mapping[strings.ToUpper(entry.Ticker)] = entry
	}
	logger.Debug("loaded ticker mapping", "count", len(mapping))
	return mapping, nil
}
