// Package marketdata holds the last known ticker per symbol in memory.
// Live ingestion from a venue's market-data feed is out of scope here; an
// operator or a venue integration elsewhere in the deployment is expected
// to call Set as ticks arrive.
package marketdata

import (
	"context"
	"sync"

	"github.com/atlas-desktop/trading-governor/internal/execution"
)

// Feed is a thread-safe last-value cache of per-symbol tickers, satisfying
// execution.MarketDataSource for the simulated and shadow adapters.
type Feed struct {
	mu      sync.RWMutex
	tickers map[string]execution.TickerInfo
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{tickers: make(map[string]execution.TickerInfo)}
}

// Set records the latest known ticker for symbol.
func (f *Feed) Set(ticker execution.TickerInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tickers[ticker.Symbol] = ticker
}

// Ticker returns the last known ticker for symbol, satisfying
// execution.MarketDataSource.
func (f *Feed) Ticker(_ context.Context, symbol string) (execution.TickerInfo, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.tickers[symbol]
	return t, ok
}
