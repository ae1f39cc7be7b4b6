// Package execution funnels every trade intent that clears the gate chain
// into exactly one adapter: the real venue, the high-fidelity simulator,
// or the shadow tracker's simulator-backed observation path.
package execution

import (
	"context"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/shopspring/decimal"
)

// Mode is a closed sum type over where a cleared intent is routed. The
// Execution Manager dispatches on this rather than branching on strings.
type Mode int

const (
	// ModeUninitialized is the zero value; using it is a programmer error.
	ModeUninitialized Mode = iota
	ModeReal
	ModeSimulation
	ModeShadow
)

func (m Mode) String() string {
	switch m {
	case ModeReal:
		return "Real"
	case ModeSimulation:
		return "Simulation"
	case ModeShadow:
		return "Shadow"
	default:
		return "Uninitialized"
	}
}

// TickerInfo is a point-in-time market snapshot for a symbol.
type TickerInfo struct {
	Symbol    string
	Bid       decimal.Decimal
	Ask       decimal.Decimal
	Last      decimal.Decimal
	Timestamp time.Time
}

// OHLCBar is one bar of historical price data.
type OHLCBar struct {
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
}

// OrderDescriptor is a venue-agnostic order request, used by add-order
// calls that don't fit the simple buy/sell shape (e.g. stop or bracket
// orders placed by the arbitrage executor's neutralization path).
type OrderDescriptor struct {
	Symbol   string
	Side     governance.Side
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Kind     string
}

// VenueAdapter is the external collaborator interface for a live trading
// venue. Every method may block on network I/O and must honor ctx's
// deadline. Failures surface as structured errors, never panics.
type VenueAdapter interface {
	Buy(ctx context.Context, symbol string, qty, price decimal.Decimal) (governance.TradeOutcome, error)
	Sell(ctx context.Context, symbol string, qty, price decimal.Decimal) (governance.TradeOutcome, error)
	AddOrder(ctx context.Context, descriptor OrderDescriptor) (governance.TradeOutcome, error)
	Ticker(ctx context.Context, symbol string) (TickerInfo, error)
	TickerInfo(ctx context.Context, symbols []string) (map[string]TickerInfo, error)
	OHLC(ctx context.Context, symbol string, interval time.Duration) ([]OHLCBar, error)
	Balance(ctx context.Context) (decimal.Decimal, error)
}

// Adapter is the internal dispatch contract every execution mode
// implements. It is the only surface the Execution Manager calls through;
// no adapter method is reachable any other way.
type Adapter interface {
	Mode() Mode
	Execute(ctx context.Context, intent governance.TradeIntent) (governance.TradeOutcome, error)
}

// MarketDataSource resolves current bid/ask/last for a symbol. The
// simulator and shadow adapters depend on this rather than synthesizing
// prices.
type MarketDataSource interface {
	Ticker(ctx context.Context, symbol string) (TickerInfo, bool)
}
