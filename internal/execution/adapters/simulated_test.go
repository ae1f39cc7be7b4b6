package adapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/execution"
	"github.com/atlas-desktop/trading-governor/internal/execution/adapters"
	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopClock struct{}

func (noopClock) Sleep(ctx context.Context, d time.Duration) error { return nil }

type staticFeed struct {
	tickers map[string]execution.TickerInfo
}

func (f staticFeed) Ticker(ctx context.Context, symbol string) (execution.TickerInfo, bool) {
	t, ok := f.tickers[symbol]
	return t, ok
}

func newIntent(qty decimal.Decimal) governance.TradeIntent {
	return governance.NewTradeIntent("strat-1", "BTC-USD", governance.SideBuy, qty, decimal.Zero, qty.Mul(decimal.NewFromInt(100)), true)
}

func TestSimulatedExecuteFillsAtMidPriceWithSlippage(t *testing.T) {
	feed := staticFeed{tickers: map[string]execution.TickerInfo{
		"BTC-USD": {Symbol: "BTC-USD", Bid: decimal.NewFromInt(99), Ask: decimal.NewFromInt(101)},
	}}
	sim := adapters.NewSimulated(adapters.DefaultSimulatedConfig(), feed, noopClock{})

	outcome, err := sim.Execute(context.Background(), newIntent(decimal.NewFromFloat(0.01)))

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.True(t, outcome.ExecutedPrice.GreaterThan(decimal.NewFromInt(100)))
	assert.False(t, outcome.Partial)
}

func TestSimulatedExecuteDeniesWhenNoMarketData(t *testing.T) {
	sim := adapters.NewSimulated(adapters.DefaultSimulatedConfig(), staticFeed{tickers: map[string]execution.TickerInfo{}}, noopClock{})

	outcome, err := sim.Execute(context.Background(), newIntent(decimal.NewFromInt(1)))

	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, governance.FailureNoMarketData, outcome.FailureCategory)
}

func TestSimulatedExecutePartiallyFillsBeyondLiquidityCap(t *testing.T) {
	feed := staticFeed{tickers: map[string]execution.TickerInfo{
		"BTC-USD": {Symbol: "BTC-USD", Bid: decimal.NewFromInt(99), Ask: decimal.NewFromInt(101)},
	}}
	sim := adapters.NewSimulated(adapters.DefaultSimulatedConfig(), feed, noopClock{})

	outcome, err := sim.Execute(context.Background(), newIntent(decimal.NewFromInt(1000)))

	require.NoError(t, err)
	assert.True(t, outcome.Partial)
	assert.True(t, outcome.ExecutedQty.LessThan(decimal.NewFromInt(1000)))
}
