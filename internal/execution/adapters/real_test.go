package adapters_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/execution"
	"github.com/atlas-desktop/trading-governor/internal/execution/adapters"
	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVenue struct {
	outcome governance.TradeOutcome
	err     error
}

func (v stubVenue) Buy(ctx context.Context, symbol string, qty, price decimal.Decimal) (governance.TradeOutcome, error) {
	return v.outcome, v.err
}
func (v stubVenue) Sell(ctx context.Context, symbol string, qty, price decimal.Decimal) (governance.TradeOutcome, error) {
	return v.outcome, v.err
}
func (v stubVenue) AddOrder(ctx context.Context, descriptor execution.OrderDescriptor) (governance.TradeOutcome, error) {
	return v.outcome, v.err
}
func (v stubVenue) Ticker(ctx context.Context, symbol string) (execution.TickerInfo, error) {
	return execution.TickerInfo{}, nil
}
func (v stubVenue) TickerInfo(ctx context.Context, symbols []string) (map[string]execution.TickerInfo, error) {
	return nil, nil
}
func (v stubVenue) OHLC(ctx context.Context, symbol string, interval time.Duration) ([]execution.OHLCBar, error) {
	return nil, nil
}
func (v stubVenue) Balance(ctx context.Context) (decimal.Decimal, error) { return decimal.Zero, nil }

func realIntent(side governance.Side) governance.TradeIntent {
	return governance.NewTradeIntent("strat-1", "BTC-USD", side, decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.NewFromInt(100), false)
}

func TestRealModeReportsModeReal(t *testing.T) {
	real := adapters.NewReal(stubVenue{})

	assert.Equal(t, execution.ModeReal, real.Mode())
}

func TestRealExecuteDispatchesBuyAndSellToTheRightVenueMethod(t *testing.T) {
	real := adapters.NewReal(stubVenue{outcome: governance.TradeOutcome{Success: true}})

	buyOutcome, err := real.Execute(context.Background(), realIntent(governance.SideBuy))
	require.NoError(t, err)
	assert.True(t, buyOutcome.Success)

	sellOutcome, err := real.Execute(context.Background(), realIntent(governance.SideSell))
	require.NoError(t, err)
	assert.True(t, sellOutcome.Success)
}

func TestRealExecuteBlocksOnVenueErrorRatherThanPropagatingIt(t *testing.T) {
	real := adapters.NewReal(stubVenue{err: errors.New("venue unreachable")})

	outcome, err := real.Execute(context.Background(), realIntent(governance.SideBuy))

	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, governance.FailureAdapterTransient, outcome.FailureCategory)
}

func TestRealExecuteReportsTimeoutWhenContextExpired(t *testing.T) {
	real := adapters.NewReal(stubVenue{err: errors.New("deadline exceeded")})
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	outcome, err := real.Execute(ctx, realIntent(governance.SideBuy))

	require.NoError(t, err)
	assert.Equal(t, governance.FailureTimeout, outcome.FailureCategory)
}
