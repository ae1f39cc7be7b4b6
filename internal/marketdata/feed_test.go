package marketdata_test

import (
	"context"
	"testing"

	"github.com/atlas-desktop/trading-governor/internal/execution"
	"github.com/atlas-desktop/trading-governor/internal/marketdata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFeedTickerReturnsFalseForUnknownSymbol(t *testing.T) {
	feed := marketdata.NewFeed()

	_, ok := feed.Ticker(context.Background(), "BTC-USD")

	assert.False(t, ok)
}

func TestFeedSetThenTickerReturnsLatestValue(t *testing.T) {
	feed := marketdata.NewFeed()
	feed.Set(execution.TickerInfo{Symbol: "BTC-USD", Bid: decimal.NewFromInt(100), Ask: decimal.NewFromInt(101)})

	ticker, ok := feed.Ticker(context.Background(), "BTC-USD")

	assert.True(t, ok)
	assert.True(t, ticker.Bid.Equal(decimal.NewFromInt(100)))

	feed.Set(execution.TickerInfo{Symbol: "BTC-USD", Bid: decimal.NewFromInt(200), Ask: decimal.NewFromInt(201)})
	updated, _ := feed.Ticker(context.Background(), "BTC-USD")
	assert.True(t, updated.Bid.Equal(decimal.NewFromInt(200)))
}
