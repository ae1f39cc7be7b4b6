// Package adapters provides the concrete execution.Adapter implementations:
// the real venue adapter and the deterministic simulator that both the
// Simulation and Shadow execution modes build on.
package adapters

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/execution"
	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/shopspring/decimal"
)

// SlippageModel selects the curve relating order size to slippage.
type SlippageModel string

const (
	SlippageLinear     SlippageModel = "Linear"
	SlippageSquareRoot SlippageModel = "SquareRoot"
)

// SimulatedConfig parameterizes the fill algorithm.
type SimulatedConfig struct {
	FixedLatency        time.Duration
	MakerFeeRate        decimal.Decimal
	TakerFeeRate        decimal.Decimal
	MaxLiquidityFraction decimal.Decimal
	SlippageModel       SlippageModel
	SlippageBaseBps     decimal.Decimal
	SlippageSizeExponent float64
}

// DefaultSimulatedConfig mirrors the fill algorithm's stated defaults.
func DefaultSimulatedConfig() SimulatedConfig {
	return SimulatedConfig{
		FixedLatency:         50 * time.Millisecond,
		MakerFeeRate:         decimal.NewFromFloat(0.0002),
		TakerFeeRate:         decimal.NewFromFloat(0.0007),
		MaxLiquidityFraction: decimal.NewFromFloat(0.1),
		SlippageModel:        SlippageLinear,
		SlippageBaseBps:      decimal.NewFromFloat(2),
		SlippageSizeExponent: 1.5,
	}
}

// Clock abstracts the fixed-latency wait so tests can run it with a
// virtual clock instead of a real sleep.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RealClock is the production Clock: a cooperative, cancellable delay.
func RealClock() Clock { return realClock{} }

// Simulated is the high-fidelity execution simulator. Determinism depends
// on a MarketDataSource that returns reproducible tickers; the order
// counter starts at zero for every new Simulated and cannot be seeded.
// The fill algorithm itself performs no wall-clock reads apart from the
// latency wait.
type Simulated struct {
	config     SimulatedConfig
	market     execution.MarketDataSource
	clock      Clock
	orderCounter uint64
}

// NewSimulated builds a simulated adapter bound to a market data source.
func NewSimulated(config SimulatedConfig, market execution.MarketDataSource, clock Clock) *Simulated {
	return &Simulated{config: config, market: market, clock: clock}
}

// Mode reports this adapter's execution mode.
func (s *Simulated) Mode() execution.Mode { return execution.ModeSimulation }

// Execute runs the deterministic fill algorithm against intent.
func (s *Simulated) Execute(ctx context.Context, intent governance.TradeIntent) (governance.TradeOutcome, error) {
	if err := s.clock.Sleep(ctx, s.config.FixedLatency); err != nil {
		return governance.Blocked(governance.FailureTimeout, "simulated latency wait cancelled"), nil
	}

	ticker, ok := s.market.Ticker(ctx, intent.Symbol)
	if !ok {
		return governance.Blocked(governance.FailureNoMarketData, "no market data for symbol"), nil
	}

	mid := ticker.Bid.Add(ticker.Ask).Div(decimal.NewFromInt(2))
	if mid.IsZero() {
		mid = ticker.Last
	}
	if mid.IsZero() {
		return governance.Blocked(governance.FailureNoMarketData, "ticker has no usable price"), nil
	}

	depth := mid.Mul(decimal.NewFromInt(1000))
	maxFillable := depth.Mul(s.config.MaxLiquidityFraction).Div(mid)

	requested := intent.BaseQuantity
	filled := decimal.Min(requested, maxFillable)
	partial := filled.LessThan(requested)

	requestedQuote := requested.Mul(mid)
	sizeRatio := decimal.Min(decimal.NewFromInt(1), requestedQuote.Div(depth))
	slippageBps := s.slippageBps(sizeRatio)

	slippageFactor := slippageBps.Div(decimal.NewFromInt(10000))
	var avgPrice decimal.Decimal
	if intent.Side == governance.SideBuy {
		avgPrice = mid.Add(mid.Mul(slippageFactor))
	} else {
		avgPrice = mid.Sub(mid.Mul(slippageFactor))
	}

	isMaker := s.isMaker(intent, ticker)
	feeRate := s.config.TakerFeeRate
	if isMaker {
		feeRate = s.config.MakerFeeRate
	}
	fees := filled.Mul(avgPrice).Mul(feeRate)

	referenceSide := ticker.Ask
	if intent.Side == governance.SideSell {
		referenceSide = ticker.Bid
	}
	slippage := avgPrice.Sub(referenceSide)

	counter := atomic.AddUint64(&s.orderCounter, 1)
	orderID := fmt.Sprintf("SIM_%d_%d", intent.Timestamp.UnixNano(), counter)

	return governance.TradeOutcome{
		Success:       true,
		OrderID:       orderID,
		ExecutedPrice: avgPrice,
		ExecutedQty:   filled,
		Fees:          fees,
		Slippage:      slippage,
		Partial:       partial,
	}, nil
}

func (s *Simulated) slippageBps(sizeRatio decimal.Decimal) decimal.Decimal {
	sizeFloat, _ := sizeRatio.Float64()
	impact := math.Pow(sizeFloat, s.config.SlippageSizeExponent)

	var multiplier float64
	switch s.config.SlippageModel {
	case SlippageSquareRoot:
		multiplier = math.Sqrt(1 + impact)
	default:
		multiplier = 1 + impact
	}

	return s.config.SlippageBaseBps.Mul(decimal.NewFromFloat(multiplier))
}

func (s *Simulated) isMaker(intent governance.TradeIntent, ticker execution.TickerInfo) bool {
	if intent.LimitPrice.IsZero() {
		return false
	}
	if intent.Side == governance.SideBuy {
		return intent.LimitPrice.LessThanOrEqual(ticker.Ask)
	}
	return intent.LimitPrice.GreaterThanOrEqual(ticker.Bid)
}
