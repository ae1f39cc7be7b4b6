// Package arbitrage runs multi-leg arbitrage signals through the full
// gate chain leg by leg, with atomic-intent abort and neutralization of
// partially-filled signals.
package arbitrage

import (
	"context"
	"sort"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Leg is one side of a multi-leg arbitrage signal.
type Leg struct {
	Priority int
	Symbol   string
	Side     governance.Side
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// Signal is the arbitrage executor's input.
type Signal struct {
	StrategyID    string
	ArbitrageType string
	Symbol        string
	ExpectedEdge  decimal.Decimal
	Legs          []Leg
	AtomicMode    bool
	Neutralize    bool
}

// LegResult records one leg's outcome and measured execution quality.
type LegResult struct {
	Leg      Leg
	Outcome  governance.TradeOutcome
	Latency  time.Duration
	Slippage decimal.Decimal
}

// Result is the arbitrage executor's output.
type Result struct {
	Aborted              bool
	RequiresNeutralization bool
	NeutralizationFailed bool
	Legs                 []LegResult
	NeutralizationLegs   []LegResult
}

// Executor dispatches intents through the full gate chain and executes
// arbitrage signals leg by leg.
type Executor struct {
	logger    *zap.Logger
	dispatch  func(ctx context.Context, intent governance.TradeIntent) governance.TradeOutcome
	journal   Journal
	alerts    Alerter
	maxSlippagePct   decimal.Decimal
	maxExecutionDelay time.Duration
}

// Journal records arbitrage state transitions to the event log.
type Journal interface {
	Append(eventType string, strategyID, reason string, blockingLayer governance.Layer, metadata map[string]any)
}

// Alerter escalates CRITICAL conditions. Normal gate denials never reach
// this; only neutralization failure does.
type Alerter interface {
	Critical(trigger, message string, metadata map[string]any)
}

// Config tunes the thresholds that trigger neutralization.
type Config struct {
	MaxSlippagePct    decimal.Decimal
	MaxExecutionDelay time.Duration
}

// DefaultConfig returns conservative neutralization thresholds.
func DefaultConfig() Config {
	return Config{
		MaxSlippagePct:    decimal.NewFromFloat(0.01),
		MaxExecutionDelay: 2 * time.Second,
	}
}

// NewExecutor builds an arbitrage executor. dispatch is the Execution
// Manager's Execute method; legs never reach an adapter any other way.
func NewExecutor(logger *zap.Logger, config Config, dispatch func(ctx context.Context, intent governance.TradeIntent) governance.TradeOutcome, journal Journal, alerts Alerter) *Executor {
	return &Executor{
		logger:            logger.Named("arbitrage"),
		dispatch:          dispatch,
		journal:           journal,
		alerts:            alerts,
		maxSlippagePct:    config.MaxSlippagePct,
		maxExecutionDelay: config.MaxExecutionDelay,
	}
}

// Execute runs every leg of signal in priority order.
func (e *Executor) Execute(ctx context.Context, signal Signal) Result {
	legs := append([]Leg(nil), signal.Legs...)
	sort.Slice(legs, func(i, j int) bool { return legs[i].Priority < legs[j].Priority })

	var result Result
	var succeeded []LegResult

	for i, leg := range legs {
		intent := governance.NewTradeIntent(signal.StrategyID, leg.Symbol, leg.Side, leg.Quantity, leg.Price, leg.Quantity.Mul(leg.Price), false)

		start := time.Now()
		outcome := e.dispatch(ctx, intent)
		latency := time.Since(start)

		slippage := decimal.Zero
		if !leg.Price.IsZero() {
			slippage = outcome.ExecutedPrice.Sub(leg.Price).Abs().Div(leg.Price)
		}

		legResult := LegResult{Leg: leg, Outcome: outcome, Latency: latency, Slippage: slippage}
		result.Legs = append(result.Legs, legResult)

		e.journal.Append("RiskCheck", signal.StrategyID, "arbitrage leg processed", "", map[string]any{
			"priority": leg.Priority,
			"success":  outcome.Success,
			"latency":  latency.String(),
		})

		if !outcome.Success {
			if signal.AtomicMode && i == 0 {
				result.Aborted = true
				return result
			}
			if len(succeeded) > 0 {
				result.RequiresNeutralization = true
			}
			continue
		}

		if slippage.GreaterThan(e.maxSlippagePct) || latency > e.maxExecutionDelay {
			result.RequiresNeutralization = true
		}

		succeeded = append(succeeded, legResult)
	}

	if result.RequiresNeutralization && signal.Neutralize && len(succeeded) > 0 {
		e.neutralize(ctx, signal, succeeded, &result)
	}

	return result
}

func (e *Executor) neutralize(ctx context.Context, signal Signal, succeeded []LegResult, result *Result) {
	for _, legResult := range succeeded {
		opposite := governance.SideSell
		if legResult.Leg.Side == governance.SideSell {
			opposite = governance.SideBuy
		}

		intent := governance.NewTradeIntent(signal.StrategyID, legResult.Leg.Symbol, opposite, legResult.Leg.Quantity, legResult.Leg.Price, legResult.Leg.Quantity.Mul(legResult.Leg.Price), false)

		start := time.Now()
		outcome := e.dispatch(ctx, intent)
		latency := time.Since(start)

		neutralizationResult := LegResult{Leg: Leg{Priority: legResult.Leg.Priority, Symbol: legResult.Leg.Symbol, Side: opposite, Quantity: legResult.Leg.Quantity, Price: legResult.Leg.Price}, Outcome: outcome, Latency: latency}
		result.NeutralizationLegs = append(result.NeutralizationLegs, neutralizationResult)

		e.journal.Append("RiskCheck", signal.StrategyID, "neutralization attempt", "", map[string]any{
			"symbol":  legResult.Leg.Symbol,
			"success": outcome.Success,
		})

		if !outcome.Success {
			result.NeutralizationFailed = true
		}
	}

	if result.NeutralizationFailed {
		e.alerts.Critical("arbitrage-neutralization-failure", "neutralization failed to fully unwind an arbitrage signal", map[string]any{
			"strategyId": signal.StrategyID,
			"symbol":     signal.Symbol,
		})
	}
}
