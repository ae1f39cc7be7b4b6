// Package risk implements the final pre-execution check: per-account daily
// trade, loss, position-size, and volatility ceilings, with a pause
// trigger on daily-loss breach.
package risk

import (
	"sync"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config holds the Risk Governor's per-account ceilings.
type Config struct {
	MaxDailyTrades      int
	MaxDailyLossPct      decimal.Decimal
	MaxPositionSizePct   decimal.Decimal
	MaxVolatility        decimal.Decimal
}

// DefaultConfig returns conservative defaults.
func DefaultConfig() Config {
	return Config{
		MaxDailyTrades:    50,
		MaxDailyLossPct:   decimal.NewFromFloat(0.05),
		MaxPositionSizePct: decimal.NewFromFloat(0.1),
		MaxVolatility:     decimal.NewFromFloat(0.25),
	}
}

type accountDay struct {
	date       time.Time
	trades     int
	realizedPnL decimal.Decimal
	paused     bool
}

// VolatilityLookup resolves current realized volatility for a symbol. It
// is satisfied by the regime detector or any equivalent source.
type VolatilityLookup func(symbol string) decimal.Decimal

// EquityLookup resolves a strategy's current allocated equity, used to
// express the position-size ceiling as a percentage.
type EquityLookup func(strategyID string) decimal.Decimal

// Governor is the Risk gate, last in the chain before execution.
type Governor struct {
	logger     *zap.Logger
	config     Config
	volatility VolatilityLookup
	equity     EquityLookup

	mu   sync.Mutex
	days map[string]*accountDay // keyed by strategy-id
}

// NewGovernor builds a Risk Governor.
func NewGovernor(logger *zap.Logger, config Config, volatility VolatilityLookup, equity EquityLookup) *Governor {
	return &Governor{
		logger:     logger.Named("risk"),
		config:     config,
		volatility: volatility,
		equity:     equity,
		days:       make(map[string]*accountDay),
	}
}

// Layer identifies this gate in a chain.
func (g *Governor) Layer() governance.Layer { return governance.LayerRisk }

func (g *Governor) dayFor(strategyID string) *accountDay {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	d, ok := g.days[strategyID]
	if !ok || !d.date.Equal(today) {
		d = &accountDay{date: today}
		g.days[strategyID] = d
	}
	return d
}

// Check evaluates the risk ceilings for intent's strategy.
func (g *Governor) Check(intent governance.TradeIntent) governance.Verdict {
	g.mu.Lock()
	defer g.mu.Unlock()

	d := g.dayFor(intent.StrategyID)

	if d.paused {
		return governance.Deny(governance.LayerRisk, "strategy paused after daily loss breach", map[string]any{
			"strategyId": intent.StrategyID,
		})
	}

	if d.trades >= g.config.MaxDailyTrades {
		return governance.Deny(governance.LayerRisk, "max daily trades reached", map[string]any{
			"limit": g.config.MaxDailyTrades,
		})
	}

	if g.volatility != nil {
		vol := g.volatility(intent.Symbol)
		if vol.GreaterThan(g.config.MaxVolatility) {
			return governance.Deny(governance.LayerRisk, "volatility ceiling exceeded", map[string]any{
				"volatility": vol.String(),
				"ceiling":    g.config.MaxVolatility.String(),
			})
		}
	}

	if g.equity != nil {
		equity := g.equity(intent.StrategyID)
		if equity.GreaterThan(decimal.Zero) {
			positionPct := intent.EstimatedValue.Div(equity)
			if positionPct.GreaterThan(g.config.MaxPositionSizePct) {
				return governance.Deny(governance.LayerRisk, "position size exceeds max percent of equity", map[string]any{
					"positionPct": positionPct.String(),
					"ceiling":     g.config.MaxPositionSizePct.String(),
				})
			}
		}
	}

	return governance.Allow(governance.LayerRisk)
}

// RecordTrade books a realized trade for daily accounting. A realized
// loss crossing MaxDailyLossPct of equity pauses the strategy until
// manual resume or calendar-day rollover.
func (g *Governor) RecordTrade(strategyID string, pnl, equity decimal.Decimal) {
	g.mu.Lock()
	defer g.mu.Unlock()

	d := g.dayFor(strategyID)
	d.trades++
	d.realizedPnL = d.realizedPnL.Add(pnl)

	if equity.IsZero() {
		return
	}
	lossPct := d.realizedPnL.Neg().Div(equity)
	if lossPct.GreaterThanOrEqual(g.config.MaxDailyLossPct) {
		d.paused = true
		g.logger.Warn("strategy paused: daily loss threshold breached",
			zap.String("strategyId", strategyID),
			zap.String("realizedPnL", d.realizedPnL.String()),
		)
	}
}

// Resume manually clears a pause for a strategy without waiting for
// calendar-day rollover.
func (g *Governor) Resume(strategyID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if d, ok := g.days[strategyID]; ok {
		d.paused = false
	}
}
