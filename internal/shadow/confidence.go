package shadow

import (
	"fmt"

	"github.com/atlas-desktop/trading-governor/internal/regime"
)

// ConfidenceThresholds are the evidence bars a strategy must clear before
// real execution is admitted.
type ConfidenceThresholds struct {
	MinShadowTrades      int
	MinActiveTradingDays int
	MinConfidenceScore   float64
	MinRegimeCoverage    int
}

// DefaultConfidenceThresholds returns the stated defaults: 500 trades,
// 100 active days, a 90 confidence score, and per-regime coverage.
func DefaultConfidenceThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{
		MinShadowTrades:      500,
		MinActiveTradingDays: 100,
		MinConfidenceScore:   90,
		MinRegimeCoverage:    20,
	}
}

// UnsafeCombo flags a (strategy, regime) pairing known to have failed
// validation; it is never auto-cleared.
type UnsafeCombo struct {
	StrategyID string
	Regime     regime.Label
}

// CheckResult is the Confidence Gate's verdict.
type CheckResult struct {
	Allowed bool
	Reasons []string
	Metrics ParitySummary
}

// ConfidenceGate hard-blocks live execution until accumulated shadow
// evidence clears every threshold.
type ConfidenceGate struct {
	thresholds   ConfidenceThresholds
	store        Store
	tracker      *Tracker
	unsafeCombos map[UnsafeCombo]bool
	regimes      []regime.Label
}

// NewConfidenceGate builds a gate bound to the durable shadow store.
func NewConfidenceGate(thresholds ConfidenceThresholds, store Store, tracker *Tracker) *ConfidenceGate {
	return &ConfidenceGate{
		thresholds:   thresholds,
		store:        store,
		tracker:      tracker,
		unsafeCombos: make(map[UnsafeCombo]bool),
		regimes:      []regime.Label{regime.Favorable, regime.Unfavorable, regime.Unknown},
	}
}

// MarkUnsafe records a (strategy, regime) combination as permanently
// disqualifying, regardless of accumulated evidence.
func (g *ConfidenceGate) MarkUnsafe(strategyID string, label regime.Label) {
	g.unsafeCombos[UnsafeCombo{StrategyID: strategyID, Regime: label}] = true
}

// Check evaluates every threshold and returns a structured result; it
// never blocks and never mutates state.
func (g *ConfidenceGate) Check(strategyID string) CheckResult {
	result := CheckResult{Allowed: true, Metrics: g.tracker.Summary()}

	tradeCount, err := g.store.CountRecords()
	if err != nil || tradeCount < g.thresholds.MinShadowTrades {
		result.Allowed = false
		result.Reasons = append(result.Reasons, fmt.Sprintf("shadow trade count %d below minimum %d", tradeCount, g.thresholds.MinShadowTrades))
	}

	days, err := g.store.CountDistinctDays()
	if err != nil || days < g.thresholds.MinActiveTradingDays {
		result.Allowed = false
		result.Reasons = append(result.Reasons, fmt.Sprintf("active trading days %d below minimum %d", days, g.thresholds.MinActiveTradingDays))
	}

	score := g.confidenceScore(tradeCount, days)
	if score < g.thresholds.MinConfidenceScore {
		result.Allowed = false
		result.Reasons = append(result.Reasons, fmt.Sprintf("overall confidence score %.1f below minimum %.1f", score, g.thresholds.MinConfidenceScore))
	}

	for _, label := range g.regimes {
		count, err := g.store.CountByRegime(label)
		if err != nil || count < g.thresholds.MinRegimeCoverage {
			result.Allowed = false
			result.Reasons = append(result.Reasons, fmt.Sprintf("regime %s coverage %d below minimum %d", label, count, g.thresholds.MinRegimeCoverage))
		}
	}

	for combo, unsafe := range g.unsafeCombos {
		if unsafe && combo.StrategyID == strategyID {
			result.Allowed = false
			result.Reasons = append(result.Reasons, fmt.Sprintf("strategy %s marked unsafe for regime %s", combo.StrategyID, combo.Regime))
		}
	}

	return result
}

// confidenceScore blends trade volume and trading-day coverage into a
// single 0-100 score against the configured thresholds.
func (g *ConfidenceGate) confidenceScore(tradeCount, days int) float64 {
	tradeScore := percentOf(tradeCount, g.thresholds.MinShadowTrades)
	dayScore := percentOf(days, g.thresholds.MinActiveTradingDays)
	return (tradeScore + dayScore) / 2
}

func percentOf(value, target int) float64 {
	if target <= 0 {
		return 100
	}
	pct := float64(value) / float64(target) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Enforce raises a structured error when Check would deny strategyID. The
// Execution Manager calls this immediately before dispatching to the real
// adapter.
func (g *ConfidenceGate) Enforce(strategyID string) error {
	result := g.Check(strategyID)
	if result.Allowed {
		return nil
	}
	return &BlockedError{Reasons: result.Reasons}
}

// BlockedError reports why the Confidence Gate refused real execution.
type BlockedError struct {
	Reasons []string
}

func (e *BlockedError) Error() string {
	if len(e.Reasons) == 0 {
		return "confidence gate blocked real execution"
	}
	return fmt.Sprintf("confidence gate blocked real execution: %s", e.Reasons[0])
}
