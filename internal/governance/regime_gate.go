package governance

import (
	"github.com/atlas-desktop/trading-governor/internal/regime"
)

// Journal records a RegimeDetected event for the daily snapshot's regime
// distribution. Defined here rather than imported to avoid a cycle with
// the package that implements it.
type Journal interface {
	Append(eventType string, strategyID, reason string, blockingLayer Layer, metadata map[string]any)
}

// RegimeGate denies intents from regime-dependent strategies when the
// current verdict for the intent's symbol is not Favorable or falls below
// the configured confidence floor. Strategies not marked regime-dependent
// pass through untouched.
type RegimeGate struct {
	detector      *regime.Detector
	minConfidence float64
	journal       Journal
}

// NewRegimeGate builds a RegimeGate with the default 0.6 confidence floor.
func NewRegimeGate(detector *regime.Detector) *RegimeGate {
	return &RegimeGate{detector: detector, minConfidence: 0.6}
}

// WithMinConfidence overrides the default confidence floor.
func (g *RegimeGate) WithMinConfidence(min float64) *RegimeGate {
	g.minConfidence = min
	return g
}

// WithJournal attaches an event journal. Once set, every verdict consulted
// for a regime-dependent intent appends a RegimeDetected event.
func (g *RegimeGate) WithJournal(journal Journal) *RegimeGate {
	g.journal = journal
	return g
}

// Layer identifies this gate in a chain.
func (g *RegimeGate) Layer() Layer { return LayerRegime }

// Check evaluates the regime-dependence rule.
func (g *RegimeGate) Check(intent TradeIntent) Verdict {
	if !intent.RegimeDependent {
		return Allow(LayerRegime)
	}

	verdict := g.detector.CurrentRegime(intent.Symbol)

	if g.journal != nil {
		g.journal.Append("RegimeDetected", intent.StrategyID, "", LayerRegime, map[string]any{
			"symbol":     intent.Symbol,
			"regime":     string(verdict.Regime),
			"confidence": verdict.Confidence,
		})
	}

	if verdict.Regime != regime.Favorable {
		return Deny(LayerRegime, "regime not favorable", map[string]any{
			"regime":     string(verdict.Regime),
			"confidence": verdict.Confidence,
		})
	}

	if verdict.Confidence < g.minConfidence {
		return Deny(LayerRegime, "regime confidence below floor", map[string]any{
			"confidence": verdict.Confidence,
			"floor":      g.minConfidence,
		})
	}

	return Allow(LayerRegime)
}
