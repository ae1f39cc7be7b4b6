package governance

// Layer identifies which gate in the chain produced a verdict.
type Layer string

const (
	LayerCapital    Layer = "CAPITAL"
	LayerRegime     Layer = "REGIME"
	LayerPermission Layer = "PERMISSION"
	LayerRisk       Layer = "RISK"
)

// Verdict is the tagged Allow|Deny result of a single gate. A value type
// deliberately replaces exceptions-as-control-flow, keeping denial handling
// total and auditable.
type Verdict struct {
	Allowed  bool
	Layer    Layer
	Reason   string
	Metadata map[string]any
}

// Allow builds a passing verdict.
func Allow(layer Layer) Verdict {
	return Verdict{Allowed: true, Layer: layer}
}

// Deny builds a failing verdict carrying the blocking layer and reason.
func Deny(layer Layer, reason string, metadata map[string]any) Verdict {
	return Verdict{Allowed: false, Layer: layer, Reason: reason, Metadata: metadata}
}

// Gate inspects a trade intent and returns Allow or Deny.
type Gate interface {
	Layer() Layer
	Check(intent TradeIntent) Verdict
}

// Chain runs gates strictly in order and short-circuits on the first
// denial. No gate after the first denial is ever evaluated.
type Chain struct {
	gates []Gate
}

// NewChain builds a gate chain. Order matters: Capital, Regime,
// Permission, Risk must run in that sequence.
func NewChain(gates ...Gate) *Chain {
	return &Chain{gates: gates}
}

// Run evaluates every gate in order. It returns the first denial, or a
// final Allow verdict with LayerRisk (the last gate) if all gates pass.
func (c *Chain) Run(intent TradeIntent) Verdict {
	var last Verdict
	for _, g := range c.gates {
		last = g.Check(intent)
		if !last.Allowed {
			return last
		}
	}
	return last
}
