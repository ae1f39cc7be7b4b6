package governance_test

import (
	"testing"

	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stubGate struct {
	layer  governance.Layer
	verdict governance.Verdict
	calls  *[]governance.Layer
}

func (g stubGate) Layer() governance.Layer { return g.layer }

func (g stubGate) Check(intent governance.TradeIntent) governance.Verdict {
	if g.calls != nil {
		*g.calls = append(*g.calls, g.layer)
	}
	return g.verdict
}

func intent() governance.TradeIntent {
	return governance.NewTradeIntent("strat-1", "BTC-USD", governance.SideBuy, decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(100), true)
}

func TestChainRunsGatesInOrderAndShortCircuitsOnFirstDenial(t *testing.T) {
	var calls []governance.Layer

	chain := governance.NewChain(
		stubGate{layer: governance.LayerCapital, verdict: governance.Allow(governance.LayerCapital), calls: &calls},
		stubGate{layer: governance.LayerRegime, verdict: governance.Deny(governance.LayerRegime, "unfavorable regime", nil), calls: &calls},
		stubGate{layer: governance.LayerPermission, verdict: governance.Allow(governance.LayerPermission), calls: &calls},
		stubGate{layer: governance.LayerRisk, verdict: governance.Allow(governance.LayerRisk), calls: &calls},
	)

	verdict := chain.Run(intent())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, governance.LayerRegime, verdict.Layer)
	assert.Equal(t, []governance.Layer{governance.LayerCapital, governance.LayerRegime}, calls)
}

func TestChainAllowsWhenEveryGatePasses(t *testing.T) {
	chain := governance.NewChain(
		stubGate{layer: governance.LayerCapital, verdict: governance.Allow(governance.LayerCapital)},
		stubGate{layer: governance.LayerRegime, verdict: governance.Allow(governance.LayerRegime)},
		stubGate{layer: governance.LayerPermission, verdict: governance.Allow(governance.LayerPermission)},
		stubGate{layer: governance.LayerRisk, verdict: governance.Allow(governance.LayerRisk)},
	)

	verdict := chain.Run(intent())

	assert.True(t, verdict.Allowed)
	assert.Equal(t, governance.LayerRisk, verdict.Layer)
}

func TestTradeIntentIDIsStableAcrossCopies(t *testing.T) {
	i := intent()
	copy := i
	assert.Equal(t, i.ID(), copy.ID())
	assert.NotEmpty(t, i.ID())
}

func TestBlockedOutcomeCarriesCategoryAndReason(t *testing.T) {
	outcome := governance.Blocked(governance.FailureRiskDenied, "max daily trades reached")
	assert.False(t, outcome.Success)
	assert.Equal(t, governance.FailureRiskDenied, outcome.FailureCategory)
	assert.Equal(t, "max daily trades reached", outcome.Error)
}
