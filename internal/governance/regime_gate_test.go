package governance_test

import (
	"testing"

	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/atlas-desktop/trading-governor/internal/regime"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRegimeGateAllowsNonRegimeDependentIntentsUnconditionally(t *testing.T) {
	detector := regime.NewDetector(zap.NewNop(), regime.DefaultConfig())
	gate := governance.NewRegimeGate(detector)

	i := governance.NewTradeIntent("strat-1", "BTC-USD", governance.SideBuy, intent().BaseQuantity, intent().LimitPrice, intent().EstimatedValue, false)

	assert.True(t, gate.Check(i).Allowed)
}

func TestRegimeGateDeniesRegimeDependentIntentWithUnknownRegime(t *testing.T) {
	detector := regime.NewDetector(zap.NewNop(), regime.DefaultConfig())
	gate := governance.NewRegimeGate(detector)

	verdict := gate.Check(intent())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, governance.LayerRegime, verdict.Layer)
}

func TestRegimeGateDeniesBelowConfidenceFloorEvenWhenFavorable(t *testing.T) {
	detector := regime.NewDetector(zap.NewNop(), regime.Config{
		WindowSize: 20, VolatilityWindow: 5, VolThreshold: 0.25, TrendThreshold: 0.1, ConfidenceFloor: 0.3,
	})
	// Alternating +0.011/-0.01 gives a weak positive trend (about 0.14):
	// Favorable, with confidence about 0.57.
	for i := 0; i < 5; i++ {
		detector.AddReturn("BTC-USD", 0.011)
		detector.AddReturn("BTC-USD", -0.01)
	}
	gate := governance.NewRegimeGate(detector).WithMinConfidence(0.99)

	verdict := gate.Check(intent())

	assert.Equal(t, regime.Favorable, detector.CurrentRegime("BTC-USD").Regime)
	assert.False(t, verdict.Allowed)
}

func TestRegimeGateAllowsFavorableRegimeAboveConfidenceFloor(t *testing.T) {
	detector := regime.NewDetector(zap.NewNop(), regime.Config{
		WindowSize: 20, VolatilityWindow: 5, VolThreshold: 0.25, TrendThreshold: 0.1, ConfidenceFloor: 0.3,
	})
	for i := 0; i < 10; i++ {
		detector.AddReturn("BTC-USD", 0.01)
	}
	gate := governance.NewRegimeGate(detector).WithMinConfidence(0.1)

	verdict := gate.Check(intent())

	assert.True(t, verdict.Allowed)
}

type recordingJournal struct {
	appended []string
	metadata []map[string]any
}

func (r *recordingJournal) Append(eventType string, strategyID, reason string, blockingLayer governance.Layer, metadata map[string]any) {
	r.appended = append(r.appended, eventType)
	r.metadata = append(r.metadata, metadata)
}

func TestRegimeGateEmitsRegimeDetectedWhenJournalAttached(t *testing.T) {
	detector := regime.NewDetector(zap.NewNop(), regime.Config{
		WindowSize: 20, VolatilityWindow: 5, VolThreshold: 0.25, TrendThreshold: 0.1, ConfidenceFloor: 0.3,
	})
	for i := 0; i < 10; i++ {
		detector.AddReturn("BTC-USD", 0.01)
	}
	journal := &recordingJournal{}
	gate := governance.NewRegimeGate(detector).WithMinConfidence(0.1).WithJournal(journal)

	gate.Check(intent())

	a := assert.New(t)
	a.Contains(journal.appended, "RegimeDetected")
	for i, eventType := range journal.appended {
		if eventType == "RegimeDetected" {
			a.Equal("BTC-USD", journal.metadata[i]["symbol"])
		}
	}
}

func TestRegimeGateSkipsJournalForNonRegimeDependentIntent(t *testing.T) {
	detector := regime.NewDetector(zap.NewNop(), regime.DefaultConfig())
	journal := &recordingJournal{}
	gate := governance.NewRegimeGate(detector).WithJournal(journal)

	i := governance.NewTradeIntent("strat-1", "BTC-USD", governance.SideBuy, intent().BaseQuantity, intent().LimitPrice, intent().EstimatedValue, false)
	gate.Check(i)

	assert.Empty(t, journal.appended)
}
