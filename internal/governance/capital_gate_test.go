package governance_test

import (
	"testing"

	"github.com/atlas-desktop/trading-governor/internal/capital"
	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCapitalGateDeniesWhenStrategyHasNoAccount(t *testing.T) {
	gate := governance.NewCapitalGate(capital.NewAccountManager())

	verdict := gate.Check(intent())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, governance.LayerCapital, verdict.Layer)
}

func TestCapitalGateDeniesWhenAccountHasZeroAllocation(t *testing.T) {
	accounts := capital.NewAccountManager()
	accounts.Create("strat-1", capital.KindDirectional)

	gate := governance.NewCapitalGate(accounts)

	verdict := gate.Check(intent())

	assert.False(t, verdict.Allowed)
}

func TestCapitalGateDeniesWhenEstimatedValueExceedsAllocation(t *testing.T) {
	accounts := capital.NewAccountManager()
	accounts.Create("strat-1", capital.KindDirectional)
	accounts.UpdateAllocation("strat-1", decimal.NewFromInt(50))

	gate := governance.NewCapitalGate(accounts)

	verdict := gate.Check(intent())

	assert.False(t, verdict.Allowed)
}

func TestCapitalGateAllowsWhenEstimatedValueWithinAllocation(t *testing.T) {
	accounts := capital.NewAccountManager()
	accounts.Create("strat-1", capital.KindDirectional)
	accounts.UpdateAllocation("strat-1", decimal.NewFromInt(1000))

	gate := governance.NewCapitalGate(accounts)

	verdict := gate.Check(intent())

	assert.True(t, verdict.Allowed)
}
