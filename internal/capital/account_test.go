package capital_test

import (
	"testing"

	"github.com/atlas-desktop/trading-governor/internal/capital"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIsIdempotentPerStrategy(t *testing.T) {
	accounts := capital.NewAccountManager()

	first := accounts.Create("strat-1", capital.KindDirectional)
	second := accounts.Create("strat-1", capital.KindArbitrage)

	assert.Same(t, first, second)
	assert.Equal(t, capital.KindDirectional, second.PoolKind)
}

func TestCreateDefaultsToActiveLifecycleState(t *testing.T) {
	accounts := capital.NewAccountManager()

	acc := accounts.Create("strat-1", capital.KindDirectional)

	assert.Equal(t, capital.StateActive, acc.LifecycleState)
	assert.False(t, acc.HasCapital())
}

func TestUpdateAllocationAdvancesPeakAndRecomputesDrawdown(t *testing.T) {
	accounts := capital.NewAccountManager()
	accounts.Create("strat-1", capital.KindDirectional)

	accounts.UpdateAllocation("strat-1", decimal.NewFromInt(1000))
	accounts.UpdateAllocation("strat-1", decimal.NewFromInt(800))

	acc := accounts.Get("strat-1")
	require.NotNil(t, acc)
	assert.True(t, acc.PeakAllocated.Equal(decimal.NewFromInt(1000)))
	assert.True(t, acc.CurrentDrawdownPct.Equal(decimal.NewFromInt(20)))
}

func TestUpdateStateTransitionsLifecycle(t *testing.T) {
	accounts := capital.NewAccountManager()
	accounts.Create("strat-1", capital.KindDirectional)

	accounts.UpdateState("strat-1", capital.StateProbation)

	assert.Equal(t, capital.StateProbation, accounts.Get("strat-1").LifecycleState)
}

func TestGetReturnsNilForUnknownStrategy(t *testing.T) {
	accounts := capital.NewAccountManager()

	assert.Nil(t, accounts.Get("ghost"))
}

func TestUpdateAllocationAndUpdateStateAreNoOpsForUnknownStrategy(t *testing.T) {
	accounts := capital.NewAccountManager()

	accounts.UpdateAllocation("ghost", decimal.NewFromInt(100))
	accounts.UpdateState("ghost", capital.StatePaused)

	assert.Nil(t, accounts.Get("ghost"))
}
