package governance_test

import (
	"testing"

	"github.com/atlas-desktop/trading-governor/internal/capital"
	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/atlas-desktop/trading-governor/internal/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPermissionGateDeniesRealExecutionInObserveOnly(t *testing.T) {
	controller := mode.NewController(zap.NewNop())
	gate := governance.NewPermissionGate(controller, capital.NewAccountManager(), func() bool { return true })

	verdict := gate.Check(intent())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, governance.LayerPermission, verdict.Layer)
}

func TestPermissionGateAllowsNonRealExecutionInObserveOnly(t *testing.T) {
	controller := mode.NewController(zap.NewNop())
	gate := governance.NewPermissionGate(controller, capital.NewAccountManager(), func() bool { return false })

	verdict := gate.Check(intent())

	assert.True(t, verdict.Allowed)
}

func TestPermissionGateDeniesAggressiveStrategyNotActive(t *testing.T) {
	controller := mode.NewController(zap.NewNop())
	require.NoError(t, controller.TransitionToAggressive())
	accounts := capital.NewAccountManager()
	accounts.Create("strat-1", capital.KindDirectional)
	accounts.UpdateState("strat-1", capital.StatePaused)

	gate := governance.NewPermissionGate(controller, accounts, func() bool { return true })

	verdict := gate.Check(intent())

	assert.False(t, verdict.Allowed)
}

func TestPermissionGateAllowsAggressiveActiveStrategy(t *testing.T) {
	controller := mode.NewController(zap.NewNop())
	require.NoError(t, controller.TransitionToAggressive())
	accounts := capital.NewAccountManager()
	accounts.Create("strat-1", capital.KindDirectional)

	gate := governance.NewPermissionGate(controller, accounts, func() bool { return true })

	verdict := gate.Check(intent())

	assert.True(t, verdict.Allowed)
}

func TestPermissionGateDeniesAggressiveUnknownStrategy(t *testing.T) {
	controller := mode.NewController(zap.NewNop())
	require.NoError(t, controller.TransitionToAggressive())

	gate := governance.NewPermissionGate(controller, capital.NewAccountManager(), func() bool { return true })

	verdict := gate.Check(intent())

	assert.False(t, verdict.Allowed)
}
