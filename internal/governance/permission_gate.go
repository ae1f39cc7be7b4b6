package governance

import (
	"github.com/atlas-desktop/trading-governor/internal/capital"
	"github.com/atlas-desktop/trading-governor/internal/mode"
)

// PermissionGate enforces system mode: in ObserveOnly it denies every
// intent bound for real execution; in Aggressive it defers to each
// strategy's account lifecycle state.
type PermissionGate struct {
	controller    *mode.Controller
	accounts      *capital.AccountManager
	isRealExecution func() bool
}

// NewPermissionGate builds a PermissionGate. isRealExecution reports
// whether the configured execution mode for this intent resolves to the
// real venue adapter (as opposed to simulation or shadow).
func NewPermissionGate(controller *mode.Controller, accounts *capital.AccountManager, isRealExecution func() bool) *PermissionGate {
	return &PermissionGate{controller: controller, accounts: accounts, isRealExecution: isRealExecution}
}

// Layer identifies this gate in a chain.
func (g *PermissionGate) Layer() Layer { return LayerPermission }

// Check applies the mode-gated permission rule.
func (g *PermissionGate) Check(intent TradeIntent) Verdict {
	if g.controller.Current() == mode.ObserveOnly {
		if g.isRealExecution() {
			return Deny(LayerPermission, "system mode is observe-only", map[string]any{
				"mode": string(mode.ObserveOnly),
			})
		}
		return Allow(LayerPermission)
	}

	acc := g.accounts.Get(intent.StrategyID)
	if acc == nil || acc.LifecycleState != capital.StateActive {
		state := "unknown"
		if acc != nil {
			state = string(acc.LifecycleState)
		}
		return Deny(LayerPermission, "strategy not in active lifecycle state", map[string]any{
			"state": state,
		})
	}

	return Allow(LayerPermission)
}
