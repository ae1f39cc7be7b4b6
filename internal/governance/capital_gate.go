package governance

import (
	"github.com/atlas-desktop/trading-governor/internal/capital"
)

// CapitalGate is the first gate in the chain. It denies any intent whose
// estimated value exceeds the strategy's current allocation.
type CapitalGate struct {
	accounts *capital.AccountManager
}

// NewCapitalGate builds a CapitalGate bound to an account manager.
func NewCapitalGate(accounts *capital.AccountManager) *CapitalGate {
	return &CapitalGate{accounts: accounts}
}

// Layer identifies this gate in a chain.
func (g *CapitalGate) Layer() Layer { return LayerCapital }

// Check denies if no account exists, the account has zero allocation, or
// the intent's estimated value exceeds the allocation.
func (g *CapitalGate) Check(intent TradeIntent) Verdict {
	acc := g.accounts.Get(intent.StrategyID)
	if acc == nil {
		return Deny(LayerCapital, "no capital account for strategy", nil)
	}

	if !acc.HasCapital() {
		return Deny(LayerCapital, "account has zero allocation", map[string]any{
			"allocated": acc.Allocated.String(),
		})
	}

	if intent.EstimatedValue.GreaterThan(acc.Allocated) {
		return Deny(LayerCapital, "trade value exceeds allocated capital", map[string]any{
			"allocated": acc.Allocated.String(),
			"requested": intent.EstimatedValue.String(),
		})
	}

	return Allow(LayerCapital)
}
