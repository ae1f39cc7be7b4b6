package capital

import "github.com/shopspring/decimal"

// PoolUpdater resolves a strategy's pool through its account and applies
// realized P&L, satisfying execution.PoolUpdater without that package
// needing to know about accounts.
type PoolUpdater struct {
	accounts *AccountManager
	pools    map[Kind]*Pool
}

// NewPoolUpdater builds a PoolUpdater bound to the account manager and
// pool set the allocator also uses.
func NewPoolUpdater(accounts *AccountManager, pools map[Kind]*Pool) *PoolUpdater {
	return &PoolUpdater{accounts: accounts, pools: pools}
}

// UpdateEquity applies pnl to the pool backing strategyID's account and
// returns the pool's drawdown percentage after the update.
func (u *PoolUpdater) UpdateEquity(strategyID string, pnl decimal.Decimal) decimal.Decimal {
	acc := u.accounts.Get(strategyID)
	if acc == nil {
		return decimal.Zero
	}
	pool, ok := u.pools[acc.PoolKind]
	if !ok {
		return decimal.Zero
	}
	pool.UpdateEquity(pnl)
	return pool.State().CurrentDrawdownPct
}
