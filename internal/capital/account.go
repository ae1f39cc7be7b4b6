package capital

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// LifecycleState drives whether and how much capital an account may hold.
type LifecycleState string

const (
	StateDisabled  LifecycleState = "Disabled"
	StatePaused    LifecycleState = "Paused"
	StateProbation LifecycleState = "Probation"
	StateActive    LifecycleState = "Active"
)

// Account is a per-strategy accounting record tied to exactly one pool.
type Account struct {
	StrategyID           string
	PoolKind             Kind
	Allocated            decimal.Decimal
	PeakAllocated        decimal.Decimal
	CurrentDrawdownPct   decimal.Decimal
	LifecycleState       LifecycleState
	CreatedAt            time.Time
	UpdatedAt            time.Time
	ProbationDecayRounds int // number of decay applications already performed
}

// HasCapital reports whether the account currently holds any allocation.
func (a *Account) HasCapital() bool {
	return a.Allocated.GreaterThan(decimal.Zero)
}

func (a *Account) recomputeDrawdown() {
	if a.PeakAllocated.IsZero() {
		a.CurrentDrawdownPct = decimal.Zero
		return
	}
	dd := a.PeakAllocated.Sub(a.Allocated).Div(a.PeakAllocated).Mul(decimal.NewFromInt(100))
	if dd.LessThan(decimal.Zero) {
		dd = decimal.Zero
	}
	a.CurrentDrawdownPct = dd
}

// AccountManager is a keyed mapping of strategy-id to account.
type AccountManager struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

// NewAccountManager creates an empty account manager.
func NewAccountManager() *AccountManager {
	return &AccountManager{accounts: make(map[string]*Account)}
}

// Create registers a new account for strategyID in the given pool, unless
// one already exists, in which case the existing account is returned.
func (m *AccountManager) Create(strategyID string, kind Kind) *Account {
	m.mu.Lock()
	defer m.mu.Unlock()

	if acc, ok := m.accounts[strategyID]; ok {
		return acc
	}

	now := time.Now().UTC()
	acc := &Account{
		StrategyID:     strategyID,
		PoolKind:       kind,
		LifecycleState: StateActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.accounts[strategyID] = acc
	return acc
}

// Get returns the account for strategyID, or nil if unknown.
func (m *AccountManager) Get(strategyID string) *Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accounts[strategyID]
}

// UpdateAllocation sets the account's allocation, recomputing peak and
// drawdown.
func (m *AccountManager) UpdateAllocation(strategyID string, newAllocation decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[strategyID]
	if !ok {
		return
	}
	acc.Allocated = newAllocation
	if newAllocation.GreaterThan(acc.PeakAllocated) {
		acc.PeakAllocated = newAllocation
	}
	acc.recomputeDrawdown()
	acc.UpdatedAt = time.Now().UTC()
}

// UpdateState transitions the account's lifecycle state.
func (m *AccountManager) UpdateState(strategyID string, newState LifecycleState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[strategyID]
	if !ok {
		return
	}
	acc.LifecycleState = newState
	acc.UpdatedAt = time.Now().UTC()
}
