package capital

import (
	"github.com/atlas-desktop/trading-governor/internal/regime"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RiskProfile classifies a strategy's sensitivity to regime confidence.
type RiskProfile string

const (
	RiskProfileConservative RiskProfile = "Conservative"
	RiskProfileAggressive   RiskProfile = "Aggressive"
)

// StrategyMeta is the allocator's view of a strategy: type and risk
// profile. Lifecycle state is not part of it; the allocator reads that
// from the strategy's Account, creating the Account if none exists yet.
type StrategyMeta struct {
	StrategyID  string
	IsArbitrage bool
	RiskProfile RiskProfile
}

// AllocatorConfig holds the allocator's tunable defaults.
type AllocatorConfig struct {
	ProbationDecayRate   decimal.Decimal // default 0.5
	ProbationDecayPeriods int            // default 2
	ArbMinAllocation     decimal.Decimal // default $50
	ArbMinPoolFloor      decimal.Decimal // default $100, warn-only
	AggressiveMaxMultiplier decimal.Decimal // default 1.5
}

// DefaultAllocatorConfig returns the allocator's stated defaults.
func DefaultAllocatorConfig() AllocatorConfig {
	return AllocatorConfig{
		ProbationDecayRate:      decimal.NewFromFloat(0.5),
		ProbationDecayPeriods:   2,
		ArbMinAllocation:        decimal.NewFromInt(50),
		ArbMinPoolFloor:         decimal.NewFromInt(100),
		AggressiveMaxMultiplier: decimal.NewFromFloat(1.5),
	}
}

// StrategyRegistry resolves strategy metadata. Strategies register
// themselves (or are registered by an operator) before they can allocate.
type StrategyRegistry struct {
	meta map[string]StrategyMeta
}

// NewStrategyRegistry creates an empty registry.
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{meta: make(map[string]StrategyMeta)}
}

// Register records metadata for a strategy.
func (r *StrategyRegistry) Register(m StrategyMeta) {
	r.meta[m.StrategyID] = m
}

// Resolve returns the strategy's metadata and whether it is known.
func (r *StrategyRegistry) Resolve(strategyID string) (StrategyMeta, bool) {
	m, ok := r.meta[strategyID]
	return m, ok
}

// Allocator is the only path by which a strategy acquires capital.
type Allocator struct {
	logger   *zap.Logger
	config   AllocatorConfig
	pools    map[Kind]*Pool
	accounts *AccountManager
	registry *StrategyRegistry
}

// NewAllocator wires the allocator to its pools, account manager, and
// strategy registry.
func NewAllocator(logger *zap.Logger, config AllocatorConfig, pools map[Kind]*Pool, accounts *AccountManager, registry *StrategyRegistry) *Allocator {
	return &Allocator{
		logger:   logger.Named("allocator"),
		config:   config,
		pools:    pools,
		accounts: accounts,
		registry: registry,
	}
}

// AllocateToStrategy runs the full allocation algorithm: lifecycle gating,
// probation decay, arbitrage floors, confidence scaling, and the
// release-then-allocate pool exchange. Returns the amount actually
// granted.
func (a *Allocator) AllocateToStrategy(strategyID string, requested decimal.Decimal, verdict *regime.Verdict) decimal.Decimal {
	meta, ok := a.registry.Resolve(strategyID)
	if !ok {
		return decimal.Zero
	}

	kind := KindDirectional
	if meta.IsArbitrage {
		kind = KindArbitrage
	}

	acc := a.accounts.Get(strategyID)
	if acc == nil {
		acc = a.accounts.Create(strategyID, kind)
	}

	pool := a.pools[kind]

	switch acc.LifecycleState {
	case StateDisabled, StatePaused:
		pool.Release(acc.Allocated)
		a.accounts.UpdateAllocation(strategyID, decimal.Zero)
		return decimal.Zero

	case StateProbation:
		return a.applyProbationDecay(acc, pool)
	}

	if kind == KindArbitrage {
		return a.allocateArbitrage(acc, pool, requested)
	}

	if meta.RiskProfile == RiskProfileAggressive && verdict != nil {
		scaled, zeroOut := a.scaleByConfidence(requested, *verdict)
		if zeroOut {
			pool.Release(acc.Allocated)
			a.accounts.UpdateAllocation(strategyID, decimal.Zero)
			return decimal.Zero
		}
		requested = scaled
	}

	return a.standardAllocate(acc, pool, requested)
}

// applyProbationDecay shrinks a probationary account's allocation
// geometrically on each allocation attempt until it bottoms out at zero
// after ProbationDecayPeriods rounds.
func (a *Allocator) applyProbationDecay(acc *Account, pool *Pool) decimal.Decimal {
	if acc.ProbationDecayRounds >= a.config.ProbationDecayPeriods {
		released := pool.Release(acc.Allocated)
		_ = released
		a.accounts.UpdateAllocation(acc.StrategyID, decimal.Zero)
		return decimal.Zero
	}

	newAmount := acc.Allocated.Mul(decimal.NewFromInt(1).Sub(a.config.ProbationDecayRate))
	if newAmount.LessThan(decimal.Zero) {
		newAmount = decimal.Zero
	}
	diff := acc.Allocated.Sub(newAmount)
	pool.Release(diff)

	acc.ProbationDecayRounds++
	a.accounts.UpdateAllocation(acc.StrategyID, newAmount)
	return newAmount
}

// allocateArbitrage raises requested to the per-strategy floor and warns
// (without failing) if the pool's total is itself below its own floor.
func (a *Allocator) allocateArbitrage(acc *Account, pool *Pool, requested decimal.Decimal) decimal.Decimal {
	if requested.LessThan(a.config.ArbMinAllocation) {
		requested = a.config.ArbMinAllocation
	}

	if pool.State().TotalEquity.LessThan(a.config.ArbMinPoolFloor) {
		a.logger.Warn("arbitrage pool total below minimum floor",
			zap.String("strategyId", acc.StrategyID),
			zap.String("poolTotal", pool.State().TotalEquity.String()),
			zap.String("floor", a.config.ArbMinPoolFloor.String()),
		)
	}

	if !pool.CanAllocate(requested) {
		return decimal.Zero
	}

	return a.standardAllocate(acc, pool, requested)
}

// scaleByConfidence applies the Aggressive risk-profile confidence bands.
// The bool return reports whether the caller should zero out and release
// the existing allocation entirely.
func (a *Allocator) scaleByConfidence(requested decimal.Decimal, verdict regime.Verdict) (decimal.Decimal, bool) {
	if verdict.Regime == regime.Unknown {
		return decimal.Zero, true
	}

	c := verdict.Confidence
	switch {
	case c < 0.4:
		return decimal.Zero, true
	case c < 0.6:
		return requested.Mul(decimal.NewFromFloat(0.5)), false
	case c < 0.8:
		return requested, false
	default:
		return requested.Mul(a.config.AggressiveMaxMultiplier), false
	}
}

// standardAllocate releases the account's prior allocation then attempts
// the new amount atomically against the pool, in that mandatory order.
func (a *Allocator) standardAllocate(acc *Account, pool *Pool, requested decimal.Decimal) decimal.Decimal {
	if !pool.CanAllocate(requested) {
		return decimal.Zero
	}

	pool.Release(acc.Allocated)
	granted := pool.Allocate(requested)
	a.accounts.UpdateAllocation(acc.StrategyID, granted)
	return granted
}
