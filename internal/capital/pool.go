// Package capital implements isolated capital accounting: pools, strategy
// accounts, and the allocator that is the only path by which a strategy
// acquires tradeable capital.
package capital

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Kind identifies which isolated pool a strategy draws capital from.
type Kind string

const (
	KindDirectional Kind = "Directional"
	KindArbitrage   Kind = "Arbitrage"
)

// Pool is the sole allocator of its own capital. All operations are total:
// none of them return an error, they clamp and report what actually moved.
type Pool struct {
	mu sync.Mutex

	kind           Kind
	totalEquity    decimal.Decimal
	allocated      decimal.Decimal
	peakEquity     decimal.Decimal
	maxDrawdownPct decimal.Decimal
}

// NewPool creates a pool with the given initial equity and drawdown
// ceiling.
func NewPool(kind Kind, initialEquity, maxDrawdownPct decimal.Decimal) *Pool {
	return &Pool{
		kind:           kind,
		totalEquity:    initialEquity,
		peakEquity:     initialEquity,
		maxDrawdownPct: maxDrawdownPct,
	}
}

// Kind returns the pool's kind.
func (p *Pool) Kind() Kind { return p.kind }

// Snapshot is an immutable read of a pool's state at one instant.
type Snapshot struct {
	Kind               Kind
	TotalEquity        decimal.Decimal
	Allocated          decimal.Decimal
	Available          decimal.Decimal
	PeakEquity         decimal.Decimal
	CurrentDrawdownPct decimal.Decimal
	MaxDrawdownPct     decimal.Decimal
}

// State returns a consistent snapshot of the pool.
func (p *Pool) State() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Pool) stateLocked() Snapshot {
	return Snapshot{
		Kind:               p.kind,
		TotalEquity:        p.totalEquity,
		Allocated:          p.allocated,
		Available:          p.totalEquity.Sub(p.allocated),
		PeakEquity:         p.peakEquity,
		CurrentDrawdownPct: p.drawdownPctLocked(),
		MaxDrawdownPct:     p.maxDrawdownPct,
	}
}

func (p *Pool) drawdownPctLocked() decimal.Decimal {
	if p.peakEquity.IsZero() {
		return decimal.Zero
	}
	dd := p.peakEquity.Sub(p.totalEquity).Div(p.peakEquity).Mul(decimal.NewFromInt(100))
	if dd.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return dd
}

// CanAllocate reports whether amount is available and the pool has not
// breached its max drawdown.
func (p *Pool) CanAllocate(amount decimal.Decimal) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canAllocateLocked(amount)
}

func (p *Pool) canAllocateLocked(amount decimal.Decimal) bool {
	available := p.totalEquity.Sub(p.allocated)
	if available.LessThan(amount) {
		return false
	}
	return p.drawdownPctLocked().LessThan(p.maxDrawdownPct)
}

// Allocate grants min(amount, available); grants nothing if the pool has
// breached its max drawdown. Returns the amount actually granted.
func (p *Pool) Allocate(amount decimal.Decimal) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drawdownPctLocked().GreaterThanOrEqual(p.maxDrawdownPct) {
		return decimal.Zero
	}

	available := p.totalEquity.Sub(p.allocated)
	granted := decimal.Min(amount, available)
	if granted.LessThan(decimal.Zero) {
		granted = decimal.Zero
	}
	p.allocated = p.allocated.Add(granted)
	return granted
}

// Release returns min(amount, allocated) to the pool's available balance.
func (p *Pool) Release(amount decimal.Decimal) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()

	released := decimal.Min(amount, p.allocated)
	if released.LessThan(decimal.Zero) {
		released = decimal.Zero
	}
	p.allocated = p.allocated.Sub(released)
	return released
}

// UpdateEquity applies realized/unrealized P&L to the pool's total equity,
// advances the high-water mark, and recomputes drawdown.
func (p *Pool) UpdateEquity(pnl decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.totalEquity = p.totalEquity.Add(pnl)
	if p.totalEquity.GreaterThan(p.peakEquity) {
		p.peakEquity = p.totalEquity
	}
}
