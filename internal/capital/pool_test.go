package capital_test

import (
	"testing"

	"github.com/atlas-desktop/trading-governor/internal/capital"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPoolAllocateGrantsMinOfRequestedAndAvailable(t *testing.T) {
	pool := capital.NewPool(capital.KindDirectional, decimal.NewFromInt(1000), decimal.NewFromInt(20))

	granted := pool.Allocate(decimal.NewFromInt(1500))

	assert.True(t, granted.Equal(decimal.NewFromInt(1000)))
	assert.True(t, pool.State().Allocated.Equal(decimal.NewFromInt(1000)))
}

func TestPoolAllocateRefusesOnceDrawdownBreachesCeiling(t *testing.T) {
	pool := capital.NewPool(capital.KindDirectional, decimal.NewFromInt(1000), decimal.NewFromInt(10))

	pool.UpdateEquity(decimal.NewFromInt(-150)) // 15% drawdown from peak 1000

	granted := pool.Allocate(decimal.NewFromInt(100))

	assert.True(t, granted.IsZero())
	assert.False(t, pool.CanAllocate(decimal.NewFromInt(1)))
}

func TestPoolReleaseCapsAtAllocated(t *testing.T) {
	pool := capital.NewPool(capital.KindArbitrage, decimal.NewFromInt(500), decimal.NewFromInt(20))
	pool.Allocate(decimal.NewFromInt(200))

	released := pool.Release(decimal.NewFromInt(9999))

	assert.True(t, released.Equal(decimal.NewFromInt(200)))
	assert.True(t, pool.State().Allocated.IsZero())
}

func TestPoolUpdateEquityAdvancesPeakOnlyUpward(t *testing.T) {
	pool := capital.NewPool(capital.KindDirectional, decimal.NewFromInt(1000), decimal.NewFromInt(50))

	pool.UpdateEquity(decimal.NewFromInt(200))
	assert.True(t, pool.State().PeakEquity.Equal(decimal.NewFromInt(1200)))

	pool.UpdateEquity(decimal.NewFromInt(-500))
	state := pool.State()
	assert.True(t, state.PeakEquity.Equal(decimal.NewFromInt(1200)))
	assert.True(t, state.TotalEquity.Equal(decimal.NewFromInt(700)))
}
