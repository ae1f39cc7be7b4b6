package mode_test

import (
	"errors"
	"testing"

	"github.com/atlas-desktop/trading-governor/internal/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewControllerDefaultsToObserveOnly(t *testing.T) {
	c := mode.NewController(zap.NewNop())

	assert.Equal(t, mode.ObserveOnly, c.Current())
}

func TestTransitionToAggressiveRunsEveryCheck(t *testing.T) {
	calls := 0
	check := func() error {
		calls++
		return nil
	}
	c := mode.NewController(zap.NewNop(), check, check)

	require.NoError(t, c.TransitionToAggressive())

	assert.Equal(t, mode.Aggressive, c.Current())
	assert.Equal(t, 2, calls)
}

func TestTransitionToAggressiveRefusedWhenAnyCheckFails(t *testing.T) {
	c := mode.NewController(zap.NewNop(), func() error { return nil }, func() error { return errors.New("not ready") })

	err := c.TransitionToAggressive()

	require.Error(t, err)
	assert.Equal(t, mode.ObserveOnly, c.Current())
}

func TestTransitionToAggressiveIsIdempotent(t *testing.T) {
	c := mode.NewController(zap.NewNop())
	require.NoError(t, c.TransitionToAggressive())

	assert.NoError(t, c.TransitionToAggressive())
	assert.Equal(t, mode.Aggressive, c.Current())
}

func TestRevertToObserveOnlyAlwaysSucceedsEvenWithFailingChecks(t *testing.T) {
	ready := true
	c := mode.NewController(zap.NewNop(), func() error {
		if ready {
			return nil
		}
		return errors.New("not ready")
	})
	require.NoError(t, c.TransitionToAggressive())
	ready = false

	c.RevertToObserveOnly()

	assert.Equal(t, mode.ObserveOnly, c.Current())
}

func TestOnChangeFiresForBothTransitionDirections(t *testing.T) {
	var seen [][2]mode.Mode
	c := mode.NewController(zap.NewNop())
	c.OnChange(func(from, to mode.Mode) {
		seen = append(seen, [2]mode.Mode{from, to})
	})

	require.NoError(t, c.TransitionToAggressive())
	c.RevertToObserveOnly()

	require.Len(t, seen, 2)
	assert.Equal(t, [2]mode.Mode{mode.ObserveOnly, mode.Aggressive}, seen[0])
	assert.Equal(t, [2]mode.Mode{mode.Aggressive, mode.ObserveOnly}, seen[1])
}
