// Package mode holds the single process-wide system mode and the guarded
// transitions that change it.
package mode

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Mode is the system-wide trading posture.
type Mode string

const (
	ObserveOnly Mode = "ObserveOnly"
	Aggressive  Mode = "Aggressive"
)

// StartupCheck validates a precondition before a transition is allowed to
// complete. A non-nil error aborts the transition.
type StartupCheck func() error

// Controller is the single-valued, process-wide holder of system mode.
type Controller struct {
	logger *zap.Logger

	mu     sync.RWMutex
	mode   Mode
	checks []StartupCheck

	onChange func(from, to Mode)
}

// NewController creates a controller defaulting to ObserveOnly.
func NewController(logger *zap.Logger, checks ...StartupCheck) *Controller {
	return &Controller{
		logger: logger.Named("mode"),
		mode:   ObserveOnly,
		checks: checks,
	}
}

// OnChange registers a callback invoked after every successful transition,
// used to emit SystemModeChange events.
func (c *Controller) OnChange(fn func(from, to Mode)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Current returns the current mode.
func (c *Controller) Current() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// TransitionToAggressive moves from ObserveOnly to Aggressive after running
// every registered startup check. The transition is one-way per call:
// Aggressive never transitions back to ObserveOnly through this method.
func (c *Controller) TransitionToAggressive() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == Aggressive {
		return nil
	}

	for _, check := range c.checks {
		if err := check(); err != nil {
			c.logger.Error("startup check failed, refusing transition to aggressive", zap.Error(err))
			return fmt.Errorf("startup check failed: %w", err)
		}
	}

	from := c.mode
	c.mode = Aggressive
	c.logger.Info("system mode transitioned", zap.String("from", string(from)), zap.String("to", string(c.mode)))
	if c.onChange != nil {
		c.onChange(from, c.mode)
	}
	return nil
}

// RevertToObserveOnly is an operator-invoked emergency de-escalation. It is
// always permitted: a fail-safe path never needs startup checks.
func (c *Controller) RevertToObserveOnly() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ObserveOnly {
		return
	}

	from := c.mode
	c.mode = ObserveOnly
	c.logger.Warn("system mode reverted to observe-only", zap.String("from", string(from)))
	if c.onChange != nil {
		c.onChange(from, c.mode)
	}
}
