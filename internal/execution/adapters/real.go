package adapters

import (
	"context"

	"github.com/atlas-desktop/trading-governor/internal/execution"
	"github.com/atlas-desktop/trading-governor/internal/governance"
)

// Real dispatches to a live venue adapter. It never retries, and the
// Execution Manager does not retry a failed dispatch either.
type Real struct {
	venue execution.VenueAdapter
}

// NewReal wraps a venue adapter for dispatch by the Execution Manager.
func NewReal(venue execution.VenueAdapter) *Real {
	return &Real{venue: venue}
}

// Mode reports this adapter's execution mode.
func (r *Real) Mode() execution.Mode { return execution.ModeReal }

// Execute places the order against the live venue.
func (r *Real) Execute(ctx context.Context, intent governance.TradeIntent) (governance.TradeOutcome, error) {
	var (
		outcome governance.TradeOutcome
		err     error
	)

	switch intent.Side {
	case governance.SideBuy:
		outcome, err = r.venue.Buy(ctx, intent.Symbol, intent.BaseQuantity, intent.LimitPrice)
	case governance.SideSell:
		outcome, err = r.venue.Sell(ctx, intent.Symbol, intent.BaseQuantity, intent.LimitPrice)
	}

	if err != nil {
		if ctx.Err() != nil {
			return governance.Blocked(governance.FailureTimeout, "venue call exceeded intent deadline"), nil
		}
		return governance.Blocked(governance.FailureAdapterTransient, err.Error()), nil
	}

	return outcome, nil
}
