// Package snapshot folds a day's event log into an immutable daily
// summary and reconstructs a day's outcome purely from events for
// replay and audit. Nothing here reads a clock or touches an adapter;
// every timestamp comes from the events themselves.
package snapshot

import (
	"sort"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/eventlog"
	"github.com/atlas-desktop/trading-governor/internal/mode"
	"github.com/atlas-desktop/trading-governor/internal/regime"
	"github.com/shopspring/decimal"
)

// Daily is the sealed, immutable per-day summary.
type Daily struct {
	Date                string
	SystemMode          mode.Mode
	RiskState           string
	TotalEquity         decimal.Decimal
	PoolEquity          map[string]decimal.Decimal
	PoolDrawdown        map[string]decimal.Decimal
	StrategyPnL         map[string]decimal.Decimal
	StrategyDrawdowns   map[string]decimal.Decimal
	RegimeDistribution  map[regime.Label]int
	TradesAttempted     int
	TradesBlocked       int
	TradesExecuted      int
	BlockingReasons     map[string]int
	CapitalAllocation   map[string]decimal.Decimal
	EventTypes          map[string]int
}

// PoolMetrics is the per-pool equity/drawdown input the generator folds
// in alongside the event log; it is not derivable from events alone.
type PoolMetrics struct {
	Equity   map[string]decimal.Decimal
	Drawdown map[string]decimal.Decimal
}

// StrategyMetrics is the per-strategy P&L/drawdown input, likewise
// supplied rather than derived.
type StrategyMetrics struct {
	PnL       map[string]decimal.Decimal
	Drawdowns map[string]decimal.Decimal
}

// Generate folds date's events plus the supplied pool/strategy/
// allocation state into a sealed Daily snapshot. Two calls against an
// unchanged event log and the same metrics produce byte-equal results.
func Generate(date time.Time, events []eventlog.Event, pools PoolMetrics, strategies StrategyMetrics, allocation map[string]decimal.Decimal, currentMode mode.Mode, riskState string, totalEquity decimal.Decimal) Daily {
	dayKey := date.UTC().Format("2006-01-02")

	daily := Daily{
		Date:               dayKey,
		SystemMode:         currentMode,
		RiskState:          riskState,
		TotalEquity:        totalEquity,
		PoolEquity:         copyDecimalMap(pools.Equity),
		PoolDrawdown:       copyDecimalMap(pools.Drawdown),
		StrategyPnL:        copyDecimalMap(strategies.PnL),
		StrategyDrawdowns:  copyDecimalMap(strategies.Drawdowns),
		RegimeDistribution: map[regime.Label]int{},
		BlockingReasons:    map[string]int{},
		CapitalAllocation:  copyDecimalMap(allocation),
		EventTypes:         map[string]int{},
	}

	dayEvents := forDay(events, dayKey)
	for _, e := range dayEvents {
		daily.EventTypes[string(e.EventType)]++

		switch e.EventType {
		case eventlog.TradeExecuted:
			daily.TradesExecuted++
			daily.TradesAttempted++
		case eventlog.TradeBlocked:
			daily.TradesBlocked++
			daily.TradesAttempted++
			if e.Reason != "" {
				daily.BlockingReasons[e.Reason]++
			}
		case eventlog.RegimeDetected:
			if label, ok := e.Metadata["regime"]; ok {
				if l, ok := label.(string); ok {
					daily.RegimeDistribution[regime.Label(l)]++
				}
			}
		}
	}

	return daily
}

func forDay(events []eventlog.Event, dayKey string) []eventlog.Event {
	var out []eventlog.Event
	for _, e := range events {
		if e.Timestamp.UTC().Format("2006-01-02") == dayKey {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyDecimalMap(in map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Store persists and queries sealed Daily snapshots. Once stored, a
// snapshot is never mutated.
type Store interface {
	Save(Daily) error
	ByDate(date string) (Daily, bool, error)
	Range(start, end string) ([]Daily, error)
	MostRecent() (Daily, bool, error)
}
