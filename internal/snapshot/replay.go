package snapshot

import (
	"fmt"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/eventlog"
	"github.com/atlas-desktop/trading-governor/internal/mode"
	"github.com/shopspring/decimal"
)

// Result is what replaying a day's events reconstructs. It never reads
// a clock; every value comes from the events passed in.
type Result struct {
	Date            string
	Executed        int
	Blocked         int
	FinalMode       mode.Mode
	FinalRiskState  string
	MaxDrawdown     decimal.Decimal
	Replayed        bool
	Discrepancies   []string
}

// ReplayDay reconstructs date's outcome from events alone. If snapshot
// is non-nil, its counters are compared against the replay and any
// mismatch is reported as a discrepancy string; the snapshot itself is
// never modified.
func ReplayDay(date time.Time, events []eventlog.Event, snapshot *Daily) Result {
	dayKey := date.UTC().Format("2006-01-02")
	dayEvents := forDay(events, dayKey)

	result := Result{Date: dayKey, Replayed: true}
	maxDrawdown := decimal.Zero

	for _, e := range dayEvents {
		switch e.EventType {
		case eventlog.TradeExecuted:
			result.Executed++
		case eventlog.TradeBlocked:
			result.Blocked++
		case eventlog.SystemModeChange:
			if to, ok := e.Metadata["to"]; ok {
				if s, ok := to.(string); ok {
					result.FinalMode = mode.Mode(s)
				}
			}
		case eventlog.RiskCheck:
			if state, ok := e.Metadata["riskState"]; ok {
				if s, ok := state.(string); ok {
					result.FinalRiskState = s
				}
			}
		case eventlog.CapitalUpdate:
			if dd, ok := e.Metadata["drawdown"]; ok {
				if s, ok := dd.(string); ok {
					if parsed, err := decimal.NewFromString(s); err == nil && parsed.GreaterThan(maxDrawdown) {
						maxDrawdown = parsed
					}
				}
			}
		}
	}
	result.MaxDrawdown = maxDrawdown

	if snapshot != nil {
		result.Discrepancies = compare(result, *snapshot)
	}

	return result
}

// ReplayRange replays every day from start to end inclusive, comparing
// against the corresponding snapshot where one exists in snapshots.
func ReplayRange(start, end time.Time, events []eventlog.Event, snapshots map[string]Daily) []Result {
	var results []Result
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dayKey := d.UTC().Format("2006-01-02")
		var snap *Daily
		if s, ok := snapshots[dayKey]; ok {
			snap = &s
		}
		results = append(results, ReplayDay(d, events, snap))
	}
	return results
}

func compare(result Result, snapshot Daily) []string {
	var discrepancies []string
	if result.Executed != snapshot.TradesExecuted {
		discrepancies = append(discrepancies, fmt.Sprintf("executed count mismatch: replay=%d snapshot=%d", result.Executed, snapshot.TradesExecuted))
	}
	if result.Blocked != snapshot.TradesBlocked {
		discrepancies = append(discrepancies, fmt.Sprintf("blocked count mismatch: replay=%d snapshot=%d", result.Blocked, snapshot.TradesBlocked))
	}
	if result.FinalMode != "" && result.FinalMode != snapshot.SystemMode {
		discrepancies = append(discrepancies, fmt.Sprintf("system mode mismatch: replay=%s snapshot=%s", result.FinalMode, snapshot.SystemMode))
	}
	return discrepancies
}
