package snapshot_test

import (
	"testing"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/eventlog"
	"github.com/atlas-desktop/trading-governor/internal/mode"
	"github.com/atlas-desktop/trading-governor/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayDayReconstructsCountsFromEventsAlone(t *testing.T) {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	events := []eventlog.Event{
		{ID: 1, EventType: eventlog.TradeExecuted, Timestamp: day},
		{ID: 2, EventType: eventlog.TradeBlocked, Timestamp: day},
		{ID: 3, EventType: eventlog.SystemModeChange, Timestamp: day, Metadata: map[string]any{"to": string(mode.Aggressive)}},
	}

	result := snapshot.ReplayDay(day, events, nil)

	assert.Equal(t, 1, result.Executed)
	assert.Equal(t, 1, result.Blocked)
	assert.Equal(t, mode.Aggressive, result.FinalMode)
	assert.Empty(t, result.Discrepancies)
}

func TestReplayDayReportsDiscrepancyAgainstStoredSnapshot(t *testing.T) {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	events := []eventlog.Event{
		{ID: 1, EventType: eventlog.TradeExecuted, Timestamp: day},
	}
	stored := snapshot.Daily{Date: "2026-03-04", TradesExecuted: 5}

	result := snapshot.ReplayDay(day, events, &stored)

	require.NotEmpty(t, result.Discrepancies)
	assert.Contains(t, result.Discrepancies[0], "executed count mismatch")
}

func TestReplayRangeCoversEveryDayInclusive(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	results := snapshot.ReplayRange(start, end, nil, nil)

	require.Len(t, results, 3)
	assert.Equal(t, "2026-03-01", results[0].Date)
	assert.Equal(t, "2026-03-03", results[2].Date)
}
