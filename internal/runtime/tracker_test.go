package runtime_test

import (
	"testing"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/runtime"
	"github.com/stretchr/testify/assert"
)

func TestRecordActivityDedupesWithinTheSameUTCDay(t *testing.T) {
	tr := runtime.NewTracker()
	day := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

	tr.RecordActivity(day)
	tr.RecordActivity(day.Add(6 * time.Hour))

	assert.Equal(t, 1, tr.ActiveTradingDays())
}

func TestRecordActivityCountsDistinctDays(t *testing.T) {
	tr := runtime.NewTracker()

	tr.RecordActivity(time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC))
	tr.RecordActivity(time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC))
	tr.RecordActivity(time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 3, tr.ActiveTradingDays())
}

func TestStartDateAndLastActiveDateTrackExtremesRegardlessOfInsertOrder(t *testing.T) {
	tr := runtime.NewTracker()

	tr.RecordActivity(time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC))
	tr.RecordActivity(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	tr.RecordActivity(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), tr.StartDate())
	assert.Equal(t, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), tr.LastActiveDate())
}

func TestStartDateIsZeroWithNoActivity(t *testing.T) {
	tr := runtime.NewTracker()

	assert.True(t, tr.StartDate().IsZero())
	assert.True(t, tr.LastActiveDate().IsZero())
}

func TestStateReturnsConsistentSnapshot(t *testing.T) {
	tr := runtime.NewTracker()
	tr.RecordActivity(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))

	snap := tr.State()

	assert.Equal(t, 1, snap.ActiveTradingDays)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), snap.StartDate)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), snap.LastActiveDate)
}
