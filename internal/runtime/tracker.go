// Package runtime records the distinct calendar dates on which the system
// produced at least one non-real execution, the basis for the Confidence
// Gate's active-trading-days threshold.
package runtime

import (
	"sort"
	"sync"
	"time"
)

// Tracker is deterministic and serializable: its entire state is a set of
// UTC dates, replayable from the event log.
type Tracker struct {
	mu    sync.Mutex
	dates map[string]time.Time
}

// NewTracker creates an empty runtime tracker.
func NewTracker() *Tracker {
	return &Tracker{dates: make(map[string]time.Time)}
}

// RecordActivity marks at as an active trading date if it isn't already.
// Only Simulated, Shadow, and other non-Real execution should call this.
func (t *Tracker) RecordActivity(at time.Time) {
	day := at.UTC().Truncate(24 * time.Hour)
	key := day.Format("2006-01-02")

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.dates[key]; !ok {
		t.dates[key] = day
	}
}

// ActiveTradingDays returns the count of distinct active dates.
func (t *Tracker) ActiveTradingDays() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.dates)
}

// StartDate returns the earliest active date, or the zero time if none.
func (t *Tracker) StartDate() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.boundsLocked(true)
}

// LastActiveDate returns the latest active date, or the zero time if none.
func (t *Tracker) LastActiveDate() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.boundsLocked(false)
}

func (t *Tracker) boundsLocked(earliest bool) time.Time {
	if len(t.dates) == 0 {
		return time.Time{}
	}

	keys := make([]string, 0, len(t.dates))
	for k := range t.dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if earliest {
		return t.dates[keys[0]]
	}
	return t.dates[keys[len(keys)-1]]
}

// Snapshot is the serializable view of the tracker's state.
type Snapshot struct {
	ActiveTradingDays int
	StartDate         time.Time
	LastActiveDate    time.Time
}

// State returns a consistent snapshot for serialization into daily
// snapshots or replay reconstruction.
func (t *Tracker) State() Snapshot {
	return Snapshot{
		ActiveTradingDays: t.ActiveTradingDays(),
		StartDate:         t.StartDate(),
		LastActiveDate:    t.LastActiveDate(),
	}
}
