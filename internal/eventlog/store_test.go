package eventlog_test

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/eventlog"
	"github.com/atlas-desktop/trading-governor/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *eventlog.SQLiteStore {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := eventlog.NewSQLiteStore(db)
	require.NoError(t, err)
	return store
}

func sampleEvent(id uint64) eventlog.Event {
	return eventlog.Event{
		ID:         id,
		Timestamp:  time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
		EventType:  eventlog.TradeExecuted,
		StrategyID: "strat-1",
		Reason:     "filled",
		Metadata:   map[string]any{"qty": float64(1)},
	}
}

func TestWriteEventThenLoadAllRoundTrips(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.WriteEvent(sampleEvent(1)))
	require.NoError(t, store.WriteEvent(sampleEvent(2)))

	events, err := store.LoadAll()
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, uint64(1), events[0].ID)
	assert.Equal(t, eventlog.TradeExecuted, events[0].EventType)
	assert.Equal(t, "strat-1", events[0].StrategyID)
	assert.Equal(t, float64(1), events[0].Metadata["qty"])
}

func TestLoadAllReturnsEventsInIDOrder(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.WriteEvent(sampleEvent(2)))
	require.NoError(t, store.WriteEvent(sampleEvent(1)))

	events, err := store.LoadAll()
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, uint64(1), events[0].ID)
	assert.Equal(t, uint64(2), events[1].ID)
}

func TestExportJSONLinesWritesOneLinePerEvent(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.WriteEvent(sampleEvent(1)))
	require.NoError(t, store.WriteEvent(sampleEvent(2)))

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSONLines(&buf))

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	assert.Len(t, lines, 2)
	assert.Contains(t, buf.String(), `"eventId":1`)
}
