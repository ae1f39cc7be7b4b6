// Package eventlog is the append-only record of every decision the
// governance pipeline makes. It is the single source from which daily
// snapshots are folded and replay is reconstructed.
package eventlog

import (
	"sync"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/governance"
)

// Type is the closed event-type enum.
type Type string

const (
	SignalGenerated     Type = "SignalGenerated"
	TradeBlocked        Type = "TradeBlocked"
	TradeExecuted       Type = "TradeExecuted"
	RegimeDetected      Type = "RegimeDetected"
	SystemModeChange    Type = "SystemModeChange"
	StrategyStateChange Type = "StrategyStateChange"
	RiskCheck           Type = "RiskCheck"
	ConfidenceGateBlocked Type = "ConfidenceGateBlocked"
	CapitalUpdate       Type = "CapitalUpdate"
)

// Event is an append-only record. Once appended it is never mutated.
type Event struct {
	ID            uint64
	Timestamp     time.Time
	EventType     Type
	StrategyID    string
	AccountID     string
	Reason        string
	BlockingLayer governance.Layer
	Metadata      map[string]any
}

// Sink receives every event as it is appended, used to fan events out to
// the operator websocket stream without slowing down the log itself.
type Sink interface {
	OnEvent(Event)
}

// Log is the append-only, monotonically-ordered event sequence. Its type
// exposes only Append and read queries; there is no mutate or delete path.
type Log struct {
	mu      sync.RWMutex
	nextID  uint64
	lastTS  time.Time
	events  []Event
	durable DurableWriter
	sinks   []Sink
}

// DurableWriter persists events before they are considered committed. A
// snapshot for a day must not be declared until every event for that day
// has been durably written.
type DurableWriter interface {
	WriteEvent(Event) error
}

// NewLog creates an empty log, optionally backed by a durable writer.
func NewLog(durable DurableWriter) *Log {
	return &Log{durable: durable}
}

// AddSink registers a fan-out target for newly appended events.
func (l *Log) AddSink(sink Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, sink)
}

// Append assigns the next monotonic id and timestamp, writes the event
// durably if a writer is configured, and returns the stamped event.
func (l *Log) Append(e Event) Event {
	l.mu.Lock()

	l.nextID++
	e.ID = l.nextID

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Timestamp.Before(l.lastTS) {
		e.Timestamp = l.lastTS
	}
	l.lastTS = e.Timestamp

	l.events = append(l.events, e)
	sinks := append([]Sink(nil), l.sinks...)
	durable := l.durable
	l.mu.Unlock()

	if durable != nil {
		_ = durable.WriteEvent(e)
	}
	for _, sink := range sinks {
		sink.OnEvent(e)
	}

	return e
}

// GetAll returns every event appended so far, in order.
func (l *Log) GetAll() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// GetForDay returns every event whose UTC timestamp falls on date.
func (l *Log) GetForDay(date time.Time) []Event {
	day := date.UTC().Format("2006-01-02")
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Event
	for _, e := range l.events {
		if e.Timestamp.UTC().Format("2006-01-02") == day {
			out = append(out, e)
		}
	}
	return out
}

// Filter is the set of optional predicates Filter accepts.
type Filter struct {
	Type       Type
	StrategyID string
	AccountID  string
	From       time.Time
	To         time.Time
}

// Filter returns events matching every non-zero field of f.
func (l *Log) Filter(f Filter) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Event
	for _, e := range l.events {
		if f.Type != "" && e.EventType != f.Type {
			continue
		}
		if f.StrategyID != "" && e.StrategyID != f.StrategyID {
			continue
		}
		if f.AccountID != "" && e.AccountID != f.AccountID {
			continue
		}
		if !f.From.IsZero() && e.Timestamp.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && e.Timestamp.After(f.To) {
			continue
		}
		out = append(out, e)
	}
	return out
}
