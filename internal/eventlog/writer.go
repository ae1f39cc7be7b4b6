package eventlog

import "github.com/atlas-desktop/trading-governor/internal/governance"

// Writer adapts Log to the narrow execution.EventWriter contract so the
// execution manager doesn't need to build Event values itself.
type Writer struct {
	log *Log
}

// NewWriter wraps log for use by the execution manager.
func NewWriter(log *Log) *Writer {
	return &Writer{log: log}
}

// Append stamps and appends a new event.
func (w *Writer) Append(eventType string, strategyID, reason string, blockingLayer governance.Layer, metadata map[string]any) {
	w.log.Append(Event{
		EventType:     Type(eventType),
		StrategyID:    strategyID,
		Reason:        reason,
		BlockingLayer: blockingLayer,
		Metadata:      metadata,
	})
}
