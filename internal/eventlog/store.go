package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/atlas-desktop/trading-governor/internal/storage"
)

// SQLiteStore durably persists every appended event, satisfying
// DurableWriter.
type SQLiteStore struct {
	db *storage.DB
}

// NewSQLiteStore opens (and migrates) the events table.
func NewSQLiteStore(db *storage.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY,
			timestamp TEXT NOT NULL,
			event_type TEXT NOT NULL,
			strategy_id TEXT,
			account_id TEXT,
			reason TEXT,
			blocking_layer TEXT,
			metadata TEXT
		)
	`); err != nil {
		return nil, fmt.Errorf("migrate events: %w", err)
	}
	return s, nil
}

// WriteEvent persists one event. Events are never updated after this.
func (s *SQLiteStore) WriteEvent(e Event) error {
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("marshal event metadata: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO events (id, timestamp, event_type, strategy_id, account_id, reason, blocking_layer, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Timestamp.Format(time.RFC3339Nano), string(e.EventType), e.StrategyID, e.AccountID, e.Reason, string(e.BlockingLayer), string(metadata))
	return err
}

// LoadAll reads every stored event back into memory in id order, for CLI
// utilities that operate on the durable log without a running process.
func (s *SQLiteStore) LoadAll() ([]Event, error) {
	rows, err := s.db.Query(`SELECT id, timestamp, event_type, strategy_id, account_id, reason, blocking_layer, metadata FROM events ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e                      Event
			ts, eventType, blocking string
			metadataRaw            string
		)
		if err := rows.Scan(&e.ID, &ts, &eventType, &e.StrategyID, &e.AccountID, &e.Reason, &blocking, &metadataRaw); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse event timestamp: %w", err)
		}
		e.EventType = Type(eventType)
		e.BlockingLayer = governance.Layer(blocking)
		if metadataRaw != "" {
			if err := json.Unmarshal([]byte(metadataRaw), &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal event metadata: %w", err)
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ExportJSONLines writes every stored event as one JSON object per line in
// id order, matching the event log's external serialization contract.
func (s *SQLiteStore) ExportJSONLines(w io.Writer) error {
	rows, err := s.db.Query(`SELECT id, timestamp, event_type, strategy_id, account_id, reason, blocking_layer, metadata FROM events ORDER BY id ASC`)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for rows.Next() {
		var (
			id                                                      uint64
			ts, eventType, strategyID, accountID, reason, blocking string
			metadataRaw                                            string
		)
		if err := rows.Scan(&id, &ts, &eventType, &strategyID, &accountID, &reason, &blocking, &metadataRaw); err != nil {
			return fmt.Errorf("scan event row: %w", err)
		}

		var metadata map[string]any
		if metadataRaw != "" {
			_ = json.Unmarshal([]byte(metadataRaw), &metadata)
		}

		line, err := json.Marshal(map[string]any{
			"eventId":       id,
			"timestamp":     ts,
			"eventType":     eventType,
			"strategyId":    strategyID,
			"accountId":     accountID,
			"reason":        reason,
			"blockingLayer": blocking,
			"metadata":      metadata,
		})
		if err != nil {
			return fmt.Errorf("marshal exported event: %w", err)
		}

		if _, err := bw.Write(line); err != nil {
			return err
		}
		if _, err := bw.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return rows.Err()
}
