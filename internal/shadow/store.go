package shadow

import (
	"encoding/json"
	"fmt"

	"github.com/atlas-desktop/trading-governor/internal/regime"
	"github.com/atlas-desktop/trading-governor/internal/storage"
)

// SQLiteStore persists shadow records so counts survive process restarts,
// which the Confidence Gate's thresholds depend on.
type SQLiteStore struct {
	db *storage.DB
}

// NewSQLiteStore opens (and migrates) the shadow records table.
func NewSQLiteStore(db *storage.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS shadow_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			decision_timestamp TEXT NOT NULL,
			strategy_id TEXT NOT NULL,
			symbol TEXT NOT NULL,
			regime TEXT NOT NULL,
			payload TEXT NOT NULL,
			UNIQUE(decision_timestamp, strategy_id, symbol)
		)
	`); err != nil {
		return nil, fmt.Errorf("migrate shadow_records: %w", err)
	}
	return s, nil
}

// SaveRecord persists one shadow record, idempotent on
// (decision-timestamp, strategy-id, symbol).
func (s *SQLiteStore) SaveRecord(record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal shadow record: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO shadow_records (decision_timestamp, strategy_id, symbol, regime, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(decision_timestamp, strategy_id, symbol) DO NOTHING
	`, record.DecisionTimestamp.Format("2006-01-02T15:04:05.999999999Z07:00"), record.Intent.StrategyID, record.Intent.Symbol, string(record.RegimeAtDecision), string(payload))
	return err
}

// CountRecords returns the total number of persisted shadow records.
func (s *SQLiteStore) CountRecords() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM shadow_records`).Scan(&count)
	return count, err
}

// CountDistinctDays returns the number of distinct UTC calendar dates with
// at least one shadow record.
func (s *SQLiteStore) CountDistinctDays() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(DISTINCT substr(decision_timestamp, 1, 10)) FROM shadow_records`).Scan(&count)
	return count, err
}

// CountByRegime returns the number of shadow records decided under a given
// regime label.
func (s *SQLiteStore) CountByRegime(label regime.Label) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM shadow_records WHERE regime = ?`, string(label)).Scan(&count)
	return count, err
}
