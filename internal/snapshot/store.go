package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/atlas-desktop/trading-governor/internal/storage"
)

// SQLiteStore persists sealed Daily snapshots. Inserts are rejected on a
// duplicate date rather than overwritten, since a stored snapshot is
// immutable.
type SQLiteStore struct {
	db *storage.DB
}

// NewSQLiteStore opens (and migrates) the snapshots table.
func NewSQLiteStore(db *storage.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_snapshots (
			date TEXT PRIMARY KEY,
			payload TEXT NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("migrate daily_snapshots: %w", err)
	}
	return s, nil
}

// Save persists daily. It fails if a snapshot for that date already
// exists; snapshots are write-once.
func (s *SQLiteStore) Save(daily Daily) error {
	payload, err := json.Marshal(daily)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO daily_snapshots (date, payload) VALUES (?, ?)`, daily.Date, string(payload))
	return err
}

// ByDate returns the snapshot for date, if one exists.
func (s *SQLiteStore) ByDate(date string) (Daily, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM daily_snapshots WHERE date = ?`, date).Scan(&payload)
	if err == sql.ErrNoRows {
		return Daily{}, false, nil
	}
	if err != nil {
		return Daily{}, false, err
	}
	var daily Daily
	if err := json.Unmarshal([]byte(payload), &daily); err != nil {
		return Daily{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return daily, true, nil
}

// Range returns every snapshot with a date in [start, end], ordered by
// date ascending.
func (s *SQLiteStore) Range(start, end string) ([]Daily, error) {
	rows, err := s.db.Query(`SELECT payload FROM daily_snapshots WHERE date >= ? AND date <= ? ORDER BY date ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Daily
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var daily Daily
		if err := json.Unmarshal([]byte(payload), &daily); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
		out = append(out, daily)
	}
	return out, rows.Err()
}

// MostRecent returns the latest stored snapshot, if any.
func (s *SQLiteStore) MostRecent() (Daily, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM daily_snapshots ORDER BY date DESC LIMIT 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return Daily{}, false, nil
	}
	if err != nil {
		return Daily{}, false, err
	}
	var daily Daily
	if err := json.Unmarshal([]byte(payload), &daily); err != nil {
		return Daily{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return daily, true, nil
}
