// Package storage wraps the sqlite connection shared by the event log and
// shadow stores, so both get the same WAL-mode durability guarantees.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a durable sqlite connection.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates (or reopens) a WAL-mode sqlite database at path.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	return &DB{conn: conn, path: path}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error { return db.conn.Close() }

// Conn returns the underlying *sql.DB for callers that need raw access.
func (db *DB) Conn() *sql.DB { return db.conn }

// Exec runs a statement that returns no rows.
func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query runs a statement that returns rows.
func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow runs a statement that returns at most one row.
func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
