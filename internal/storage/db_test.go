package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/atlas-desktop/trading-governor/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesParentDirectoryAndIsUsable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.db")

	db, err := storage.Open(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY, val TEXT)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO t (val) VALUES (?)`, "hello")
	require.NoError(t, err)

	row := db.QueryRow(`SELECT val FROM t WHERE id = 1`)
	var val string
	require.NoError(t, row.Scan(&val))
	assert.Equal(t, "hello", val)
}

func TestOpenReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	first, err := storage.Open(path)
	require.NoError(t, err)
	_, err = first.Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO t DEFAULT VALUES`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := storage.Open(path)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&count))
	assert.Equal(t, 1, count)
}
