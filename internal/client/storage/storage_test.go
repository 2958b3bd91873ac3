package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory_CreatesMetadataTable(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, MemoryDSN, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES (?, ?)`, "k", []byte("v"))
	require.NoError(t, err)

	var v []byte
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, "k").Scan(&v))
	require.Equal(t, []byte("v"), v)
}

func TestOpen_File_CreatesDirectoryAndIsReopenable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "fintrack.db")

	db, err := Open(ctx, path, logging.Nop())
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES ('a', x'01')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	// migrations are idempotent and data survives reopening
	db, err = Open(ctx, path, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM metadata`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestOpen_LogsSchemaVersionAsStorage(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log, err := logging.New(&buf, "debug", "json")
	require.NoError(t, err)

	db, err := Open(ctx, MemoryDSN, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "database ready", rec["msg"])
	assert.Equal(t, logging.ComponentStorage, rec[logging.FieldComponent])
	assert.Equal(t, float64(1), rec[logging.FieldSchemaVersion])
}
