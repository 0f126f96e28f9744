package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	records := []json.RawMessage{
		json.RawMessage(`{"a":1}`),
		json.RawMessage(`{"b":2}`),
	}
	require.NoError(t, writeJSONL(path, records))

	got, skipped, err := readJSONL(path)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, records, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestReadJSONL_SkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"ok\":true}\n{broken\n\n[1,2]\n"), 0o644))

	got, skipped, err := readJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Len(t, got, 2)
}

func TestReadJSONL_MissingFile(t *testing.T) {
	_, _, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}

func TestEnsureJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	require.NoError(t, ensureJSONL(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	require.NoError(t, ensureJSONL(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data), "existing content is kept")
}
