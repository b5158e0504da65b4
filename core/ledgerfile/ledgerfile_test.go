package ledgerfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"loot-ledger/core/ledgerfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadJSON_MissingFile(t *testing.T) {
	dst := map[string]string{}
	err := ledgerfile.LoadJSON(filepath.Join(t.TempDir(), "nope.json"), &dst, zap.NewNop())
	assert.NoError(t, err)
	assert.Empty(t, dst)
}

func TestLoadJSON_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	dst := map[string]string{}
	err := ledgerfile.LoadJSON(path, &dst, zap.NewNop())
	assert.NoError(t, err)
	assert.Empty(t, dst)
}

func TestSaveJSON_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	src := map[string]int{"a": 1, "b": 2}

	require.NoError(t, ledgerfile.SaveJSON(path, src))

	dst := map[string]int{}
	require.NoError(t, ledgerfile.LoadJSON(path, &dst, zap.NewNop()))
	assert.Equal(t, src, dst)
}

func TestSaveJSON_NoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	require.NoError(t, ledgerfile.SaveJSON(path, map[string]int{"a": 1}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestSaveJSON_UnwritableIsErrSaveFailed(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the rename fail.
	path := filepath.Join(dir, "state.json")
	require.NoError(t, os.Mkdir(path, 0o755))

	err := ledgerfile.SaveJSON(path, map[string]int{"a": 1})
	assert.ErrorIs(t, err, ledgerfile.ErrSaveFailed)
}

func TestAcquireLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ledger.lock")

	release, err := ledgerfile.AcquireLock(path)
	require.NoError(t, err)

	_, err = ledgerfile.AcquireLock(path)
	assert.ErrorIs(t, err, ledgerfile.ErrLocked)

	release()

	release2, err := ledgerfile.AcquireLock(path)
	require.NoError(t, err)
	release2()
}
