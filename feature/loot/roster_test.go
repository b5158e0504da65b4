package loot_test

import (
	"os"
	"path/filepath"
	"testing"

	"loot-ledger/feature/loot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.txt")
	require.NoError(t, os.WriteFile(path, []byte("Harkshock,\nMinto\n\n  Jwhistle  \n"), 0o644))

	roster, err := loot.LoadRoster(path)
	require.NoError(t, err)

	assert.True(t, roster.Contains("Harkshock"))
	assert.True(t, roster.Contains("Minto"))
	assert.True(t, roster.Contains("Jwhistle"))
	assert.False(t, roster.Contains("Randompug"))
	assert.Len(t, roster, 3)
}

func TestLoadRoster_MissingIsFatal(t *testing.T) {
	_, err := loot.LoadRoster(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, loot.ErrRosterMissing)
}
