package config_test

import (
	"testing"

	"loot-ledger/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "data/raid_data.json", cfg.Ledger.LootFile)
	assert.Equal(t, "data/softres_data.json", cfg.Ledger.SoftresFile)
	assert.Equal(t, "data/lookup_tables", cfg.Ledger.LookupDir)
	assert.Equal(t, "data/journal.db", cfg.Journal.Path)
	assert.Equal(t, "static-classic1x-us", cfg.Items.Namespace)
	assert.Equal(t, 15, cfg.Items.TimeoutSeconds)
	assert.Equal(t, "loothistory", cfg.Storage.Bucket)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LEDGER_LOOT_FILE", "/tmp/other.json")
	t.Setenv("ITEMS_CLIENT_ID", "abc")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/other.json", cfg.Ledger.LootFile)
	assert.Equal(t, "abc", cfg.Items.ClientID)
}
