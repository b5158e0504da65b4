package ledgerfile

// Config holds the file locations for persisted ledgers and their inputs.
type Config struct {
	// LootFile is the persisted loot ledger document.
	LootFile string `mapstructure:"loot_file" default:"data/raid_data.json"`
	// SoftresFile is the persisted soft-reserve ledger document.
	SoftresFile string `mapstructure:"softres_file" default:"data/softres_data.json"`
	// RosterFile is the newline-delimited roster of accepted characters.
	RosterFile string `mapstructure:"roster_file" default:"data/roster.txt"`
	// BossMapFile is the boss-to-instance JSON lookup.
	BossMapFile string `mapstructure:"boss_map_file" default:"data/lookup_tables/bosses_per_raid.json"`
	// LookupDir is the directory holding the per-raid item cache buckets.
	LookupDir string `mapstructure:"lookup_dir" default:"data/lookup_tables"`
	// LootImport is the raw loot-log export to fold in.
	LootImport string `mapstructure:"loot_import" default:"data/import_files/loot_import.txt"`
	// SoftresImport is the soft-reserve CSV export to fold in.
	SoftresImport string `mapstructure:"softres_import" default:"data/import_files/softres_import.csv"`
	// LockFile guards against concurrent runs mutating the same ledgers.
	LockFile string `mapstructure:"lock_file" default:"data/.ledger.lock"`
}
