package items

import (
	"fmt"
	"path/filepath"

	"loot-ledger/core/ledgerfile"

	"go.uber.org/zap"
)

// DefaultRaids is the bucket order consulted during resolution.
// Earlier buckets win when an item id appears in more than one.
var DefaultRaids = []string{"AQ", "BWL", "MC", "Naxx", "Other", "WB"}

// Table is the layered item cache: one bucket of itemID -> name per raid,
// plus a trash bucket for drops belonging to no tracked raid.
// Buckets are loaded from and persisted back to per-raid JSON files so a
// resolution answered once (by the metadata service or an operator) is a
// cache hit on every later run.
type Table struct {
	dir     string
	raids   []string
	buckets map[string]map[string]string
	trash   map[string]string
}

// LoadTable reads all raid buckets and the trash bucket from dir.
// Missing or corrupt bucket files are treated as empty, never fatal.
func LoadTable(dir string, raids []string, l *zap.Logger) (*Table, error) {
	if len(raids) == 0 {
		raids = DefaultRaids
	}

	t := &Table{
		dir:     dir,
		raids:   raids,
		buckets: make(map[string]map[string]string, len(raids)),
		trash:   make(map[string]string),
	}

	for _, raid := range raids {
		bucket := make(map[string]string)
		if err := ledgerfile.LoadJSON(t.bucketPath(raid), &bucket, l); err != nil {
			return nil, fmt.Errorf("load %s bucket: %w", raid, err)
		}
		t.buckets[raid] = bucket
	}

	if err := ledgerfile.LoadJSON(t.trashPath(), &t.trash, l); err != nil {
		return nil, fmt.Errorf("load trash bucket: %w", err)
	}

	return t, nil
}

// Raids returns the bucket order of the table.
func (t *Table) Raids() []string {
	return t.raids
}

// Lookup searches the raid buckets in order for the item id.
func (t *Table) Lookup(itemID string) (raid, name string, ok bool) {
	for _, r := range t.raids {
		if n, hit := t.buckets[r][itemID]; hit {
			return r, n, true
		}
	}
	return "", "", false
}

// TrashName reports whether the item id belongs to the trash bucket.
func (t *Table) TrashName(itemID string) (string, bool) {
	name, ok := t.trash[itemID]
	return name, ok
}

// Put stores a resolved (itemID, name) pair in the given raid bucket and
// persists the bucket so future runs hit the cache.
func (t *Table) Put(raid, itemID, name string) error {
	bucket, ok := t.buckets[raid]
	if !ok {
		bucket = make(map[string]string)
		t.buckets[raid] = bucket
		t.raids = append(t.raids, raid)
	}
	bucket[itemID] = name

	if err := ledgerfile.SaveJSON(t.bucketPath(raid), bucket); err != nil {
		return fmt.Errorf("persist %s bucket: %w", raid, err)
	}
	return nil
}

func (t *Table) bucketPath(raid string) string {
	return filepath.Join(t.dir, fmt.Sprintf("%s_loot_table.json", raid))
}

func (t *Table) trashPath() string {
	return filepath.Join(t.dir, "trash_item_cache.json")
}
