package softres

import (
	"sort"

	"loot-ledger/core/ledgerfile"

	"go.uber.org/zap"
)

// InstanceBosses lists the bosses of one raid instance.
type InstanceBosses struct {
	BossNames []string `json:"boss_names"`
}

// BossMap maps raid-instance names to their bosses.
type BossMap map[string]InstanceBosses

// LoadBossMap reads the boss-to-instance lookup. A missing or corrupt
// file yields an empty map: resolution then degrades to the injected
// instance policy instead of failing the run.
func LoadBossMap(path string, l *zap.Logger) (BossMap, error) {
	m := make(BossMap)
	if err := ledgerfile.LoadJSON(path, &m, l); err != nil {
		return nil, err
	}
	return m, nil
}

// InstanceFor resolves a boss name to its raid instance. Instances are
// scanned in sorted order so a boss listed twice resolves the same way on
// every run.
func (m BossMap) InstanceFor(boss string) (string, bool) {
	for _, instance := range m.Instances() {
		for _, name := range m[instance].BossNames {
			if name == boss {
				return instance, true
			}
		}
	}
	return "", false
}

// Instances returns the sorted instance names.
func (m BossMap) Instances() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
