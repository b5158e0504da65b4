package items_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"loot-ledger/feature/items"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeMeta is a canned MetadataService.
type fakeMeta struct {
	names map[string]string
	calls int
}

func (f *fakeMeta) ItemName(ctx context.Context, itemID string) (string, error) {
	f.calls++
	if name, ok := f.names[itemID]; ok {
		return name, nil
	}
	return "", fmt.Errorf("item %s not found", itemID)
}

// recordingPolicy answers with a fixed raid and records what it was asked.
type recordingPolicy struct {
	raid  string
	asked []string
}

func (p *recordingPolicy) ResolveRaid(itemID, name string, options []string) (string, error) {
	p.asked = append(p.asked, itemID)
	return p.raid, nil
}

func newResolver(t *testing.T, dir string, meta items.MetadataService, policy items.RaidPolicy) *items.Resolver {
	t.Helper()
	table, err := items.LoadTable(dir, nil, zap.NewNop())
	require.NoError(t, err)
	return items.NewResolver(table, meta, policy, zap.NewNop())
}

func TestResolver_CacheHitShortCircuits(t *testing.T) {
	dir := t.TempDir()
	writeBucket(t, dir, "MC_loot_table.json", `{"12345": "Lightforge Boots"}`)

	meta := &fakeMeta{}
	res := newResolver(t, dir, meta, items.StaticRaidPolicy{}).Resolve(context.Background(), "12345")

	assert.Equal(t, "MC", res.Raid)
	assert.Equal(t, "Lightforge Boots", res.Name)
	assert.Zero(t, meta.calls)
}

func TestResolver_TrashHit(t *testing.T) {
	dir := t.TempDir()
	writeBucket(t, dir, "trash_item_cache.json", `{"555": "Zulian Mudskunk"}`)

	res := newResolver(t, dir, &fakeMeta{}, items.StaticRaidPolicy{}).Resolve(context.Background(), "555")
	assert.True(t, res.IsTrash())
	assert.Equal(t, "Zulian Mudskunk", res.Name)
}

func TestResolver_WildcardBypassesPolicy(t *testing.T) {
	dir := t.TempDir()
	meta := &fakeMeta{names: map[string]string{"21221": "Red Qiraji Resonating Crystal"}}
	policy := &recordingPolicy{raid: "MC"}

	res := newResolver(t, dir, meta, policy).Resolve(context.Background(), "21221")

	assert.Equal(t, "AQ", res.Raid)
	assert.Equal(t, "Red Qiraji Resonating Crystal", res.Name)
	assert.Empty(t, policy.asked)
}

func TestResolver_PolicyClassifiesAndPersists(t *testing.T) {
	dir := t.TempDir()
	meta := &fakeMeta{names: map[string]string{"16800": "Arcanist Boots"}}
	policy := &recordingPolicy{raid: "Naxx"}

	resolver := newResolver(t, dir, meta, policy)
	res := resolver.Resolve(context.Background(), "16800")

	assert.Equal(t, "Naxx", res.Raid)
	assert.Equal(t, []string{"16800"}, policy.asked)

	// The answer is persisted into the bucket file.
	data, err := os.ReadFile(filepath.Join(dir, "Naxx_loot_table.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Arcanist Boots")

	// Second resolve is a cache hit: the service is not consulted again.
	callsBefore := meta.calls
	res = resolver.Resolve(context.Background(), "16800")
	assert.Equal(t, "Naxx", res.Raid)
	assert.Equal(t, callsBefore, meta.calls)
}

func TestResolver_LookupFailureDegradesToUnknown(t *testing.T) {
	dir := t.TempDir()

	res := newResolver(t, dir, &fakeMeta{}, items.StaticRaidPolicy{}).Resolve(context.Background(), "424242")
	assert.Equal(t, items.RaidUnknown, res.Raid)
	assert.Equal(t, "Unknown Item 424242", res.Name)
	assert.False(t, res.IsTrash())
}

func TestResolver_NilServiceDegradesToUnknown(t *testing.T) {
	res := newResolver(t, t.TempDir(), nil, items.StaticRaidPolicy{}).Resolve(context.Background(), "7")
	assert.Equal(t, items.RaidUnknown, res.Raid)
}

func TestResolver_UnknownIsNotPersisted(t *testing.T) {
	dir := t.TempDir()
	meta := &fakeMeta{names: map[string]string{"31337": "Mystery Trinket"}}

	// Policy declines to classify.
	res := newResolver(t, dir, meta, items.StaticRaidPolicy{}).Resolve(context.Background(), "31337")
	assert.Equal(t, items.RaidUnknown, res.Raid)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
