package items

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Sentinel raid groups. Trash resolutions are dropped by callers and never
// stored; Unknown resolutions are stored but flag a degraded lookup.
const (
	RaidTrash   = "Trash"
	RaidUnknown = "Unknown"
)

// wildcardSuffix force-assigns the Qiraji quest-reward crystal family to
// AQ without consulting the policy.
const (
	wildcardSuffix = "Qiraji Resonating Crystal"
	wildcardRaid   = "AQ"
)

// Resolution is the outcome of resolving an item id.
type Resolution struct {
	Name string
	Raid string
}

// IsTrash reports whether the item belongs to no tracked raid and the
// originating event must be discarded.
func (r Resolution) IsTrash() bool {
	return r.Raid == RaidTrash
}

// Resolver maps item ids to display names and raid groups through a
// cascading lookup: raid cache buckets, trash bucket, metadata service,
// wildcard rule, then the injected policy. Newly classified items are
// persisted back into the winning cache bucket.
type Resolver struct {
	table  *Table
	meta   MetadataService
	policy RaidPolicy
	logger *zap.Logger
}

// NewResolver creates a resolver over the given cache table, metadata
// service and fallback policy. meta may be nil when no service is
// configured; unknown items then degrade directly to sentinel values.
func NewResolver(table *Table, meta MetadataService, policy RaidPolicy, l *zap.Logger) *Resolver {
	return &Resolver{table: table, meta: meta, policy: policy, logger: l}
}

// Resolve returns the name and raid group for an item id.
// It never fails the batch: lookup errors degrade to the Unknown raid
// group with a sentinel name.
func (r *Resolver) Resolve(ctx context.Context, itemID string) Resolution {
	// 1. Raid cache buckets, in order
	if raid, name, ok := r.table.Lookup(itemID); ok {
		return Resolution{Name: name, Raid: raid}
	}

	// 2. Trash bucket: caller discards the event entirely
	if name, ok := r.table.TrashName(itemID); ok {
		r.logger.Debug("Trash item found", zap.String("item_id", itemID), zap.String("name", name))
		return Resolution{Name: name, Raid: RaidTrash}
	}

	// 3. Metadata service
	name, err := r.lookupName(ctx, itemID)
	if err != nil {
		r.logger.Warn("Item lookup failed, degrading to unknown",
			zap.String("item_id", itemID), zap.Error(err))
		return Resolution{Name: fmt.Sprintf("Unknown Item %s", itemID), Raid: RaidUnknown}
	}

	raid := r.classify(itemID, name)

	if raid != RaidUnknown {
		if err := r.table.Put(raid, itemID, name); err != nil {
			r.logger.Warn("Failed to persist resolved item",
				zap.String("item_id", itemID), zap.String("raid", raid), zap.Error(err))
		}
	}

	return Resolution{Name: name, Raid: raid}
}

func (r *Resolver) lookupName(ctx context.Context, itemID string) (string, error) {
	if r.meta == nil {
		return "", fmt.Errorf("no metadata service configured")
	}
	return r.meta.ItemName(ctx, itemID)
}

// classify determines the raid group for a freshly fetched item.
func (r *Resolver) classify(itemID, name string) string {
	if strings.HasSuffix(name, wildcardSuffix) {
		r.logger.Info("Wildcard match",
			zap.String("item_id", itemID), zap.String("name", name), zap.String("raid", wildcardRaid))
		return wildcardRaid
	}

	raid, err := r.policy.ResolveRaid(itemID, name, r.table.Raids())
	if err != nil {
		r.logger.Warn("Raid policy failed, degrading to unknown",
			zap.String("item_id", itemID), zap.Error(err))
		return RaidUnknown
	}
	if raid == "" {
		return RaidUnknown
	}
	return raid
}
