package softres

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// dateLayout is the reservation timestamp format of the export.
const dateLayout = "2006-01-02 15:04:05"

// naxxPrefix force-assigns the necropolis item family to Naxxramas even
// when the boss is unknown.
const (
	naxxPrefix   = "Desecrated"
	naxxInstance = "Naxx"
)

// Required export columns. Note, Discord ID and Plus are ignored.
var requiredColumns = []string{"Name", "Item", "From", "Date", "ItemId"}

// Stats counts what happened to a soft-reserve import batch.
type Stats struct {
	Rows       int
	Malformed  int
	Unresolved int
	WeekMarker string
}

// row is one parsed export row.
type row struct {
	character string
	item      string
	boss      string
	date      string
	itemID    string
}

// Builder folds soft-reserve CSV exports into a ledger.
type Builder struct {
	bosses BossMap
	policy InstancePolicy
	logger *zap.Logger

	// memo caches policy answers per item for the run; it is session
	// scoped on purpose and never persisted.
	memo map[string]string
}

// NewBuilder creates a soft-reserve ledger builder.
func NewBuilder(bosses BossMap, policy InstancePolicy, l *zap.Logger) *Builder {
	return &Builder{
		bosses: bosses,
		policy: policy,
		logger: l,
		memo:   make(map[string]string),
	}
}

// Build parses the CSV export and folds it into prior (nil for a fresh
// ledger). Each accepted row increments its record's reservation count,
// extends the distinct date set, and stamps the record with the batch
// week marker (maximum date of the import, day granularity).
func (b *Builder) Build(r io.Reader, prior Ledger) (Ledger, Stats, error) {
	ledger := prior
	if ledger == nil {
		ledger = make(Ledger)
	}

	rows, stats, err := b.parse(r)
	if err != nil {
		return nil, stats, err
	}

	for _, rec := range rows {
		instance, ok := b.resolveInstance(rec)
		if !ok {
			stats.Unresolved++
			continue
		}

		record := ledger.Record(Key{
			Instance:  instance,
			Boss:      rec.boss,
			Character: rec.character,
			Item:      rec.item,
		})
		if record.ItemID == "" {
			record.ItemID = rec.itemID
		}
		record.Reserved++
		record.addDate(rec.date)
		if stats.WeekMarker != "" {
			record.addRaidDate(stats.WeekMarker)
		}
	}

	return ledger, stats, nil
}

// resolveInstance cascades boss lookup, the Naxxramas item-prefix
// override, then the memoized policy.
func (b *Builder) resolveInstance(rec row) (string, bool) {
	if instance, ok := b.bosses.InstanceFor(rec.boss); ok {
		return instance, true
	}

	if strings.HasPrefix(rec.item, naxxPrefix) {
		return naxxInstance, true
	}

	if instance, ok := b.memo[rec.item]; ok {
		return instance, instance != ""
	}

	instance, err := b.policy.ResolveInstance(rec.item, rec.boss, b.bosses.Instances())
	if err != nil {
		b.logger.Warn("Instance policy failed, dropping row",
			zap.String("item", rec.item), zap.String("boss", rec.boss), zap.Error(err))
		instance = ""
	}
	b.memo[rec.item] = instance

	if instance == "" {
		b.logger.Warn("Unresolvable raid instance, dropping row",
			zap.String("item", rec.item), zap.String("boss", rec.boss))
		return "", false
	}
	return instance, true
}

// parse reads the CSV, validates the required header columns and computes
// the batch week marker. Unparsable rows are counted and skipped.
func (b *Builder) parse(r io.Reader) ([]row, Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, nil
		}
		return nil, stats, fmt.Errorf("read export header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, stats, fmt.Errorf("export is missing required column %q", name)
		}
	}

	var rows []row
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			b.logger.Warn("Malformed soft-reserve row", zap.Error(err))
			stats.Malformed++
			continue
		}
		stats.Rows++

		get := func(name string) string {
			i := cols[name]
			if i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		rec := row{
			character: get("Name"),
			item:      get("Item"),
			boss:      get("From"),
			date:      get("Date"),
			itemID:    get("ItemId"),
		}

		parsed, err := time.Parse(dateLayout, rec.date)
		if err != nil || rec.character == "" || rec.item == "" {
			b.logger.Warn("Malformed soft-reserve row", zap.Strings("fields", fields))
			stats.Malformed++
			continue
		}

		// Week markers are day-granular regardless of the export format
		if day := parsed.Format("2006-01-02"); day > stats.WeekMarker {
			stats.WeekMarker = day
		}

		rows = append(rows, rec)
	}

	return rows, stats, nil
}
