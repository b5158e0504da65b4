package loot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"loot-ledger/feature/items"

	"go.uber.org/zap"
)

// timestampLayout is the loot-log date format (calendar day).
const timestampLayout = "2006-01-02"

// disenchantedBucket is a sentinel character the addon emits for
// disenchanted drops. It is purged unconditionally after every merge.
const disenchantedBucket = "_disenchanted"

// ItemResolver resolves an item id to its name and raid group.
type ItemResolver interface {
	Resolve(ctx context.Context, itemID string) items.Resolution
}

// Stats counts what happened to a raw import batch.
type Stats struct {
	Rows       int
	Malformed  int
	OffRoster  int
	Trash      int
	WeekMarker string
}

// record is one parsed loot-log row.
type record struct {
	timestamp string
	character string
	itemID    string
	offspec   bool
	uniqueID  string
}

// Builder folds raw loot-log exports into a character ledger.
type Builder struct {
	resolver ItemResolver
	roster   Roster
	logger   *zap.Logger
}

// NewBuilder creates a loot ledger builder. The roster is mandatory:
// records for characters outside it are dropped.
func NewBuilder(resolver ItemResolver, roster Roster, l *zap.Logger) *Builder {
	return &Builder{resolver: resolver, roster: roster, logger: l}
}

// Build parses the raw export and folds it into prior (which may be nil
// for a fresh ledger). The returned ledger is prior extended in place.
//
// The week marker for the whole batch is the maximum date across the
// import; every event touched by this batch is stamped with it. Merging
// is cumulative with per-week dedup: an event already carrying the batch's
// week marker from an earlier run is left untouched, which makes a
// verbatim replay of the same export a no-op.
func (b *Builder) Build(ctx context.Context, r io.Reader, prior Ledger) (Ledger, Stats, error) {
	ledger := prior
	if ledger == nil {
		ledger = make(Ledger)
	}

	records, stats, err := b.parse(r)
	if err != nil {
		return nil, stats, err
	}

	// Events created or extended by this batch; duplicates of a unique id
	// within one export are genuine multiple awards, while duplicates
	// across runs are replays.
	touched := make(map[*Event]struct{})

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		character := CanonicalName(rec.character)
		if !b.roster.Contains(character) {
			b.logger.Debug("Character not in roster, dropping record",
				zap.String("character", character))
			stats.OffRoster++
			continue
		}

		res := b.resolver.Resolve(ctx, rec.itemID)
		if res.IsTrash() {
			b.logger.Debug("Trash item, dropping record",
				zap.String("item_id", rec.itemID), zap.String("name", res.Name))
			stats.Trash++
			continue
		}

		spec := SpecMainspec
		if rec.offspec {
			spec = SpecOffspec
		}

		itemRecords := ledger.History(character).SpecRecords(spec)
		itemRecord, ok := itemRecords[rec.itemID]
		if !ok {
			name := res.Name
			if name == "" {
				name = rec.itemID
			}
			itemRecord = &ItemRecord{
				ItemName:   name,
				ItemLink:   ItemLink(rec.itemID),
				Raid:       res.Raid,
				LootEvents: []*Event{},
			}
			itemRecords[rec.itemID] = itemRecord
		}

		event := itemRecord.Event(rec.uniqueID)
		if event == nil {
			event = &Event{ID: rec.uniqueID}
			itemRecord.LootEvents = append(itemRecord.LootEvents, event)
		} else if _, thisBatch := touched[event]; !thisBatch && event.hasWeek(stats.WeekMarker) {
			// Replay of an already-folded export
			continue
		}

		event.addOccurrence(rec.timestamp, stats.WeekMarker)
		touched[event] = struct{}{}
	}

	delete(ledger, disenchantedBucket)

	return ledger, stats, nil
}

// parse reads the export, skipping the header row, and computes the
// batch week marker. Unparsable lines are counted and skipped.
func (b *Builder) parse(r io.Reader) ([]record, Stats, error) {
	var (
		records []record
		stats   Stats
	)

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		stats.Rows++

		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			b.logger.Warn("Malformed loot-log line", zap.String("line", line))
			stats.Malformed++
			continue
		}

		timestamp := strings.TrimSpace(fields[0])
		if _, err := time.Parse(timestampLayout, timestamp); err != nil {
			b.logger.Warn("Malformed loot-log timestamp", zap.String("line", line))
			stats.Malformed++
			continue
		}

		rec := record{
			timestamp: timestamp,
			character: strings.TrimSpace(fields[1]),
			itemID:    strings.TrimSpace(fields[2]),
			offspec:   strings.TrimSpace(fields[3]) == "1",
			uniqueID:  strings.TrimSpace(fields[4]),
		}
		if rec.character == "" || rec.itemID == "" || rec.uniqueID == "" {
			b.logger.Warn("Malformed loot-log line", zap.String("line", line))
			stats.Malformed++
			continue
		}

		// ISO dates compare lexicographically
		if rec.timestamp > stats.WeekMarker {
			stats.WeekMarker = rec.timestamp
		}

		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read loot export: %w", err)
	}

	return records, stats, nil
}

// ItemLink derives the deterministic item database link for an item id.
func ItemLink(itemID string) string {
	return fmt.Sprintf("https://www.wowhead.com/classic/item=%s", itemID)
}
