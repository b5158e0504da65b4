// Package crossref annotates loot events with soft-reserve matches.
//
// An event was soft-reserved when the same character reserved the same
// item (by item id) and one of the event's raid weeks intersects the
// reservation record's raid dates. The flag is monotonic: once set it is
// never cleared by a later run, regardless of input.
package crossref

import (
	"loot-ledger/feature/loot"
	"loot-ledger/feature/softres"
)

// Stats summarizes an annotation pass.
type Stats struct {
	Events         int
	Flagged        int
	AlreadyFlagged int
}

// Annotate walks every loot event of every character and spec, setting
// WasSoftReserved where a matching reservation exists. The ledger is
// mutated in place; absence of a match leaves the flag at its prior
// value.
func Annotate(lootLedger loot.Ledger, reserves softres.Ledger) Stats {
	var stats Stats

	records := reserves.Records()

	for character, history := range lootLedger {
		for _, spec := range []loot.Spec{loot.SpecMainspec, loot.SpecOffspec} {
			for itemID, itemRecord := range history.SpecRecords(spec) {
				for _, event := range itemRecord.LootEvents {
					stats.Events++
					if event.WasSoftReserved {
						stats.AlreadyFlagged++
						continue
					}
					if matches(records, character, itemID, event) {
						event.WasSoftReserved = true
						stats.Flagged++
					}
				}
			}
		}
	}

	return stats
}

// matches scans all reservation records for one whose character and item
// id match the event and whose raid dates intersect the event's weeks.
func matches(records []*softres.Record, character, itemID string, event *loot.Event) bool {
	for _, rec := range records {
		if rec.Character != character || rec.ItemID != itemID {
			continue
		}
		for _, week := range event.RaidWeek {
			if rec.HasRaidDate(week) {
				return true
			}
		}
	}
	return false
}
