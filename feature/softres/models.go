package softres

import (
	"encoding/json"
	"sort"
)

// Key identifies one soft-reserve record: a character's claim on an item
// from a boss in a raid instance.
type Key struct {
	Instance  string
	Boss      string
	Character string
	Item      string
}

// Record accumulates repeated reservations under one key.
type Record struct {
	Instance  string `json:"instance"`
	Boss      string `json:"boss"`
	Character string `json:"character"`
	Item      string `json:"item"`
	ItemID    string `json:"itemId"`
	// Reserved counts the accepted export rows folded into this record.
	Reserved int `json:"reserved"`
	// Dates is the set of distinct reservation timestamps.
	Dates []string `json:"dates"`
	// RaidDates holds the week markers (calendar days) of the import
	// batches that touched this record, used for cross-referencing.
	RaidDates []string `json:"raid_dates"`
}

// Key returns the composite key of the record.
func (r *Record) Key() Key {
	return Key{Instance: r.Instance, Boss: r.Boss, Character: r.Character, Item: r.Item}
}

// addDate adds a reservation timestamp if it is not already present.
func (r *Record) addDate(date string) {
	for _, d := range r.Dates {
		if d == date {
			return
		}
	}
	r.Dates = append(r.Dates, date)
}

// addRaidDate adds a week marker if it is not already present.
func (r *Record) addRaidDate(day string) {
	for _, d := range r.RaidDates {
		if d == day {
			return
		}
	}
	r.RaidDates = append(r.RaidDates, day)
}

// HasRaidDate reports whether the week marker is in the record's set.
func (r *Record) HasRaidDate(day string) bool {
	for _, d := range r.RaidDates {
		if d == day {
			return true
		}
	}
	return false
}

// Ledger is the flat soft-reserve store, keyed by composite record key.
type Ledger map[Key]*Record

// Record returns the record for the key, creating it if absent.
func (l Ledger) Record(key Key) *Record {
	r, ok := l[key]
	if !ok {
		r = &Record{
			Instance:  key.Instance,
			Boss:      key.Boss,
			Character: key.Character,
			Item:      key.Item,
		}
		l[key] = r
	}
	return r
}

// Records returns all records sorted by key for deterministic output.
func (l Ledger) Records() []*Record {
	records := make([]*Record, 0, len(l))
	for _, r := range l {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Instance != b.Instance {
			return a.Instance < b.Instance
		}
		if a.Boss != b.Boss {
			return a.Boss < b.Boss
		}
		if a.Character != b.Character {
			return a.Character < b.Character
		}
		return a.Item < b.Item
	})
	return records
}

// MarshalJSON serializes the ledger as a sorted record list.
func (l Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Records())
}

// UnmarshalJSON rebuilds the keyed map from a record list.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	m := make(Ledger, len(records))
	for _, r := range records {
		m[r.Key()] = r
	}
	*l = m
	return nil
}
