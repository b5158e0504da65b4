package loot

// Event is one distinct looting occurrence, keyed by the unique id the
// loot log assigns to an award. Re-imports extend its history in place.
//
// Invariant: len(DateTime) == len(RaidWeek) == TimesLooted.
type Event struct {
	ID              string   `json:"id"`
	DateTime        []string `json:"dateTime"`
	RaidWeek        []string `json:"raidWeek"`
	TimesLooted     int      `json:"timesLooted"`
	WasSoftReserved bool     `json:"wasSoftReserved"`
}

// addOccurrence extends the event history by one award.
func (e *Event) addOccurrence(timestamp, weekMarker string) {
	e.DateTime = append(e.DateTime, timestamp)
	e.RaidWeek = append(e.RaidWeek, weekMarker)
	e.TimesLooted++
}

// hasWeek reports whether the week marker already appears in the event's
// raid weeks.
func (e *Event) hasWeek(weekMarker string) bool {
	for _, w := range e.RaidWeek {
		if w == weekMarker {
			return true
		}
	}
	return false
}

// ItemRecord is a character+spec's history for one item.
type ItemRecord struct {
	ItemName   string   `json:"itemName"`
	ItemLink   string   `json:"itemLink"`
	Raid       string   `json:"raid"`
	LootEvents []*Event `json:"lootEvents"`
}

// Event returns the loot event with the given unique id, or nil.
func (r *ItemRecord) Event(id string) *Event {
	for _, e := range r.LootEvents {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// History holds a character's per-spec item records.
type History struct {
	Mainspec map[string]*ItemRecord `json:"Mainspec"`
	Offspec  map[string]*ItemRecord `json:"Offspec"`
}

// SpecRecords returns the item map for the given spec bucket.
func (h *History) SpecRecords(spec Spec) map[string]*ItemRecord {
	if spec == SpecOffspec {
		return h.Offspec
	}
	return h.Mainspec
}

// Ledger is the per-character loot history, keyed by canonical character
// name.
type Ledger map[string]*History

// History returns the character's history, creating it if absent.
func (l Ledger) History(character string) *History {
	h, ok := l[character]
	if !ok {
		h = &History{
			Mainspec: make(map[string]*ItemRecord),
			Offspec:  make(map[string]*ItemRecord),
		}
		l[character] = h
	}
	return h
}

// Spec identifies the spec bucket an award counts against.
type Spec string

const (
	SpecMainspec Spec = "Mainspec"
	SpecOffspec  Spec = "Offspec"
)
