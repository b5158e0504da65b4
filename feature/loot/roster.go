package loot

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrRosterMissing indicates the roster file could not be read. Without a
// roster no loot record can ever be accepted, so this is fatal.
var ErrRosterMissing = errors.New("roster missing")

// aliases folds known renamed or duplicate characters onto their canonical
// name.
var aliases = map[string]string{
	"Harkclickone": "Harkshock",
	"Harkclicktwo": "Harkshock",
	"Sumsushi":     "Minto",
	"Jwhistler":    "Jwhistle",
}

// Roster is the set of characters whose loot is tracked.
type Roster map[string]struct{}

// LoadRoster reads a newline-delimited roster file. Commas are stripped
// from each name.
func LoadRoster(path string) (Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRosterMissing, err)
	}
	defer f.Close()

	roster := make(Roster)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.ReplaceAll(strings.TrimSpace(scanner.Text()), ",", "")
		if name == "" {
			continue
		}
		roster[name] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRosterMissing, err)
	}

	return roster, nil
}

// Contains reports roster membership.
func (r Roster) Contains(name string) bool {
	_, ok := r[name]
	return ok
}

// CanonicalName normalizes a character name from the raw log: NFC
// composition, non-printable characters stripped, then the alias table.
func CanonicalName(name string) string {
	name = norm.NFC.String(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, name)
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}
