package items

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RaidPolicy decides the raid group for an item no cache or wildcard rule
// could place. Production wiring supplies the interactive prompt; batch
// runs and tests supply a deterministic policy instead.
type RaidPolicy interface {
	ResolveRaid(itemID, name string, options []string) (string, error)
}

// StaticRaidPolicy always answers with a fixed raid group.
type StaticRaidPolicy struct {
	Raid string
}

// ResolveRaid returns the configured raid, or RaidUnknown when unset.
func (p StaticRaidPolicy) ResolveRaid(itemID, name string, options []string) (string, error) {
	if p.Raid == "" {
		return RaidUnknown, nil
	}
	return p.Raid, nil
}

// PromptRaidPolicy asks the operator to classify the item, looping until
// one of the offered raid groups is entered.
type PromptRaidPolicy struct {
	In  io.Reader
	Out io.Writer
}

// ResolveRaid prompts for a raid group until a valid option is read.
func (p PromptRaidPolicy) ResolveRaid(itemID, name string, options []string) (string, error) {
	reader := bufio.NewReader(p.In)
	for {
		fmt.Fprintf(p.Out, "Enter raid for item %s - %s (options: %s): ",
			itemID, name, strings.Join(options, ", "))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read raid choice: %w", err)
		}

		choice := strings.TrimSpace(line)
		for _, opt := range options {
			if choice == opt {
				return choice, nil
			}
		}
		fmt.Fprintln(p.Out, "Invalid raid. Please enter a valid option.")
	}
}
