package softres

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// InstancePolicy decides the raid instance for a reservation whose boss
// appears in no instance. Batch runs and tests supply a deterministic
// implementation; interactive runs prompt the operator.
type InstancePolicy interface {
	ResolveInstance(item, boss string, options []string) (string, error)
}

// StaticInstancePolicy always answers with a fixed instance. An empty
// instance means the row is dropped.
type StaticInstancePolicy struct {
	Instance string
}

// ResolveInstance returns the configured instance.
func (p StaticInstancePolicy) ResolveInstance(item, boss string, options []string) (string, error) {
	return p.Instance, nil
}

// PromptInstancePolicy asks the operator, looping until a known instance
// is entered.
type PromptInstancePolicy struct {
	In  io.Reader
	Out io.Writer
}

// ResolveInstance prompts for an instance until a valid option is read.
func (p PromptInstancePolicy) ResolveInstance(item, boss string, options []string) (string, error) {
	reader := bufio.NewReader(p.In)
	fmt.Fprintf(p.Out, "Warning: boss %q not found in any raid instance.\n", boss)
	for {
		if len(options) > 0 {
			fmt.Fprintf(p.Out, "Available raid instances: %s\n", strings.Join(options, ", "))
		}
		fmt.Fprintf(p.Out, "Enter the raid instance for %q: ", item)

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read instance choice: %w", err)
		}

		choice := strings.TrimSpace(line)
		for _, opt := range options {
			if choice == opt {
				return choice, nil
			}
		}
		fmt.Fprintln(p.Out, "Invalid raid instance. Please try again.")
	}
}
