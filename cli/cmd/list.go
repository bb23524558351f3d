package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/snip/codec"
)

// List prints the names of all stored templates, or of all registered
// codecs with their descriptions.
type List struct {
	Codecs bool `help:"List registered codecs instead of templates" short:"c"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	out := stdout(ctx)

	if l.Codecs {
		for _, name := range codec.Names() {
			fmt.Fprintf(out, "%-14s %s\n", name, codec.Describe(name))
		}

		return nil
	}

	for _, name := range settingsFrom(ctx).store().Names() {
		fmt.Fprintln(out, name)
	}

	return nil
}
