package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/snip/log"
)

// Gen expands a format string into one generated line per combination of
// placeholder values.
type Gen struct {
	Format   string   `help:"Format string to expand"                                 short:"f" xor:"source"`
	Template string   `help:"Name of a stored template"                               short:"t" xor:"source"`
	Args     []string `arg:"" help:"Bindings: VALUE, NAME=VALUE, NAME=, or NAME:FILE" name:"args" optional:""`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	source, err := formatSource(ctx, g.Format, g.Template)
	if err != nil {
		return err
	}

	tmpl, bindings, err := resolveBindings(ctx, source, g.Args)
	if err != nil {
		return err
	}

	lines, err := tmpl.Expand(bindings)
	if err != nil {
		return err
	}

	log.Debug("expansion complete",
		slog.Int("lines", len(lines)),
		slog.Int("names", len(tmpl.Names())),
	)

	out := stdout(ctx)
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}

	return nil
}
