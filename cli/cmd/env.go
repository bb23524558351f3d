package cmd

import (
	"context"
	"fmt"
	"strings"
)

// Env resolves the bindings of a format string and prints them as shell
// export statements, without expanding the format string itself.
//
// Single values print as export name="value". Multi-valued names print
// the list literal form accepted back as a binding argument:
//
//	export host="\('alpha' 'beta'\)"
type Env struct {
	Format   string   `help:"Format string to resolve"                                short:"f" xor:"source"`
	Template string   `help:"Name of a stored template"                               short:"t" xor:"source"`
	Args     []string `arg:"" help:"Bindings: VALUE, NAME=VALUE, NAME=, or NAME:FILE" name:"args" optional:""`
}

// Run executes the env command.
func (e *Env) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	source, err := formatSource(ctx, e.Format, e.Template)
	if err != nil {
		return err
	}

	tmpl, bindings, err := resolveBindings(ctx, source, e.Args)
	if err != nil {
		return err
	}

	out := stdout(ctx)

	for _, name := range tmpl.Names() {
		binding, ok := bindings[name]
		if !ok || (len(binding.Values) == 0 && !binding.Explicit) {
			continue
		}

		fmt.Fprintf(out, "export %s=\"%s\"\n", name, exportValue(binding.Values))
	}

	return nil
}

// exportValue renders a value list in the form the resolver accepts back.
func exportValue(values []string) string {
	if len(values) == 0 {
		return ""
	}

	if len(values) == 1 {
		return escapeExport(values[0])
	}

	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}

	return `\(` + escapeExport(strings.Join(quoted, " ")) + `\)`
}

// escapeExport escapes characters that break a double-quoted shell word.
func escapeExport(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"$", `\$`,
		"`", "\\`",
	)

	return r.Replace(s)
}
