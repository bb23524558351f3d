package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/snip/cli/cmd/picker"
	"github.com/ardnew/snip/lang"
	"github.com/ardnew/snip/log"
	"github.com/ardnew/snip/preset"
	"github.com/ardnew/snip/template"
)

// formatEnvVar is the environment fallback for the format string when no
// other source is given.
const formatEnvVar = "FORMAT_STRING"

// formatSource selects the format string from its possible sources:
// the --format flag, a stored template named by --template, piped stdin,
// or $FORMAT_STRING, in that order. Giving more than one of the first
// three is an error.
func formatSource(ctx context.Context, format, name string) (string, error) {
	given := 0
	for _, ok := range []bool{format != "", name != "", stdinPiped()} {
		if ok {
			given++
		}
	}

	if given > 1 {
		return "", ErrFormatConflict
	}

	switch {
	case format != "":
		return format, nil

	case name != "":
		return loadTemplate(ctx, name)

	case stdinPiped():
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", lang.ErrReadInput.Wrap(err)
		}

		return strings.TrimRight(string(data), "\n"), nil
	}

	if fallback := os.Getenv(formatEnvVar); fallback != "" {
		return fallback, nil
	}

	return "", ErrNoFormat
}

// loadTemplate loads the named template, falling back to the fuzzy picker
// when the name does not match a stored template exactly.
func loadTemplate(ctx context.Context, name string) (string, error) {
	store := settingsFrom(ctx).store()

	content, err := store.Load(name)
	if err == nil {
		return content, nil
	}

	if !errors.Is(err, template.ErrNotFound) {
		return "", err
	}

	log.Debug("template not found, starting picker",
		slog.String("name", name),
	)

	picked, err := picker.Pick(ctx, store.Names(), name)
	if err != nil {
		return "", err
	}

	return store.Load(picked)
}

// resolveBindings parses the format string and binds its placeholder
// names from the given arguments, the environment, and presets.
func resolveBindings(
	ctx context.Context,
	source string,
	args []string,
) (*lang.Template, lang.Bindings, error) {
	tmpl, err := lang.Parse(source)
	if err != nil {
		return nil, nil, err
	}

	presets, err := preset.Compute(settingsFrom(ctx).Presets...)
	if err != nil {
		return nil, nil, err
	}

	bindings, err := tmpl.Resolve(lang.Sources{
		Args:    args,
		Presets: presets,
	})
	if err != nil {
		return nil, nil, err
	}

	return tmpl, bindings, nil
}
