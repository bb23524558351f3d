package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/snip/lang"
	"github.com/ardnew/snip/log"
)

const defaultEditor = "vi"

// Edit creates or edits a stored template in the user's editor.
//
// Templates found only in a lower-priority search directory are copied
// into the user template directory before editing. The edited content is
// parsed on save; if it fails to parse, the user may re-edit or keep the
// file as-is and fix it later.
type Edit struct {
	Name   string `arg:"" help:"Template name" name:"name"`
	Format bool   `help:"Rewrite the template in canonical form after editing"`
}

// Run executes the edit command.
func (e *Edit) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	settings := settingsFrom(ctx)

	path, err := settings.store().EnsureUser(e.Name)
	if err != nil {
		return err
	}

	editor := settings.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}

	if editor == "" {
		editor = defaultEditor
	}

	log.Debug("editing template",
		slog.String("name", e.Name),
		slog.String("path", path),
		slog.String("editor", editor),
	)

	for {
		cmd := exec.CommandContext(ctx, editor, path)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		err := cmd.Run()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if len(strings.TrimSpace(string(data))) == 0 {
			// Nothing saved: don't leave an empty template behind.
			_ = os.Remove(path)

			log.Info("empty template discarded", slog.String("name", e.Name))

			return nil
		}

		tmpl, parseErr := lang.Parse(strings.TrimRight(string(data), "\n"))
		if parseErr == nil {
			if e.Format {
				return os.WriteFile(path, []byte(tmpl.String()+"\n"), 0o644)
			}

			return nil
		}

		fmt.Fprintf(os.Stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprintf(os.Stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return ErrEditDeclined.Wrap(parseErr)
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined.Wrap(parseErr)
		}
	}
}
