package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/snip/preset"
	"github.com/ardnew/snip/template"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the output writer of the kong parse context, or os.Stdout
// when running outside of one (as in tests).
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// settingsKey is used to store a [Settings] value in [context.Context].
type settingsKey struct{}

// Settings carries runtime state shared by the subcommands.
type Settings struct {
	// Editor overrides $EDITOR for the edit command.
	Editor string

	// Presets are the user-defined preset definitions from the
	// configuration file.
	Presets []preset.Definition

	// TemplateDirs is the template search path, highest priority first.
	TemplateDirs []string
}

// WithSettings returns a new context.Context containing the given Settings.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(ctx context.Context) Settings {
	s, _ := ctx.Value(settingsKey{}).(Settings)

	return s
}

// store returns the template store over the configured search path.
func (s Settings) store() *template.Store {
	return template.NewStore(s.TemplateDirs...)
}

// stdinPiped reports whether stdin is connected to a pipe or file rather
// than a terminal.
func stdinPiped() bool {
	info, err := os.Stdin.Stat()

	return err == nil && info.Mode()&os.ModeCharDevice == 0
}
