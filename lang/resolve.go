package lang

import (
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/snip/log"
)

// Origin identifies where a binding's values came from. Higher-priority
// origins are listed first; a name bound from one origin is never
// overridden by a lower one.
type Origin int

const (
	OriginNone Origin = iota
	OriginArg
	OriginEnv
	OriginPreset
	OriginDefault
)

// String returns the lower-case name of the origin.
func (o Origin) String() string {
	switch o {
	case OriginArg:
		return "argument"
	case OriginEnv:
		return "environment"
	case OriginPreset:
		return "preset"
	case OriginDefault:
		return "default"
	default:
		return "none"
	}
}

// Binding holds the resolved values for one placeholder name.
type Binding struct {
	Values   []string
	Explicit bool // set empty on purpose with NAME=
	Origin   Origin
}

// Bindings maps placeholder names to their resolved values.
type Bindings map[string]*Binding

// Sources supplies the inputs that placeholder values are resolved from.
// Zero fields fall back to the process environment, os.ReadFile, and the
// default logger.
type Sources struct {
	// Args are the command-line binding arguments, each one of:
	//
	//	NAME=VALUE   bind VALUE to NAME; repeats accumulate
	//	NAME=        bind NAME to the empty value
	//	NAME:FILE    bind one value per non-blank line of FILE
	//	VALUE        positional; see Resolve
	Args []string

	// Environ is the environment in "key=value" form.
	Environ []string

	// Presets are reserved placeholder values computed per invocation.
	// A preset name may not also be bound by an argument.
	Presets map[string][]string

	// ReadFile loads NAME:FILE bindings.
	ReadFile func(name string) ([]byte, error)

	// Logger receives warnings about ignored bindings.
	Logger *log.Logger
}

func (s Sources) readFile(name string) ([]byte, error) {
	if s.ReadFile != nil {
		return s.ReadFile(name)
	}

	return os.ReadFile(name)
}

func (s Sources) environ() []string {
	if s.Environ != nil {
		return s.Environ
	}

	return os.Environ()
}

func (s Sources) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}

	return log.Default()
}

// Resolve binds the template's placeholder names from the given sources.
//
// Per name the precedence is: command-line arguments, then environment
// variables, then presets, then the placeholder's inline default. A bare
// VALUE argument is appended to the most recently named placeholder if
// any, otherwise to the next unbound placeholder in template order,
// otherwise to the placeholder that last received a positional value.
// Bindings that match no placeholder are logged at Warn and dropped.
func (t *Template) Resolve(src Sources) (Bindings, error) {
	r := &resolver{
		bindings: make(Bindings),
		names:    t.Names(),
		src:      src,
	}

	// Names without argument or environment values, in template order.
	// Preset names are never assigned positionally.
	for _, name := range r.names {
		if _, reserved := src.Presets[name]; !reserved {
			r.unset = append(r.unset, name)
		}
	}

	if err := r.applyArgs(); err != nil {
		return nil, err
	}

	r.applyEnviron()

	if err := r.applyPresets(); err != nil {
		return nil, err
	}

	r.applyDefaults(t)

	return r.bindings, nil
}

type resolver struct {
	bindings Bindings
	names    []string
	unset    []string // names not yet assigned, template order
	src      Sources
}

func (r *resolver) has(name string) bool {
	_, ok := r.bindings[name]

	return ok
}

func (r *resolver) known(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}

	return false
}

func (r *resolver) bind(name string, origin Origin, values ...string) {
	b, ok := r.bindings[name]
	if !ok {
		b = &Binding{Origin: origin}
		r.bindings[name] = b
	}

	for _, v := range values {
		if items, ok := splitListLiteral(v); ok {
			b.Values = append(b.Values, items...)
		} else {
			b.Values = append(b.Values, v)
		}
	}

	r.dropUnset(name)
}

func (r *resolver) dropUnset(name string) {
	for i, n := range r.unset {
		if n == name {
			r.unset = append(r.unset[:i], r.unset[i+1:]...)

			return
		}
	}
}

// applyArgs processes command-line binding arguments in order.
func (r *resolver) applyArgs() error {
	var lastNamed, lastUsed string

	for _, arg := range r.src.Args {
		if arg == "" {
			continue
		}

		name, value, sep := splitArg(arg)

		switch sep {
		case '=':
			lastNamed, lastUsed = name, name

			if value == "" {
				r.bindExplicitEmpty(name)

				continue
			}

			r.bindNamed(name, value)

		case ':':
			lastNamed, lastUsed = name, name

			if err := r.bindFile(name, value); err != nil {
				return err
			}

		default:
			target := r.positionalTarget(lastNamed, lastUsed, arg)
			if target == "" || !r.known(target) {
				continue
			}

			lastUsed = target

			r.bind(target, OriginArg, arg)
		}
	}

	return nil
}

// positionalTarget selects the placeholder a bare VALUE argument binds to.
func (r *resolver) positionalTarget(lastNamed, lastUsed, value string) string {
	if lastNamed != "" {
		return lastNamed
	}

	if len(r.unset) > 0 {
		return r.unset[0]
	}

	if lastUsed != "" {
		return lastUsed
	}

	r.src.logger().Warn("ignoring value bound to no placeholder",
		slog.String("value", value))

	return ""
}

func (r *resolver) bindNamed(name, value string) {
	if !r.known(name) {
		r.src.logger().Warn("ignoring binding for unknown placeholder",
			slog.String("name", name),
			slog.String("value", value))

		return
	}

	r.bind(name, OriginArg, value)
}

func (r *resolver) bindExplicitEmpty(name string) {
	if !r.known(name) {
		r.src.logger().Warn("ignoring binding for unknown placeholder",
			slog.String("name", name))

		return
	}

	b, ok := r.bindings[name]
	if !ok {
		b = &Binding{Origin: OriginArg}
		r.bindings[name] = b
	}

	b.Explicit = true

	r.dropUnset(name)
}

func (r *resolver) bindFile(name, path string) error {
	if !r.known(name) {
		r.src.logger().Warn("ignoring file binding for unknown placeholder",
			slog.String("name", name),
			slog.String("file", path))

		return nil
	}

	data, err := r.src.readFile(path)
	if err != nil {
		return ErrSourceUnavailable.Wrap(err).
			With(slog.String("name", name)).
			With(slog.String("file", path))
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			r.bind(name, OriginArg, line)
		}
	}

	return nil
}

// applyEnviron imports environment variables for placeholders not yet
// bound. Only lower-case variables are consulted, and names reserved by
// presets are skipped.
func (r *resolver) applyEnviron() {
	env := make(map[string]string)

	for _, kv := range r.src.environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	for _, name := range r.names {
		if r.has(name) || strings.HasPrefix(name, "_") {
			continue
		}

		if _, reserved := r.src.Presets[name]; reserved {
			continue
		}

		if v, ok := env[name]; ok && v != "" {
			r.bind(name, OriginEnv, v)
		}
	}
}

// applyPresets binds preset values, rejecting user bindings for reserved
// names. Duplicate preset values are dropped while preserving order.
func (r *resolver) applyPresets() error {
	for _, name := range r.names {
		values, ok := r.src.Presets[name]
		if !ok {
			continue
		}

		if b := r.bindings[name]; b != nil && b.Origin == OriginArg {
			return ErrPresetConflict.With(slog.String("name", name))
		}

		seen := make(map[string]bool, len(values))
		unique := make([]string, 0, len(values))

		for _, v := range values {
			if !seen[v] {
				seen[v] = true

				unique = append(unique, v)
			}
		}

		r.bind(name, OriginPreset, unique...)
	}

	return nil
}

// applyDefaults binds inline defaults for names still unbound. The first
// occurrence carrying a default wins.
func (r *resolver) applyDefaults(t *Template) {
	for _, ph := range t.Placeholders() {
		if ph.HasDefault && !r.has(ph.Name) {
			r.bind(ph.Name, OriginDefault, ph.Default)
		}
	}
}

// splitArg classifies a binding argument by its first '=' or ':'
// separator. A separator at position 0 does not name a placeholder, so
// ":file" and "=x" are plain positional values.
func splitArg(arg string) (name, value string, sep byte) {
	eq := strings.IndexByte(arg, '=')
	co := strings.IndexByte(arg, ':')

	switch {
	case eq > 0 && (co <= 0 || eq < co):
		return strings.ToLower(arg[:eq]), arg[eq+1:], '='
	case co > 0:
		return strings.ToLower(arg[:co]), arg[co+1:], ':'
	default:
		return "", arg, 0
	}
}

// splitListLiteral splits a value of the form \('a' 'b c' d\) into its
// items. Items are single-quoted words or bare words separated by
// whitespace. Values not wrapped in \( \) are returned unchanged.
func splitListLiteral(value string) ([]string, bool) {
	if !strings.HasPrefix(value, `\(`) || !strings.HasSuffix(value, `\)`) {
		return nil, false
	}

	inner := value[2 : len(value)-2]
	items := make([]string, 0)

	for i := 0; i < len(inner); {
		switch c := inner[i]; {
		case c == ' ' || c == '\t':
			i++

		case c == '\'':
			end := strings.IndexByte(inner[i+1:], '\'')
			if end < 0 {
				// Unterminated quote: keep the rest verbatim.
				items = append(items, inner[i+1:])

				return items, true
			}

			items = append(items, inner[i+1:i+1+end])
			i += end + 2

		default:
			end := strings.IndexAny(inner[i:], " \t")
			if end < 0 {
				items = append(items, inner[i:])

				return items, true
			}

			items = append(items, inner[i:i+end])
			i += end
		}
	}

	return items, true
}
