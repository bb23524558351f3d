package lang

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/snip/codec"
)

// Expand renders the template once per combination of values. Names bound
// to more than one value multiply the output combinatorially unless every
// value list is consumed whole: repeatable occurrences and chains that
// contain a reducing codec render the full list on every line.
//
// Expansion is all-or-nothing: any unresolved required placeholder or
// codec failure aborts with no partial output.
func (t *Template) Expand(bindings Bindings) ([]string, error) {
	if err := t.checkCodecs(); err != nil {
		return nil, err
	}

	dims := t.dimensions(bindings)

	count := 1
	for _, d := range dims {
		count *= len(bindings[d].Values)
	}

	lines := make([]string, 0, count)
	indices := make(map[string]int, len(dims))

	for i := range count {
		// Row-major: the first dimension in template order is the
		// outermost loop.
		stride := count

		for _, d := range dims {
			n := len(bindings[d].Values)
			stride /= n
			indices[d] = (i / stride) % n
		}

		line, err := t.render(bindings, indices)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// dimensions returns the names that multiply the output, ordered by first
// occurrence in the template. A name is a dimension when it is bound to
// more than one value and at least one of its occurrences consumes a
// single value per line.
func (t *Template) dimensions(bindings Bindings) []string {
	seen := make(map[string]bool)

	var dims []string

	for _, ph := range t.Placeholders() {
		if seen[ph.Name] || listContext(ph) {
			continue
		}

		if b := bindings[ph.Name]; b != nil && len(b.Values) > 1 {
			seen[ph.Name] = true

			dims = append(dims, ph.Name)
		}
	}

	return dims
}

// listContext reports whether the placeholder consumes its whole value
// list on every output line.
func listContext(ph *Placeholder) bool {
	if ph.Repeatable {
		return true
	}

	for _, call := range ph.Codecs {
		if c, err := codec.Get(call.Name); err == nil && c.Reducing() {
			return true
		}
	}

	return false
}

// checkCodecs validates every codec chain before any line is rendered.
func (t *Template) checkCodecs() error {
	for _, ph := range t.Placeholders() {
		for _, call := range ph.Codecs {
			c, err := codec.Get(call.Name)
			if err != nil {
				return ErrCodec.Wrap(err).
					With(slog.String("placeholder", ph.Name)).
					WithPosition(ph.Pos)
			}

			if err := c.CheckArg(call.HasArg); err != nil {
				return ErrCodec.Wrap(err).
					With(slog.String("placeholder", ph.Name)).
					WithPosition(ph.Pos)
			}
		}
	}

	return nil
}

// render produces one output line for the given dimension indices.
func (t *Template) render(
	bindings Bindings,
	indices map[string]int,
) (string, error) {
	var sb strings.Builder

	err := renderNodes(&sb, t.Nodes, bindings, indices, false)
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}

// renderNodes writes the rendered nodes to sb. Inside an optional section
// an unbound or empty placeholder aborts with errOmit instead of an
// error; literal text is always emitted verbatim.
func renderNodes(
	sb *strings.Builder,
	nodes []Node,
	bindings Bindings,
	indices map[string]int,
	optional bool,
) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Literal:
			sb.WriteString(n.Text)

		case *Placeholder:
			value, ok, err := renderPlaceholder(n, bindings, indices)
			if err != nil {
				return err
			}

			if !ok || (optional && value == "") {
				if optional {
					return errOmit
				}

				return ErrUnresolved.
					With(slog.String("name", n.Name)).
					WithPosition(n.Pos)
			}

			sb.WriteString(value)

		case *Optional:
			var inner strings.Builder

			err := renderNodes(&inner, n.Nodes, bindings, indices, true)

			switch {
			case errors.Is(err, errOmit):
				// Section dropped; nested optionals were already
				// settled innermost-first by recursion.
			case err != nil:
				return err
			default:
				sb.WriteString(inner.String())
			}
		}
	}

	return nil
}

// errOmit is an internal signal that an optional section must be dropped.
//
//nolint:errname
var errOmit = NewError("optional section omitted")

// renderPlaceholder renders one placeholder occurrence. The boolean
// result reports whether the placeholder had a usable binding.
func renderPlaceholder(
	ph *Placeholder,
	bindings Bindings,
	indices map[string]int,
) (string, bool, error) {
	b := bindings[ph.Name]
	if b == nil || (len(b.Values) == 0 && !b.Explicit) {
		return "", false, nil
	}

	if len(b.Values) == 0 {
		// Explicitly bound empty with NAME=.
		return "", true, nil
	}

	if listContext(ph) {
		out, err := renderList(ph, b.Values)

		return out, true, err
	}

	idx, ok := indices[ph.Name]
	if !ok {
		idx = 0
	}

	value := b.Values[idx]

	for _, call := range ph.Codecs {
		c, err := codec.Get(call.Name)
		if err != nil {
			return "", false, codecError(ph, call, err)
		}

		value, err = c.ApplyValue(value, call.Arg)
		if err != nil {
			return "", false, codecError(ph, call, err)
		}
	}

	return value, true, nil
}

// renderList renders a repeatable or reduced occurrence: the whole value
// list flows through the chain, and whatever remains is joined with a
// single space.
func renderList(ph *Placeholder, values []string) (string, error) {
	for _, call := range ph.Codecs {
		c, err := codec.Get(call.Name)
		if err != nil {
			return "", codecError(ph, call, err)
		}

		values, err = c.ApplyList(values, call.Arg)
		if err != nil {
			return "", codecError(ph, call, err)
		}
	}

	return strings.Join(values, " "), nil
}

func codecError(ph *Placeholder, call CodecCall, err error) error {
	e := ErrCodec.Wrap(err).
		With(slog.String("placeholder", ph.Name)).
		With(slog.String("codec", call.Name))

	if call.HasArg {
		e = e.With(slog.String("arg", call.Arg))
	}

	return e.WithPosition(ph.Pos)
}
