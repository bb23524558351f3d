package lang

import (
	"log/slog"
	"strconv"
)

// Position identifies a location in the template source.
type Position struct {
	Offset int // Byte offset from the start of the input
	Line   int // 1-based line number
	Column int // 1-based column number
}

// String returns the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("offset", p.Offset),
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	)
}

// Node is a segment of a parsed template.
type Node interface {
	node()
}

// Literal is verbatim template text, emitted unchanged on every output
// line. Comment lines (first character '#') are captured as a single
// Literal so their contents are never substituted.
type Literal struct {
	Text string
	Pos  Position
}

// CodecCall is one link of a placeholder's codec chain.
type CodecCall struct {
	Name   string
	Arg    string
	HasArg bool
}

// Placeholder is a substitution point in the template.
type Placeholder struct {
	Name       string
	Repeatable bool
	Default    string
	HasDefault bool
	Codecs     []CodecCall
	Pos        Position
}

// Optional is a bracketed section included in the output only when every
// placeholder directly inside it resolves to a non-empty value.
type Optional struct {
	Nodes []Node
	Pos   Position
}

func (*Literal) node()     {}
func (*Placeholder) node() {}
func (*Optional) node()    {}

// Template is a parsed format string.
type Template struct {
	Nodes  []Node
	Source string
}

// Placeholders returns every placeholder in template order, descending
// into optional sections.
func (t *Template) Placeholders() []*Placeholder {
	var out []*Placeholder

	var walk func(nodes []Node)

	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *Placeholder:
				out = append(out, n)
			case *Optional:
				walk(n.Nodes)
			}
		}
	}

	walk(t.Nodes)

	return out
}

// Names returns the unique placeholder names in order of first occurrence.
func (t *Template) Names() []string {
	seen := make(map[string]bool)

	var names []string

	for _, ph := range t.Placeholders() {
		if !seen[ph.Name] {
			seen[ph.Name] = true

			names = append(names, ph.Name)
		}
	}

	return names
}
