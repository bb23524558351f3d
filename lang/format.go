package lang

import (
	"strings"
)

// String reconstructs the template's source text from its AST. Bracket
// characters inside literals are re-escaped, so for templates without
// escape sequences the result is byte-identical to the parsed input.
func (t *Template) String() string {
	var sb strings.Builder

	formatNodes(&sb, t.Nodes)

	return sb.String()
}

func formatNodes(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Literal:
			formatLiteral(sb, n)
		case *Placeholder:
			formatPlaceholder(sb, n)
		case *Optional:
			sb.WriteByte('[')
			formatNodes(sb, n.Nodes)
			sb.WriteByte(']')
		}
	}
}

func formatLiteral(sb *strings.Builder, lit *Literal) {
	if strings.HasPrefix(lit.Text, "#") {
		// Comment lines are opaque; emit them untouched.
		sb.WriteString(lit.Text)

		return
	}

	for _, r := range lit.Text {
		// A bare > is plain literal text; only <, [, and ] need
		// re-escaping to parse back identically.
		if r == '<' || r == '[' || r == ']' {
			sb.WriteByte('\\')
		}

		sb.WriteRune(r)
	}
}

func formatPlaceholder(sb *strings.Builder, ph *Placeholder) {
	sb.WriteByte('<')
	sb.WriteString(ph.Name)

	if ph.Repeatable {
		sb.WriteString("...")
	}

	if ph.HasDefault {
		sb.WriteString("='")
		sb.WriteString(ph.Default)
		sb.WriteByte('\'')
	}

	for _, call := range ph.Codecs {
		sb.WriteByte('|')
		sb.WriteString(call.Name)

		if call.HasArg {
			sb.WriteString(":'")
			sb.WriteString(call.Arg)
			sb.WriteByte('\'')
		}
	}

	sb.WriteByte('>')
}
