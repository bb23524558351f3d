package lang

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse parses a format string into a Template.
func Parse(input string) (*Template, error) {
	p := &parser{
		input: []byte(input),
		pos:   0,
		line:  1,
		col:   1,
	}

	nodes, err := p.parseSegments(0)
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		// parseSegments stops at ']' only; at depth 0 it is unbalanced.
		return nil, ErrSyntax.WithPosition(p.position()).
			With(slog.String("unexpected", "]"))
	}

	return &Template{Nodes: nodes, Source: input}, nil
}

// parser holds the parser state.
type parser struct {
	input []byte
	pos   int
	line  int
	col   int
}

// parseSegments parses segments until EOF or, at depth > 0, the ']'
// closing the innermost optional section. The ']' is left unconsumed
// for the caller.
func (p *parser) parseSegments(depth int) ([]Node, error) {
	nodes := make([]Node, 0)

	for !p.eof() {
		switch ch := p.peek(); {
		case ch == '#' && p.col == 1:
			nodes = append(nodes, p.parseCommentLine())

		case ch == '<':
			ph, err := p.parsePlaceholder()
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, ph)

		case ch == '[':
			opt, err := p.parseOptional(depth)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, opt)

		case ch == ']':
			if depth == 0 {
				return nil, ErrSyntax.WithPosition(p.position()).
					With(slog.String("unexpected", "]"))
			}

			return nodes, nil

		default:
			nodes = append(nodes, p.parseLiteral())
		}
	}

	return nodes, nil
}

// parseOptional parses: '[' segment* ']'.
func (p *parser) parseOptional(depth int) (*Optional, error) {
	pos := p.position()

	p.advance() // skip '['

	inner, err := p.parseSegments(depth + 1)
	if err != nil {
		return nil, err
	}

	if !p.expect(']') {
		return nil, ErrSyntax.WithPosition(p.position()).
			With(slog.String("expected", "]")).
			With(slog.Any("optional_at", pos))
	}

	return &Optional{Nodes: inner, Pos: pos}, nil
}

// parseCommentLine captures a '#' line, including its newline, as one
// opaque literal. Placeholders on comment lines are never substituted.
func (p *parser) parseCommentLine() *Literal {
	pos := p.position()
	start := p.pos

	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}

	if !p.eof() {
		p.advance() // keep the '\n'
	}

	return &Literal{Text: string(p.input[start:p.pos]), Pos: pos}
}

// parseLiteral accumulates verbatim text up to the next placeholder,
// optional bracket, or comment line. A backslash escapes '<', '>', '[',
// and ']'; before any other character it is a literal backslash.
func (p *parser) parseLiteral() *Literal {
	pos := p.position()

	var text strings.Builder

	for !p.eof() {
		ch := p.peek()

		if ch == '<' || ch == '[' || ch == ']' {
			break
		}

		if ch == '\\' {
			p.advance()

			if next := p.peek(); isBracket(next) {
				text.WriteRune(next)
				p.advance()

				continue
			}

			text.WriteByte('\\')

			continue
		}

		text.WriteRune(ch)
		p.advance()

		if ch == '\n' && p.peek() == '#' {
			// Let the segment loop capture the comment line.
			break
		}
	}

	return &Literal{Text: text.String(), Pos: pos}
}

// parsePlaceholder parses: '<' name ('...')? ('=' quoted)? ('|' codec)* '>'.
func (p *parser) parsePlaceholder() (*Placeholder, error) {
	pos := p.position()

	p.advance() // skip '<'

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	ph := &Placeholder{Name: name, Pos: pos}

	if p.peekN(3) == "..." {
		ph.Repeatable = true

		p.advanceN(3)
	}

	if p.peek() == '=' {
		p.advance()

		def, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}

		ph.Default = def
		ph.HasDefault = true
	}

	for p.peek() == '|' {
		p.advance()

		call, err := p.parseCodecCall()
		if err != nil {
			return nil, err
		}

		ph.Codecs = append(ph.Codecs, call)
	}

	if !p.expect('>') {
		return nil, ErrSyntax.WithPosition(p.position()).
			With(slog.String("expected", ">")).
			With(slog.String("placeholder", name))
	}

	return ph, nil
}

// parseCodecCall parses: name (':' quoted)?.
// Codec names are not validated here; unknown codecs surface at render
// time when the chain is applied.
func (p *parser) parseCodecCall() (CodecCall, error) {
	name, err := p.parseName()
	if err != nil {
		return CodecCall{}, err
	}

	call := CodecCall{Name: name}

	if p.peek() == ':' {
		p.advance()

		arg, err := p.parseQuoted()
		if err != nil {
			return CodecCall{}, err
		}

		call.Arg = arg
		call.HasArg = true
	}

	return call, nil
}

// parseName parses a placeholder or codec name: a letter followed by
// letters, digits, or underscores. Names are folded to lower case.
func (p *parser) parseName() (string, error) {
	start := p.pos

	if !unicode.IsLetter(p.peek()) {
		return "", ErrSyntax.WithPosition(p.position()).
			With(slog.String("expected", "name"))
	}

	p.advance()

	for !p.eof() {
		ch := p.peek()
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '_' {
			break
		}

		p.advance()
	}

	return strings.ToLower(string(p.input[start:p.pos])), nil
}

// parseQuoted parses a single-quoted string. The quoted text may contain
// any character except the closing quote; delimiters inside quotes are
// not interpreted.
func (p *parser) parseQuoted() (string, error) {
	if !p.expect('\'') {
		return "", ErrSyntax.WithPosition(p.position()).
			With(slog.String("expected", "'"))
	}

	start := p.pos

	for !p.eof() && p.peek() != '\'' {
		p.advance()
	}

	if p.eof() {
		return "", ErrSyntax.WithPosition(p.position()).
			With(slog.String("error", "unterminated string"))
	}

	text := string(p.input[start:p.pos])

	p.advance() // skip closing quote

	return text, nil
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return string(p.input[p.pos:])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) advanceN(n int) {
	for range n {
		p.advance()
	}
}

func (p *parser) expect(ch rune) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

func isBracket(r rune) bool {
	return r == '<' || r == '>' || r == '[' || r == ']'
}
