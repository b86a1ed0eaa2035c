// Package parser implements the sexp text grammar: a recursive-descent
// reader that turns sexp source text into a decoded value.Value,
// interning symbols into a per-parse internal/symtab.Table as it goes.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gdiazlo/pg-sexp/errs"
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/internal/pool"
	"github.com/gdiazlo/pg-sexp/internal/symtab"
	"github.com/gdiazlo/pg-sexp/value"
)

// numberPattern matches the number grammar: an optional sign, a digit
// run, an optional fractional part, and an optional exponent.
var numberPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Parse reads one sexp value from text, returning an error if the text
// does not hold exactly one value (plus optional surrounding
// whitespace/comments) or exceeds a resource limit.
func Parse(text string) (value.Value, error) {
	p := &parser{data: []byte(text), symtab: symtab.New(8)}

	p.skipWS()

	root, err := p.parseValue()
	if err != nil {
		return value.Value{}, err
	}

	p.skipWS()
	if p.pos != len(p.data) {
		return value.Value{}, errs.ErrTrailingGarbage
	}

	return value.New(p.symtab.Symbols(), root), nil
}

type parser struct {
	data   []byte
	pos    int
	symtab *symtab.Table
	depth  int
}

func (p *parser) parseValue() (value.Elem, error) {
	if p.pos >= len(p.data) {
		return value.Elem{}, errs.ErrUnexpectedEOF
	}

	switch p.data[p.pos] {
	case '(':
		return p.parseList()
	case ')':
		return value.Elem{}, errs.ErrUnexpectedCloseParen
	case '"':
		return p.parseString()
	default:
		return p.parseAtom()
	}
}

func (p *parser) parseList() (value.Elem, error) {
	p.pos++ // consume '('

	p.depth++
	if p.depth >= format.MaxDepth {
		return value.Elem{}, errs.ErrDepthExceeded
	}
	defer func() { p.depth-- }()

	var children []value.Elem

	for {
		p.skipWS()

		if p.pos >= len(p.data) {
			return value.Elem{}, errs.ErrUnterminatedList
		}

		if p.data[p.pos] == ')' {
			p.pos++
			break
		}

		child, err := p.parseValue()
		if err != nil {
			return value.Elem{}, err
		}

		children = append(children, child)
	}

	if len(children) == 0 {
		return value.EncodeNil(), nil
	}

	return value.EncodeList(children, p.symtab.Symbols()), nil
}

func (p *parser) parseString() (value.Elem, error) {
	p.pos++ // consume opening '"'

	scratch := pool.GetValueBuffer()
	defer pool.PutValueBuffer(scratch)

	for {
		if p.pos >= len(p.data) {
			return value.Elem{}, errs.ErrUnterminatedStr
		}

		c := p.data[p.pos]

		if c == '"' {
			p.pos++
			break
		}

		if c == '\\' {
			p.pos++
			if p.pos >= len(p.data) {
				return value.Elem{}, errs.ErrUnterminatedStr
			}

			scratch.Append([]byte{unescape(p.data[p.pos])})
			p.pos++

			continue
		}

		scratch.Append([]byte{c})
		p.pos++
	}

	// EncodeString retains its argument inside the returned Elem's raw
	// bytes, so it must copy out of the pooled buffer before Put returns
	// scratch to the pool for reuse.
	content := make([]byte, scratch.Len())
	copy(content, scratch.Bytes())

	return value.EncodeString(content), nil
}

// unescape maps the recognized escapes to their literal byte; any other
// character passes through unchanged.
func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

func (p *parser) parseAtom() (value.Elem, error) {
	start := p.pos
	for p.pos < len(p.data) && !isDelimiter(p.data[p.pos]) {
		p.pos++
	}

	tok := string(p.data[start:p.pos])
	if tok == "" {
		return value.Elem{}, errs.ErrEmptyAtom
	}

	if tok == "nil" {
		return value.EncodeNil(), nil
	}

	if looksLikeNumber(tok) {
		if !numberPattern.MatchString(tok) {
			return value.Elem{}, errs.ErrMalformedNumber
		}

		if strings.ContainsAny(tok, ".eE") {
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return value.Elem{}, errs.ErrMalformedNumber
			}

			return value.EncodeFloat(f), nil
		}

		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return value.Elem{}, errs.ErrMalformedNumber
		}

		return value.EncodeInt(n), nil
	}

	idx := p.symtab.Intern(tok)
	if p.symtab.Len() > format.MaxSymbols {
		return value.Elem{}, errs.ErrTooManySymbols
	}

	return value.EncodeSymbol(idx), nil
}

// looksLikeNumber reports whether tok starts the way a number literal
// must, so a malformed trailing part (e.g. "12abc") is reported as
// ErrMalformedNumber rather than silently accepted as a symbol.
func looksLikeNumber(tok string) bool {
	c := tok[0]
	if c >= '0' && c <= '9' {
		return true
	}

	return (c == '+' || c == '-') && len(tok) > 1 && tok[1] >= '0' && tok[1] <= '9'
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '"', ';':
		return true
	default:
		return false
	}
}

func (p *parser) skipWS() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}

		if c == ';' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' {
				p.pos++
			}
			continue
		}

		break
	}
}
