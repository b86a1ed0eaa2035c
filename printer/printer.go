// Package printer renders a decoded value.Value back to canonical sexp
// text: one space between siblings, no leading or trailing whitespace,
// the five defined string escapes, and round-trippable float formatting.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/internal/pool"
	"github.com/gdiazlo/pg-sexp/value"
)

// Print renders v as canonical sexp text. NIL prints as "()".
func Print(v value.Value) string {
	return render(v, false)
}

// Debug renders v like Print, but annotates every printed atom with its
// element-hash as a trailing "; hash=..." comment: purely a diagnostic
// aid, gated behind this separate entry point so Print's output stays
// canonical. Debug output still re-parses, since every annotation is
// followed by a newline and sexp comments run only to end of line.
func Debug(v value.Value) string {
	return render(v, true)
}

func render(v value.Value, debug bool) string {
	buf := pool.GetTextBuffer()
	defer pool.PutTextBuffer(buf)

	buf.B = appendElem(buf.B, v.Root(), v.Symbols(), debug)

	return string(buf.B)
}

func appendElem(buf []byte, e value.Elem, symbols []string, debug bool) []byte {
	switch e.Kind {
	case format.KindNil:
		buf = append(buf, '(', ')')

	case format.KindInt:
		buf = strconv.AppendInt(buf, e.Int(), 10)

	case format.KindFloat:
		buf = append(buf, formatFloat(e.Float())...)

	case format.KindSymbol:
		text, ok := symbolText(e, symbols)
		if ok {
			buf = append(buf, text...)
		}

	case format.KindString:
		buf = appendEscapedString(buf, e.StringBytes())

	case format.KindList:
		buf = append(buf, '(')

		n := e.ListCount()
		for i := 0; i < n; i++ {
			if i > 0 {
				buf = append(buf, ' ')
			}

			buf = appendElem(buf, e.Child(i), symbols, debug)
		}

		return append(buf, ')')
	}

	if debug {
		buf = append(buf, fmt.Sprintf(" ; hash=%#08x\n", value.ElementHash(e, symbols))...)
	}

	return buf
}

// formatFloat prints f with shortest round-trippable precision,
// guaranteeing the result still parses back as a float: the number
// grammar treats a bare digit run with no '.' or exponent as an integer,
// so a whole-number float like 3.0 must keep its ".0".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

func appendEscapedString(buf []byte, s []byte) []byte {
	buf = append(buf, '"')

	for _, c := range s {
		switch c {
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\t':
			buf = append(buf, '\\', 't')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\\':
			buf = append(buf, '\\', '\\')
		case '"':
			buf = append(buf, '\\', '"')
		default:
			buf = append(buf, c)
		}
	}

	return append(buf, '"')
}

func symbolText(e value.Elem, symbols []string) (string, bool) {
	idx := e.SymbolIndex()
	if idx < 0 || idx >= len(symbols) {
		return "", false
	}

	return symbols[idx], true
}
