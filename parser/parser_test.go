package parser_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/gdiazlo/pg-sexp/errs"
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_Atoms(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		typeOf string
	}{
		{"nil keyword", "nil", "nil"},
		{"empty list is nil", "()", "nil"},
		{"positive integer", "42", "integer"},
		{"negative integer", "-17", "integer"},
		{"float", "3.14", "float"},
		{"exponent float", "1e10", "float"},
		{"signed exponent float", "-2.5e-3", "float"},
		{"string", `"hello"`, "string"},
		{"symbol", "foo-bar", "symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parser.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.typeOf, v.TypeOf())
		})
	}
}

func Test_Parse_IntegerValue(t *testing.T) {
	v, err := parser.Parse("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Root().Int())
}

func Test_Parse_StringEscapes(t *testing.T) {
	v, err := parser.Parse(`"a\nb\tc\"d\\e"`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tc\"d\\e", string(v.Root().StringBytes()))
}

func Test_Parse_StringPassthroughEscape(t *testing.T) {
	// Any escape that isn't n, t, or r passes through unchanged.
	v, err := parser.Parse(`"a\zb"`)
	require.NoError(t, err)
	assert.Equal(t, "azb", string(v.Root().StringBytes()))
}

func Test_Parse_List(t *testing.T) {
	v, err := parser.Parse("(1 2 3)")
	require.NoError(t, err)
	assert.True(t, v.IsList())
	assert.Equal(t, int32(3), v.Length())
}

func Test_Parse_NestedList(t *testing.T) {
	v, err := parser.Parse("(a (b c) d)")
	require.NoError(t, err)
	assert.Equal(t, int32(3), v.Length())

	mid, ok := v.Nth(1)
	require.True(t, ok)
	assert.True(t, mid.IsList())
	assert.Equal(t, int32(2), mid.Length())
}

func Test_Parse_Comments(t *testing.T) {
	v, err := parser.Parse("(1 ; a comment\n 2)")
	require.NoError(t, err)
	assert.Equal(t, int32(2), v.Length())
}

func Test_Parse_SymbolDedup(t *testing.T) {
	v, err := parser.Parse("(foo foo foo)")
	require.NoError(t, err)
	assert.Len(t, v.Symbols(), 1, "repeated symbols must intern to the same table entry")
}

func Test_Parse_TrailingGarbage(t *testing.T) {
	_, err := parser.Parse("1 2")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTrailingGarbage)
}

func Test_Parse_UnterminatedList(t *testing.T) {
	_, err := parser.Parse("(1 2")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnterminatedList)
}

func Test_Parse_UnterminatedString(t *testing.T) {
	_, err := parser.Parse(`"abc`)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnterminatedStr)
}

func Test_Parse_UnexpectedCloseParen(t *testing.T) {
	_, err := parser.Parse(")")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnexpectedCloseParen)
}

func Test_Parse_MalformedNumber(t *testing.T) {
	_, err := parser.Parse("12abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMalformedNumber)
}

func Test_Parse_EmptyInput(t *testing.T) {
	_, err := parser.Parse(" ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func Test_Parse_DepthExceeded(t *testing.T) {
	text := ""
	for i := 0; i < 1100; i++ {
		text += "("
	}
	text += "1"
	for i := 0; i < 1100; i++ {
		text += ")"
	}

	_, err := parser.Parse(text)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDepthExceeded)
}

// Test_Parse_DepthBoundary pins the exact boundary spec.md §8 names:
// nesting to MAX_DEPTH-1 parses, nesting to MAX_DEPTH errors.
func Test_Parse_DepthBoundary(t *testing.T) {
	nested := func(depth int) string {
		var b strings.Builder
		for i := 0; i < depth; i++ {
			b.WriteByte('(')
		}
		b.WriteByte('1')
		for i := 0; i < depth; i++ {
			b.WriteByte(')')
		}
		return b.String()
	}

	_, err := parser.Parse(nested(format.MaxDepth - 1))
	require.NoError(t, err, "MAX_DEPTH-1 levels of nesting must parse")

	_, err = parser.Parse(nested(format.MaxDepth))
	require.Error(t, err, "MAX_DEPTH levels of nesting must error")
	assert.ErrorIs(t, err, errs.ErrDepthExceeded)
}

// Test_Parse_TooManySymbols pins §6.3/§7's "limit exceeded — symbol
// count" on the text path, matching what Decode enforces on the binary
// path.
func Test_Parse_TooManySymbols(t *testing.T) {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i <= format.MaxSymbols; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("sym")
		b.WriteString(strconv.Itoa(i))
	}
	b.WriteByte(')')

	_, err := parser.Parse(b.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTooManySymbols)
}

func Test_Parse_LargeListEncoding(t *testing.T) {
	text := "("
	for i := 0; i < 10; i++ {
		text += "1 "
	}
	text += ")"

	v, err := parser.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, int32(10), v.Length())
}
