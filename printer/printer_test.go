package printer_test

import (
	"testing"

	"github.com/gdiazlo/pg-sexp/parser"
	"github.com/gdiazlo/pg-sexp/printer"
	"github.com/gdiazlo/pg-sexp/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Print_NIL(t *testing.T) {
	assert.Equal(t, "()", printer.Print(value.NIL()))
}

func Test_Print_Integer(t *testing.T) {
	assert.Equal(t, "42", printer.Print(value.New(nil, value.EncodeInt(42))))
	assert.Equal(t, "-17", printer.Print(value.New(nil, value.EncodeInt(-17))))
}

func Test_Print_Float_KeepsDecimalPoint(t *testing.T) {
	assert.Equal(t, "3.0", printer.Print(value.New(nil, value.EncodeFloat(3.0))))
	assert.Equal(t, "3.5", printer.Print(value.New(nil, value.EncodeFloat(3.5))))
}

func Test_Print_String_Escapes(t *testing.T) {
	s := "a\nb\tc\"d\\e"
	got := printer.Print(value.New(nil, value.EncodeString([]byte(s))))
	assert.Equal(t, `"a\nb\tc\"d\\e"`, got)
}

func Test_Print_List(t *testing.T) {
	symbols := []string{"a"}
	v := value.New(symbols, value.EncodeList([]value.Elem{
		value.EncodeSymbol(0), value.EncodeInt(1), value.EncodeInt(2),
	}, symbols))

	assert.Equal(t, "(a 1 2)", printer.Print(v))
}

func Test_RoundTrip_ParsePrint(t *testing.T) {
	texts := []string{
		"()",
		"42",
		"-17",
		"3.5",
		`"hello world"`,
		"(a b c)",
		"(1 (2 3) 4)",
		"foo-bar",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			v, err := parser.Parse(text)
			require.NoError(t, err)

			printed := printer.Print(v)

			reparsed, err := parser.Parse(printed)
			require.NoError(t, err)

			assert.True(t, v.Equal(reparsed), "printed text %q must reparse to an equal value", printed)
		})
	}
}

func Test_Debug_ReparsesAndAnnotates(t *testing.T) {
	v, err := parser.Parse("(1 2)")
	require.NoError(t, err)

	debugText := printer.Debug(v)
	assert.Contains(t, debugText, "hash=")

	reparsed, err := parser.Parse(debugText)
	require.NoError(t, err)
	assert.True(t, v.Equal(reparsed), "debug output must still reparse to an equal value")
}
