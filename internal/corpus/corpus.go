// Package corpus generates arbitrary sexp values for property-based tests,
// shared by every package's property tests. Every exported generator is
// built on pgregory.net/rapid so a failing case shrinks to a minimal
// reproduction.
package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdiazlo/pg-sexp/parser"
	"github.com/gdiazlo/pg-sexp/value"
	"pgregory.net/rapid"
)

// maxDepth and maxChildren bound generated trees so rapid doesn't spend its
// whole budget on pathologically large lists; deep nesting and large lists
// are exercised directly by dedicated limit tests instead, not through
// random generation.
const (
	maxDepth    = 4
	maxChildren = 5
)

// Text generates random, always-well-formed sexp source text.
func Text(t *rapid.T) string {
	return genText(t, 0)
}

// Value generates a random decoded value.Value by generating text and
// parsing it, exercising the parser and the binary encoder together.
func Value(t *rapid.T) value.Value {
	v, err := parser.Parse(Text(t))
	if err != nil {
		// genText only ever emits grammar-valid text; a parse failure here
		// means the generator itself is broken.
		panic(fmt.Sprintf("corpus: generated unparseable text: %v", err))
	}

	return v
}

func genText(t *rapid.T, depth int) string {
	kind := rapid.IntRange(0, 4).Draw(t, "kind")
	if depth >= maxDepth {
		kind = rapid.IntRange(0, 3).Draw(t, "leafKind")
	}

	switch kind {
	case 0:
		return "nil"
	case 1:
		return strconv.FormatInt(rapid.Int64Range(-1<<40, 1<<40).Draw(t, "int"), 10)
	case 2:
		f := rapid.Float64Range(-1e6, 1e6).Draw(t, "float")
		s := fmt.Sprintf("%g", f)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}

		return s
	case 3:
		return genAtomText(t)
	default:
		return genListText(t, depth)
	}
}

var symbolAlphabet = []rune("abcdefghijklmnopqrstuvwxyz-_")

// genAtomText generates either a symbol or a quoted string, the two
// remaining atom kinds not covered by genText's numeric/nil cases.
func genAtomText(t *rapid.T) string {
	if rapid.Bool().Draw(t, "isString") {
		n := rapid.IntRange(0, 12).Draw(t, "strLen")
		var sb strings.Builder

		sb.WriteByte('"')
		for i := 0; i < n; i++ {
			sb.WriteRune(symbolAlphabet[rapid.IntRange(0, len(symbolAlphabet)-1).Draw(t, "strChar")])
		}
		sb.WriteByte('"')

		return sb.String()
	}

	n := rapid.IntRange(1, 8).Draw(t, "symLen")
	var sb strings.Builder

	for i := 0; i < n; i++ {
		sb.WriteRune(symbolAlphabet[rapid.IntRange(0, len(symbolAlphabet)-1).Draw(t, "symChar")])
	}

	return sb.String()
}

func genListText(t *rapid.T, depth int) string {
	n := rapid.IntRange(0, maxChildren).Draw(t, "listLen")

	children := make([]string, n)
	for i := range children {
		children[i] = genText(t, depth+1)
	}

	return "(" + strings.Join(children, " ") + ")"
}
