package value

import (
	"bytes"

	"github.com/gdiazlo/pg-sexp/format"
)

// Equal implements semantic equality: a fast byte-identity path, falling
// back to a recursive, symbol-table-independent comparison.
func (v Value) Equal(o Value) bool {
	return Equal(v.Root(), v.symbols, o.Root(), o.symbols)
}

// Equal compares two elements, each resolved against its own symbol table,
// recursively. Two semantically equal values compare equal even when their
// binary encodings differ: different symbol tables, short- vs. long-string
// encoding, small-int vs. integer encoding.
func Equal(a Elem, aSymbols []string, b Elem, bSymbols []string) bool {
	// Fast path: identical raw bytes under the same symbol table trivially
	// compare equal. This does not help across different symbol tables,
	// but extracted children frequently share the parent's table.
	if len(aSymbols) == len(bSymbols) && bytes.Equal(a.Raw, b.Raw) {
		sameTable := true
		for i := range aSymbols {
			if aSymbols[i] != bSymbols[i] {
				sameTable = false
				break
			}
		}
		if sameTable {
			return true
		}
	}

	return elemEqual(a, aSymbols, b, bSymbols)
}

func elemEqual(a Elem, aSymbols []string, b Elem, bSymbols []string) bool {
	if !sameSemanticKind(a.Kind, b.Kind) {
		return false
	}

	switch a.Kind {
	case format.KindNil:
		return true
	case format.KindInt:
		return a.Int() == b.Int()
	case format.KindFloat:
		return a.Float() == b.Float()
	case format.KindSymbol:
		at, aok := symbolTextAt(a, aSymbols)
		bt, bok := symbolTextAt(b, bSymbols)
		return aok && bok && at == bt
	case format.KindString:
		return bytes.Equal(a.StringBytes(), b.StringBytes())
	case format.KindList:
		na, nb := a.ListCount(), b.ListCount()
		if na != nb {
			return false
		}

		for i := 0; i < na; i++ {
			if !elemEqual(a.Child(i), aSymbols, b.Child(i), bSymbols) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// sameSemanticKind reports whether two kinds are the same semantic kind.
// format.Kind already unifies small-int and full-width integer encodings
// under format.KindInt, so this is a plain equality check; it exists as a
// named predicate so the intent reads clearly at call sites.
func sameSemanticKind(a, b format.Kind) bool {
	return a == b
}

func symbolTextAt(e Elem, symbols []string) (string, bool) {
	idx := e.SymbolIndex()
	if idx < 0 || idx >= len(symbols) {
		return "", false
	}

	return symbols[idx], true
}
