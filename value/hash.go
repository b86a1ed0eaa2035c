package value

import (
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/internal/xhash"
)

// Hash returns the semantic hash of the value's root element. Two values
// with the same semantic content hash equal even when their binary
// encodings differ: different symbol tables, short- vs. long-string
// encoding, small-int vs. integer encoding.
func (v Value) Hash() int32 {
	return int32(hashElem(v.Root(), v.symbols))
}

// HashExtended mixes a 64-bit seed into the value's hash.
func (v Value) HashExtended(seed int64) int64 {
	return xhash.Extend(hashElem(v.Root(), v.symbols), seed)
}

// ElementHash is exported for use by the containment and index packages,
// which need the hash of arbitrary descendant elements, not just a Value's
// root.
func ElementHash(e Elem, symbols []string) uint32 {
	return hashElem(e, symbols)
}

func hashElem(e Elem, symbols []string) uint32 {
	switch e.Kind {
	case format.KindNil:
		return 0

	case format.KindInt:
		return xhash.Combine(xhash.HashTag(xhash.TagInt), xhash.HashI64(e.Int()))

	case format.KindFloat:
		return xhash.Combine(xhash.HashTag(xhash.TagFloat), xhash.HashFloat64(e.Float()))

	case format.KindSymbol:
		idx := e.SymbolIndex()
		var text string
		if idx >= 0 && idx < len(symbols) {
			text = symbols[idx]
		}

		return xhash.Combine(xhash.HashTag(xhash.TagSymbol), xhash.HashBytesString(text))

	case format.KindString:
		return xhash.Combine(xhash.HashTag(xhash.TagString), xhash.HashBytes(e.StringBytes()))

	case format.KindList:
		if e.IsLargeList() {
			// Fast path: the structural hash stored in the large-list
			// header IS this node's element hash, computed once at write
			// time.
			return e.StoredStructuralHash()
		}

		return hashList(listChildren(e), symbols)

	default:
		return 0
	}
}

// hashList folds a list's hash: seed with hash(count) XOR hash(LIST_TAG),
// then fold in each child's hash rotated by its position. Order-sensitive
// by construction.
func hashList(children []Elem, symbols []string) uint32 {
	acc := xhash.HashI64(int64(len(children))) ^ xhash.HashTag(xhash.TagList)

	for i, c := range children {
		childHash := hashElem(c, symbols)
		acc = xhash.Combine(acc, xhash.Rot32(childHash, uint(i%31)))
	}

	return acc
}

// listChildren decodes every child of a list element, in order. Only used
// for small lists (bounded by format.SmallListMax); large lists hash from
// their stored header and the builder passes its children to hashList
// directly.
func listChildren(e Elem) []Elem {
	n := e.ListCount()
	children := make([]Elem, n)
	for i := 0; i < n; i++ {
		children[i] = e.Child(i)
	}

	return children
}
