package value

import (
	"encoding/binary"
	"math"

	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/internal/varint"
)

// EncodeNil returns the one-byte NIL element.
func EncodeNil() Elem {
	return Elem{Kind: format.KindNil, Raw: []byte{format.TagNil}}
}

// EncodeInt encodes a signed 64-bit integer, using the compact small-int
// tag for the -16..15 range and the zig-zag varint form otherwise.
func EncodeInt(v int64) Elem {
	if v >= format.SmallIntMin && v <= format.SmallIntMax {
		tag := format.TagSmallIntBase | byte(v+format.SmallIntBias)
		return Elem{Kind: format.KindInt, Raw: []byte{tag}}
	}

	buf := []byte{format.TagInteger}
	buf = varint.AppendVarint(buf, v)

	return Elem{Kind: format.KindInt, Raw: buf}
}

// EncodeFloat encodes an IEEE-754 binary64, normalizing -0.0 to +0.0 so
// that the on-wire encoding of 0.0 and -0.0 is identical: they already
// compare and hash identically, this just avoids storing a distinguishable
// bit pattern for no benefit.
func EncodeFloat(f float64) Elem {
	if f == 0 {
		f = 0
	}

	buf := make([]byte, 9)
	buf[0] = format.TagFloat
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))

	return Elem{Kind: format.KindFloat, Raw: buf}
}

// EncodeSymbol encodes a reference to symbol table index idx. The caller
// is responsible for having interned the symbol's text first (typically
// via internal/symtab.Table.Intern) so idx is valid in the eventual
// container's symbol table.
func EncodeSymbol(idx int) Elem {
	buf := []byte{format.TagSymbolRef}
	buf = varint.AppendUvarint(buf, uint64(idx))

	return Elem{Kind: format.KindSymbol, Raw: buf}
}

// EncodeString encodes a byte string, using the inline short-string tag
// for lengths 0..31 and the length-prefixed long-string tag otherwise:
// length 31 is short, 32 is long, and the two forms must hash and compare
// equal for borderline lengths via the shared StringBytes accessor.
func EncodeString(s []byte) Elem {
	if len(s) <= format.ShortStringMaxLen {
		buf := make([]byte, 0, 1+len(s))
		buf = append(buf, format.TagShortString|byte(len(s)))
		buf = append(buf, s...)

		return Elem{Kind: format.KindString, Raw: buf}
	}

	buf := []byte{format.TagLongString}
	buf = varint.AppendUvarint(buf, uint64(len(s)))
	buf = append(buf, s...)

	return Elem{Kind: format.KindString, Raw: buf}
}

// EncodeList assembles a list element from already-encoded children,
// choosing the small inline shape for 1..format.SmallListMax children and
// the large SEntry-table shape otherwise. symbols is the owning value's
// symbol table, needed to compute the structural hash stored in the
// large-list header.
//
// An empty children slice yields NIL (the EncodeNil element), since a
// zero-element list is NIL.
func EncodeList(children []Elem, symbols []string) Elem {
	if len(children) == 0 {
		return EncodeNil()
	}

	if len(children) <= format.SmallListMax {
		raws := make([][]byte, len(children))
		for i, c := range children {
			raws[i] = c.Raw
		}

		return Elem{Kind: format.KindList, Raw: encodeSmallListRaw(raws)}
	}

	h := hashList(children, symbols)

	return Elem{Kind: format.KindList, Raw: encodeLargeListRaw(children, h)}
}

// Build assembles the full binary container: version, symbol table, and
// root element.
func Build(symbols []string, root Elem) []byte {
	buf := []byte{format.FormatVersion}
	buf = varint.AppendUvarint(buf, uint64(len(symbols)))

	for _, s := range symbols {
		buf = varint.AppendUvarint(buf, uint64(len(s)))
		buf = append(buf, s...)
	}

	buf = append(buf, root.Raw...)

	return buf
}

// New wraps an already-assembled root element and symbol table into a
// Value without a redundant Decode pass, used internally by the parser
// (which has already validated every element it produced) and by car/cdr
// construction helpers.
func New(symbols []string, root Elem) Value {
	data := Build(symbols, root)
	rootOff := len(data) - len(root.Raw)

	return Value{data: data, rootOff: rootOff, symbols: symbols}
}
