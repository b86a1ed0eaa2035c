package value

import (
	"encoding/binary"
	"math"

	"github.com/gdiazlo/pg-sexp/errs"
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/internal/varint"
)

// Elem is a decoded view over one element's raw bytes: a zero-copy handle
// that knows its kind and total length but defers decoding scalar payloads
// until a caller asks for them. Bounds are checked once, centrally, in
// ParseElem, and every other operation works off the validated Raw slice.
type Elem struct {
	Kind format.Kind
	Raw  []byte // exactly len(Raw) bytes: the tag byte plus payload
}

// ParseElem validates and returns the element at the start of b, along
// with its total byte length. It does not descend into list children
// beyond what is needed to compute the total length (the large-list case
// uses the last SEntry offset rather than walking every child).
func ParseElem(b []byte) (Elem, int, error) {
	if len(b) == 0 {
		return Elem{}, 0, errs.ErrTruncated
	}

	tag := b[0]
	switch tag & format.TagKindMask {
	case format.TagNil:
		return Elem{Kind: format.KindNil, Raw: b[:1]}, 1, nil

	case format.TagSmallIntBase:
		return Elem{Kind: format.KindInt, Raw: b[:1]}, 1, nil

	case format.TagInteger:
		_, n, err := varint.ReadVarint(b[1:])
		if err != nil {
			return Elem{}, 0, err
		}
		total := 1 + n
		return Elem{Kind: format.KindInt, Raw: b[:total]}, total, nil

	case format.TagFloat:
		if len(b) < 9 {
			return Elem{}, 0, errs.ErrTruncated
		}
		return Elem{Kind: format.KindFloat, Raw: b[:9]}, 9, nil

	case format.TagSymbolRef:
		_, n, err := varint.ReadUvarint(b[1:])
		if err != nil {
			return Elem{}, 0, err
		}
		total := 1 + n
		return Elem{Kind: format.KindSymbol, Raw: b[:total]}, total, nil

	case format.TagShortString:
		l := int(tag & format.TagPayload)
		total := 1 + l
		if len(b) < total {
			return Elem{}, 0, errs.ErrTruncated
		}
		return Elem{Kind: format.KindString, Raw: b[:total]}, total, nil

	case format.TagLongString:
		l, n, err := varint.ReadUvarint(b[1:])
		if err != nil {
			return Elem{}, 0, err
		}
		total := 1 + n + int(l)
		if len(b) < total || total < 0 {
			return Elem{}, 0, errs.ErrTruncated
		}
		return Elem{Kind: format.KindString, Raw: b[:total]}, total, nil

	case format.TagList:
		return parseListElem(b, tag)

	default:
		return Elem{}, 0, errs.ErrUnknownTag
	}
}

func parseListElem(b []byte, tag byte) (Elem, int, error) {
	count := int(tag & format.TagPayload)
	if count != 0 {
		// Small list: [tag|count][payload_size:varint][elements...]
		payloadSize, n, err := varint.ReadUvarint(b[1:])
		if err != nil {
			return Elem{}, 0, err
		}
		total := 1 + n + int(payloadSize)
		if len(b) < total {
			return Elem{}, 0, errs.ErrTruncated
		}
		return Elem{Kind: format.KindList, Raw: b[:total]}, total, nil
	}

	// Large list: [tag|0][count:u32][structural_hash:u32][entries:u32*count][elements...]
	const largeHeaderFixed = 1 + 4 + 4
	if len(b) < largeHeaderFixed {
		return Elem{}, 0, errs.ErrTruncated
	}

	n := binary.LittleEndian.Uint32(b[1:5])
	if n == 0 {
		return Elem{}, 0, errs.ErrInconsistentLength
	}

	entriesLen := int(n) * 4
	headerLen := largeHeaderFixed + entriesLen
	if headerLen < 0 || len(b) < headerLen {
		return Elem{}, 0, errs.ErrTruncated
	}

	lastEntry := binary.LittleEndian.Uint32(b[largeHeaderFixed+entriesLen-4 : largeHeaderFixed+entriesLen])
	lastOffset := int(lastEntry & format.SEntryOffsetMask)
	childStart := headerLen + lastOffset
	if childStart < 0 || childStart > len(b) {
		return Elem{}, 0, errs.ErrOffsetOutOfBounds
	}

	_, lastLen, err := ParseElem(b[childStart:])
	if err != nil {
		return Elem{}, 0, err
	}

	total := childStart + lastLen
	if len(b) < total {
		return Elem{}, 0, errs.ErrTruncated
	}

	return Elem{Kind: format.KindList, Raw: b[:total]}, total, nil
}

// Int decodes an integer-kind element (small-int or full integer; callers
// never need to distinguish the two).
func (e Elem) Int() int64 {
	tag := e.Raw[0]
	if tag&format.TagKindMask == format.TagSmallIntBase {
		return int64(tag&format.TagPayload) - format.SmallIntBias
	}

	v, _ := varint.Varint(e.Raw[1:])
	return v
}

// Float decodes a float-kind element, normalizing -0.0 to +0.0.
func (e Elem) Float() float64 {
	bits := binary.LittleEndian.Uint64(e.Raw[1:9])
	f := math.Float64frombits(bits)
	if f == 0 {
		return 0
	}

	return f
}

// SymbolIndex decodes a symbol-ref element's index into the owning Value's
// symbol table.
func (e Elem) SymbolIndex() int {
	v, _ := varint.Uvarint(e.Raw[1:])
	return int(v)
}

// StringBytes returns a short- or long-string element's raw content bytes.
func (e Elem) StringBytes() []byte {
	tag := e.Raw[0]
	if tag&format.TagKindMask == format.TagShortString {
		return e.Raw[1:]
	}

	_, n := varint.Uvarint(e.Raw[1:])
	return e.Raw[1+n:]
}

// IsLargeList reports whether a list element uses the large (SEntry-table)
// format rather than the small inline format.
func (e Elem) IsLargeList() bool {
	return e.Raw[0]&format.TagPayload == 0
}

// ListCount returns the number of children of a list element.
func (e Elem) ListCount() int {
	tag := e.Raw[0]
	if !e.IsLargeList() {
		return int(tag & format.TagPayload)
	}

	return int(binary.LittleEndian.Uint32(e.Raw[1:5]))
}

// StoredStructuralHash returns the structural hash embedded in a large
// list's header. Only valid when IsLargeList is true.
func (e Elem) StoredStructuralHash() uint32 {
	return binary.LittleEndian.Uint32(e.Raw[5:9])
}

func (e Elem) largeEntry(i int) uint32 {
	const largeHeaderFixed = 1 + 4 + 4
	off := largeHeaderFixed + i*4
	return binary.LittleEndian.Uint32(e.Raw[off : off+4])
}

// listDataOffset returns the offset (within e.Raw) where the element-data
// region begins: right after the payload-size varint (small list) or the
// SEntry table (large list).
func (e Elem) listDataOffset() int {
	if !e.IsLargeList() {
		_, n := varint.Uvarint(e.Raw[1:])
		return 1 + n
	}

	count := e.ListCount()
	return 1 + 4 + 4 + count*4
}

// Child returns the i-th child of a list element (0-based). Out-of-range i
// is a programmer error (callers must check against ListCount first); Nth
// handles the public out-of-range-returns-absent contract.
func (e Elem) Child(i int) Elem {
	dataOff := e.listDataOffset()

	if e.IsLargeList() {
		entry := e.largeEntry(i)
		off := int(entry & format.SEntryOffsetMask)
		child, _, err := ParseElem(e.Raw[dataOff+off:])
		if err != nil {
			panic(err) // bounds already validated by ParseElem of the list itself
		}

		return child
	}

	// Small list: O(i) scan, bounded by SmallListMax.
	cur := e.Raw[dataOff:]
	for j := 0; j < i; j++ {
		_, n, err := ParseElem(cur)
		if err != nil {
			panic(err)
		}
		cur = cur[n:]
	}

	child, _, err := ParseElem(cur)
	if err != nil {
		panic(err)
	}

	return child
}

// ChildSEntryKind returns the type code of the i-th child of a large list
// without decoding the child, used by containment's type-filtered descent
// to skip children that cannot possibly match. For small lists it falls
// back to decoding the child's tag byte, which is equally O(1).
func (e Elem) ChildSEntryKind(i int) format.Kind {
	if e.IsLargeList() {
		entry := e.largeEntry(i)
		return format.Kind(entry >> format.SEntryTypeShift)
	}

	return e.Child(i).Kind
}
