// Package value implements the binary sexp container: a self-describing,
// versioned layout with a per-value symbol table, tag-packed atoms, two
// list shapes, and the car/cdr/nth/length/type/equality/hash primitives
// that read it.
//
// Architecturally this plays the role of the teacher's section (on-disk
// layout) and blob (Value wrapper + operations) packages combined: Elem is
// the zero-copy read cursor (arloliu/mebo's section.NumericHeader /
// section.NumericIndexEntry bit-packing style adapted to a tagged-variant
// element instead of a fixed-width columnar header), and Value is the
// thin, ergonomic wrapper comparable to mebo's blob.NumericBlob.
package value

import (
	"encoding/binary"

	"github.com/gdiazlo/pg-sexp/errs"
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/internal/pool"
	"github.com/gdiazlo/pg-sexp/internal/varint"
)

// Value is an immutable, decoded view over one encoded sexp container. It
// borrows its backing bytes (no copy on Decode); callers that need to
// retain a Value beyond the lifetime of the byte slice they decoded from
// must copy the bytes themselves first.
type Value struct {
	data    []byte   // version + symbol_count + symbols + root element, verbatim
	rootOff int      // offset into data where the root element begins
	symbols []string // decoded symbol table, index-aligned with the wire encoding
}

// nilBytes is the canonical one-byte encoding of NIL with an empty symbol
// table: version, symbol_count=0, tag=0x00.
var nilBytes = []byte{format.FormatVersion, 0x00, byte(format.TagNil)}

// nilSingleton is the process-wide NIL value: a read-only, process-long
// allocation initialized with the package, the one piece of shared state
// this package keeps.
var nilSingleton = Value{data: nilBytes, rootOff: 2, symbols: nil}

// NIL returns the shared NIL value.
func NIL() Value {
	return nilSingleton
}

// Decode validates and wraps a binary sexp container. It rejects a version
// newer than format.FormatVersion, a truncated or overflowing symbol-table
// length, and a malformed root element; all such failures are data
// corruption and are fatal to the decoding operation.
func Decode(data []byte) (Value, error) {
	if len(data) < 2 {
		return Value{}, errs.ErrTruncated
	}

	version := data[0]
	if version > format.FormatVersion {
		return Value{}, errs.ErrUnsupportedVersion
	}

	count, n, err := varint.ReadUvarint(data[1:])
	if err != nil {
		return Value{}, err
	}
	if count > format.MaxSymbols {
		return Value{}, errs.ErrTooManySymbols
	}

	off := 1 + n
	symbols := make([]string, 0, count)
	seen := make(map[string]struct{}, count)

	for i := uint64(0); i < count; i++ {
		l, ln, err := varint.ReadUvarint(data[off:])
		if err != nil {
			return Value{}, err
		}
		off += ln

		if uint64(len(data)-off) < l {
			return Value{}, errs.ErrTruncated
		}

		sym := string(data[off : off+int(l)])
		off += int(l)

		if _, dup := seen[sym]; dup {
			return Value{}, errs.ErrDuplicateSymbol
		}
		seen[sym] = struct{}{}

		symbols = append(symbols, sym)
	}

	if off >= len(data) {
		return Value{}, errs.ErrTruncated
	}

	_, rootLen, err := ParseElem(data[off:])
	if err != nil {
		return Value{}, err
	}

	if off+rootLen != len(data) {
		// Trailing bytes after the root element are corruption: the
		// container must be exactly [header][symbols][root].
		return Value{}, errs.ErrInconsistentLength
	}

	return Value{data: data, rootOff: off, symbols: symbols}, nil
}

// Bytes returns the exact wire bytes of this value.
func (v Value) Bytes() []byte {
	return v.data
}

// Symbols returns the decoded, index-aligned symbol table.
func (v Value) Symbols() []string {
	return v.symbols
}

// Root returns the decoded root element.
func (v Value) Root() Elem {
	e, _, err := ParseElem(v.data[v.rootOff:])
	if err != nil {
		// Decode already validated the root once; a second parse failing
		// here means the Value was constructed incorrectly by this
		// package itself, an internal invariant violation.
		panic(err)
	}

	return e
}

// symbolText resolves a decoded symbol index to its text. An out-of-range
// index is data corruption: the writer promised every symbol-ref indexes
// an entry that exists.
func (v Value) symbolText(idx int) (string, error) {
	if idx < 0 || idx >= len(v.symbols) {
		return "", errs.ErrUnknownSymbolRef
	}

	return v.symbols[idx], nil
}

// child builds a standalone Value for one of the root element's children.
// The parent's header (version + full symbol table) is reused verbatim and
// only the child's own bytes are appended; the child's symbol references
// stay valid because they index into the inherited (superset) table.
func (v Value) child(e Elem) Value {
	header := v.data[:v.rootOff]

	scratch := pool.GetValueBuffer()
	defer pool.PutValueBuffer(scratch)

	scratch.Append(header)
	scratch.Append(e.Raw)

	// The Value returned must own its bytes independent of the pool, so
	// copy out before scratch goes back for reuse.
	buf := make([]byte, scratch.Len())
	copy(buf, scratch.Bytes())

	return Value{data: buf, rootOff: len(header), symbols: v.symbols}
}

// encodeSmallListRaw rebuilds a small-list element's raw bytes from
// already-encoded children, recomputing the payload_size prefix. Used by
// Cdr when the result itself is small.
func encodeSmallListRaw(children [][]byte) []byte {
	var payload []byte
	for _, c := range children {
		payload = append(payload, c...)
	}

	buf := []byte{format.TagList | byte(len(children))}
	buf = varint.AppendUvarint(buf, uint64(len(payload)))
	buf = append(buf, payload...)

	return buf
}

// encodeLargeListRaw rebuilds a large-list element's raw bytes from
// already-encoded children, recomputing the SEntry offset table and
// structural hash.
func encodeLargeListRaw(children []Elem, structHash uint32) []byte {
	n := len(children)
	buf := make([]byte, 0, 9+n*4+64)
	buf = append(buf, format.TagList)

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(n))
	buf = append(buf, countBuf[:]...)

	var hashBuf [4]byte
	binary.LittleEndian.PutUint32(hashBuf[:], structHash)
	buf = append(buf, hashBuf[:]...)

	offsets := make([]int, n)
	off := 0
	for i, c := range children {
		offsets[i] = off
		off += len(c.Raw)
	}

	for i, c := range children {
		entry := (uint32(sentryKind(c.Kind)) << format.SEntryTypeShift) | (uint32(offsets[i]) & format.SEntryOffsetMask)
		var eb [4]byte
		binary.LittleEndian.PutUint32(eb[:], entry)
		buf = append(buf, eb[:]...)
	}

	for _, c := range children {
		buf = append(buf, c.Raw...)
	}

	return buf
}

func sentryKind(k format.Kind) uint32 {
	return uint32(k)
}
