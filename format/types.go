// Package format defines the wire-level constants shared by every layer of
// the sexp codec: element kind tags, tunable limits, the inverted-index
// strategy codes, and the compression codec identifiers used by the host
// adapter's wire passthrough.
package format

// Kind identifies the semantic category of a stored element. It is the
// 3-bit type code of a large list's SEntry table. An element's tag byte
// uses its own, finer 3-bit numbering (see the Tag* constants: small-int
// and integer, short and long string are separate tags) that maps onto a
// Kind when the element is parsed.
type Kind uint8

const (
	KindNil    Kind = 0
	KindInt    Kind = 1 // small-int and full-width integer share this kind
	KindFloat  Kind = 2
	KindSymbol Kind = 3
	KindString Kind = 4
	KindList   Kind = 5
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindSymbol:
		return "symbol"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Strategy selects which inverted-index key-extraction rules apply to a
// query value, mirroring the operator-class strategy numbers a host
// exposes to its SQL layer.
type Strategy uint8

const (
	StrategyStructural  Strategy = 7 // container structurally contains needle, exact sublist
	StrategyContainedBy Strategy = 8 // needle contains container, no pre-filtering
	StrategyKeyBased    Strategy = 9 // key-based containment: list heads are keys
)

func (s Strategy) String() string {
	switch s {
	case StrategyStructural:
		return "structural"
	case StrategyContainedBy:
		return "contained_by"
	case StrategyKeyBased:
		return "key_based"
	default:
		return "unknown"
	}
}

// Tunable constants. These are compile-time constants rather than
// environment variables: the component has no configuration surface of
// its own beyond what a caller passes explicitly to a builder or parser
// option.
const (
	// FormatVersion is written into every encoded value's header. Readers
	// reject any value whose stored version exceeds this.
	FormatVersion uint8 = 6

	// SmallListMax is the largest child count stored inline using the
	// small-list element shape; lists with more children use the
	// large-list shape with an explicit SEntry offset table.
	SmallListMax = 4

	// SmallSymtabSize bounds the symbol-table size below which a read
	// cursor may use a stack-resident view instead of a heap slice.
	SmallSymtabSize = 16

	// MaxDepth bounds nesting depth accepted by the text parser.
	MaxDepth = 1000

	// MaxSymbols bounds the number of interned symbols in one value.
	MaxSymbols = 65536

	// MaxKeys bounds the number of keys the inverted-index extractor
	// emits for a single value; extraction truncates beyond this.
	MaxKeys = 2048

	// BloomK is the number of bit positions each element contributes to
	// a Bloom signature.
	BloomK = 4
)

// Tag bit layout: top 3 bits select the kind, bottom 5 bits are payload.
const (
	TagKindMask = 0b1110_0000
	TagPayload  = 0b0001_1111

	TagNil          = uint8(0b000_00000)
	TagSmallIntBase = uint8(0b001_00000) // biased value OR'd into payload
	TagInteger      = uint8(0b010_00000)
	TagFloat        = uint8(0b011_00000)
	TagSymbolRef    = uint8(0b100_00000)
	TagShortString  = uint8(0b101_00000) // payload = length 0..31
	TagLongString   = uint8(0b110_00000)
	TagList         = uint8(0b111_00000) // payload = count 1..SmallListMax, 0 = large

	// SmallIntBias biases the -16..15 range to 0..31 for the 5-bit payload.
	SmallIntBias = 16
	SmallIntMin  = -16
	SmallIntMax  = 15

	ShortStringMaxLen = 31
)

// SEntry type codes packed into the top 3 bits of a large list's per-child
// entry; the bottom 28 bits are a byte offset into the element-data region.
const (
	SEntryNil    = uint32(KindNil)
	SEntryInt    = uint32(KindInt)
	SEntryFloat  = uint32(KindFloat)
	SEntrySymbol = uint32(KindSymbol)
	SEntryString = uint32(KindString)
	SEntryList   = uint32(KindList)

	SEntryTypeShift  = 28
	SEntryOffsetMask = (1 << SEntryTypeShift) - 1
	MaxEntryOffset   = SEntryOffsetMask
)

// CompressionType selects the wire-level compression codec used by the
// host adapter's optional send/recv passthrough; it is unrelated to the
// container's own layout, which this component never compresses itself
// (that is the host's own toasting/storage concern).
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionLZ4  CompressionType = 0x3
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
