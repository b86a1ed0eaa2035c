package value

import (
	"testing"

	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/internal/varint"
	"github.com/stretchr/testify/assert"
)

func Test_Equal_SameBytes(t *testing.T) {
	a := New(nil, EncodeInt(5))
	b := New(nil, EncodeInt(5))

	assert.True(t, a.Equal(b))
}

func Test_Equal_DifferentSymbolTables(t *testing.T) {
	a := New([]string{"foo"}, EncodeSymbol(0))
	b := New([]string{"bar", "foo"}, EncodeSymbol(1))

	assert.True(t, a.Equal(b), "same symbol text at different table indices must still compare equal")
}

func Test_Equal_ShortVsLongStringEncoding(t *testing.T) {
	// Same 31-byte content, encoded once via the short-string tag (what
	// EncodeString picks for this length) and once forced into the
	// long-string tag, to prove the two wire shapes compare equal.
	content := make([]byte, 31)
	for i := range content {
 content[i] = byte('a' + i%26)
	}

	short := EncodeString(content)
	assert.Equal(t, format.TagShortString, short.Raw[0]&format.TagKindMask)

	longBuf := []byte{format.TagLongString}
	longBuf = varint.AppendUvarint(longBuf, uint64(len(content)))
	longBuf = append(longBuf, content...)
	long := Elem{Kind: format.KindString, Raw: longBuf}

	assert.True(t, New(nil, short).Equal(New(nil, long)))
}

func Test_Equal_SmallIntVsIntegerEncoding(t *testing.T) {
	// 15 and 16 straddle the small-int boundary: both must compare and hash
	// as the plain integers they are. 15 is also forced into the varint
	// integer tag to prove the two wire shapes compare and hash equal.
	a := New(nil, EncodeInt(15))
	b := New(nil, EncodeInt(16))

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(New(nil, EncodeInt(15))))

	wideBuf := varint.AppendVarint([]byte{format.TagInteger}, 15)
	wide := New(nil, Elem{Kind: format.KindInt, Raw: wideBuf})

	assert.True(t, a.Equal(wide))
	assert.Equal(t, a.Hash(), wide.Hash())
}

func Test_Equal_NegativeZero(t *testing.T) {
	pos := New(nil, EncodeFloat(0.0))
	neg := New(nil, EncodeFloat(-0.0))

	assert.True(t, pos.Equal(neg))
}

func Test_Equal_ListOrderSensitive(t *testing.T) {
	a := New(nil, EncodeList([]Elem{EncodeInt(1), EncodeInt(2)}, nil))
	b := New(nil, EncodeList([]Elem{EncodeInt(2), EncodeInt(1)}, nil))

	assert.False(t, a.Equal(b))
}

func Test_Equal_ListLengthMismatch(t *testing.T) {
	a := New(nil, EncodeList([]Elem{EncodeInt(1)}, nil))
	b := New(nil, EncodeList([]Elem{EncodeInt(1), EncodeInt(2)}, nil))

	assert.False(t, a.Equal(b))
}

func Test_Equal_DifferentKinds(t *testing.T) {
	a := New(nil, EncodeInt(1))
	b := New(nil, EncodeFloat(1))

	assert.False(t, a.Equal(b), "an integer and a float with the same magnitude are not semantically equal")
}
