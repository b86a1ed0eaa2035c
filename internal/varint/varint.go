// Package varint implements the LEB128-style variable-length integer codec
// used throughout the sexp binary layout: length prefixes, symbol-table
// indices, and payload sizes all use unsigned varints; signed 64-bit
// integers are zig-zagged first.
//
// Encoding is seven payload bits per byte, continuation bit in the high
// bit, least-significant group first. Decode rejects a running shift of 64
// or more bits as an overflow and treats a truncated input as data
// corruption.
package varint

import "github.com/gdiazlo/pg-sexp/errs"

// MaxLen is the longest a varint-encoded uint64 can be (ceil(64/7)).
const MaxLen = 10

// AppendUvarint appends the varint encoding of v to buf and returns the
// extended slice.
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}

	return append(buf, byte(v))
}

// AppendVarint zig-zags n and appends its varint encoding to buf.
func AppendVarint(buf []byte, n int64) []byte {
	return AppendUvarint(buf, ZigZagEncode(n))
}

// ZigZagEncode maps a signed integer to an unsigned one so that
// small-magnitude values (positive or negative) encode to small varints.
func ZigZagEncode(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// Uvarint decodes an unsigned varint from the start of buf, returning the
// value and the number of bytes consumed. It returns (0, 0) if buf does not
// hold a complete, valid varint: callers must treat that as data
// corruption (a truncated or overflowing varint).
//
// The single-byte fast path for values 0-127 is checked first since it is
// the overwhelmingly common case for symbol indices and small lengths.
func Uvarint(buf []byte) (uint64, int) {
	if len(buf) > 0 && buf[0] < 0x80 {
		return uint64(buf[0]), 1
	}

	var x uint64
	var s uint
	for i, b := range buf {
		if b < 0x80 {
			if i >= MaxLen-1 && b > 1 {
				return 0, 0 // overflow: would need a 65th+ bit
			}

			return x | uint64(b)<<s, i + 1
		}

		x |= uint64(b&0x7f) << s
		s += 7
		if s >= 64 {
			return 0, 0
		}
	}

	return 0, 0 // truncated
}

// Varint decodes a zig-zagged signed varint, returning the value and the
// number of bytes consumed (0 on truncation/overflow).
func Varint(buf []byte) (int64, int) {
	u, n := Uvarint(buf)
	if n == 0 {
		return 0, 0
	}

	return ZigZagDecode(u), n
}

// ReadUvarint decodes a varint from buf and classifies a malformed input as
// errs.ErrTruncated or errs.ErrVarintOverflow, distinguishing the two by
// the length of buf: a malformed varint in a buffer of at least MaxLen
// bytes ran past 64 bits (overflow); in a shorter buffer it ended early
// (truncated).
func ReadUvarint(buf []byte) (uint64, int, error) {
	v, n := Uvarint(buf)
	if n == 0 {
		if len(buf) >= MaxLen {
			return 0, 0, errs.ErrVarintOverflow
		}

		return 0, 0, errs.ErrTruncated
	}

	return v, n, nil
}

// ReadVarint is the signed counterpart of ReadUvarint.
func ReadVarint(buf []byte) (int64, int, error) {
	u, n, err := ReadUvarint(buf)
	if err != nil {
		return 0, 0, err
	}

	return ZigZagDecode(u), n, nil
}

// Len returns the number of bytes AppendUvarint would produce for v.
func Len(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
