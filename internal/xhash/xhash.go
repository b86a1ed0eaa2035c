// Package xhash provides the stable hash primitives the sexp codec needs:
// a 32-bit byte/integer/float hash, a fixed avalanche combiner, 32-bit
// rotation, and the Bloom bit-position derivation used by containment and
// the inverted-index extractor.
//
// The base byte hash is built on xxHash64 (github.com/cespare/xxhash/v2),
// the same stable, cross-process, cross-release hash the teacher package
// uses for its metric-ID hashing (internal/hash.ID in arloliu/mebo). A
// 64-to-32 bit XOR-fold keeps the algorithm's avalanche properties while
// producing the 32-bit output this codec's hash operation requires.
package xhash

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// HashBytes computes a stable 32-bit hash of data. Two equal byte slices
// always hash equal, regardless of process or release.
func HashBytes(data []byte) uint32 {
	return fold64to32(xxhash.Sum64(data))
}

// HashBytesString is HashBytes for a string, avoiding a conversion-induced
// allocation.
func HashBytesString(s string) uint32 {
	return fold64to32(xxhash.Sum64String(s))
}

func fold64to32(h uint64) uint32 {
	return uint32(h) ^ uint32(h>>32)
}

// HashI64 hashes a canonical signed 64-bit integer value. Small-int and
// full-width integer encodings of the same value must hash identically, so
// callers always pass the decoded int64, never the raw encoded bytes.
func HashI64(v int64) uint32 {
	var b [8]byte
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}

	return HashBytes(b[:])
}

// NormalizeFloat normalizes -0.0 to +0.0 so that equality and hashing
// treat them identically.
func NormalizeFloat(f float64) float64 {
	if f == 0 {
		return 0
	}

	return f
}

// HashFloat64 hashes a float64 value after -0.0 normalization.
func HashFloat64(f float64) uint32 {
	bits := math.Float64bits(NormalizeFloat(f))
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(bits >> (8 * i))
	}

	return HashBytes(b[:])
}

// Type tags mixed into Combine for each atom kind, matching the kinds in
// format.Kind. Declared locally (rather than importing format) to keep
// this package dependency-free and usable from the lowest layers of the
// codec.
const (
	TagNil    = 0
	TagInt    = 1
	TagFloat  = 2
	TagSymbol = 3
	TagString = 4
	TagList   = 5
)

// Combine mixes an accumulator with a new value using a fixed avalanche
// mixer.
func Combine(a, b uint32) uint32 {
	return a ^ (b + 0x9e3779b9 + (a << 6) + (a >> 2))
}

// Rot32 left-rotates x by r bits (r is taken mod 32).
func Rot32(x uint32, r uint) uint32 {
	r &= 31
	return (x << r) | (x >> (32 - r))
}

// HashTag returns the type-tag contribution mixed into an atom's hash.
func HashTag(tag uint32) uint32 {
	return Combine(0, tag)
}

// Extend mixes a 64-bit seed into a base hash to compute the extended
// hash used by the host adapter's hash_extended operation.
func Extend(base uint32, seed int64) int64 {
	s := uint64(seed)
	mixed := Combine(base, uint32(s))
	mixed = Combine(mixed, uint32(s>>32))

	return int64(uint64(mixed) | (uint64(base) << 32))
}

// BloomBits returns the BloomK bit positions (each 0..63) that an
// element-hash contributes to a 64-bit Bloom signature, derived via
// successive rotations.
func BloomBits(elementHash uint32, k int) []uint {
	bits := make([]uint, k)
	for i := 0; i < k; i++ {
		r := Rot32(elementHash, uint(i*8+1))
		bits[i] = uint(r) % 64
	}

	return bits
}

// BloomInsert sets the BloomK bits derived from elementHash into sig.
func BloomInsert(sig uint64, elementHash uint32, k int) uint64 {
	for _, bit := range BloomBits(elementHash, k) {
		sig |= uint64(1) << bit
	}

	return sig
}
