package value

import (
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/internal/xhash"
)

// BloomSignature computes the 64-bit Bloom signature of the value's root
// element. It is never stored in the wire format; containment and
// index-key extraction recompute it on demand.
func (v Value) BloomSignature() uint64 {
	return BloomSig(v.Root(), v.symbols)
}

// BloomSig computes the Bloom signature of an arbitrary element: every
// element (atom or list) contributes format.BloomK bit positions derived
// from its own element hash, and a list's signature additionally unions in
// every descendant's signature.
func BloomSig(e Elem, symbols []string) uint64 {
	h := hashElem(e, symbols)
	sig := xhash.BloomInsert(0, h, format.BloomK)

	if e.Kind == format.KindList {
		n := e.ListCount()
		for i := 0; i < n; i++ {
			sig |= BloomSig(e.Child(i), symbols)
		}
	}

	return sig
}

// BloomReject reports whether needle cannot possibly be contained in
// container, purely from their Bloom signatures: if any bit set in the
// needle's signature is clear in the container's, containment is
// impossible.
func BloomReject(containerSig, needleSig uint64) bool {
	return needleSig & ^containerSig != 0
}
