// Package index implements the inverted-index adapter: integer key
// extraction for stored values and queries, and the consistent/
// triconsistent predicates a GIN-style index probe uses to decide whether
// a posting is a candidate without running a full containment recheck.
package index

import (
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/internal/xhash"
	"github.com/gdiazlo/pg-sexp/value"
)

// Key-extraction tag values mixed into a key's hash, distinct from
// format.Kind's atom tags (0..5) which double as the per-atom kind_tag.
const (
	pairTag     = uint32(20)
	listHeadTag = uint32(21)
)

// topBit is forced on into every emitted key so a key can never equal
// the dedup hash set's empty-slot sentinel (0).
const topBit = uint32(1) << 31

// ExtractValueKeys extracts the deduplicated, MAX_KEYS-truncated set of
// integer keys for a stored value: atom keys, pair keys for 2-element
// symbol-headed lists, list-head keys for lists of 3+ children.
func ExtractValueKeys(v value.Value) []uint32 {
	keys := newKeySet(format.MaxKeys)
	extract(v.Root(), v.Symbols(), true, keys)

	return keys.Keys()
}

// ExtractQueryKeys extracts the key set for a query value under the
// given strategy. StrategyContainedBy is not amenable to pre-filtering
// and returns nil, signaling "request a full index scan" to the caller.
func ExtractQueryKeys(q value.Value, strategy format.Strategy) []uint32 {
	if strategy == format.StrategyContainedBy {
		return nil
	}

	includePair := strategy == format.StrategyStructural

	keys := newKeySet(format.MaxKeys)
	extract(q.Root(), q.Symbols(), includePair, keys)

	return keys.Keys()
}

func extract(e value.Elem, symbols []string, includePair bool, keys *keySet) {
	if keys.Truncated() {
		return
	}

	if e.Kind != format.KindList {
		h := value.ElementHash(e, symbols)
		keys.Add(atomKey(e.Kind, h))

		return
	}

	n := e.ListCount()

	switch {
	case n == 2 && e.ChildSEntryKind(0) == format.KindSymbol:
		if includePair {
			h0 := value.ElementHash(e.Child(0), symbols)
			h1 := value.ElementHash(e.Child(1), symbols)
			keys.Add(pairKey(h0, h1))
		}

	case n >= 3:
		h0 := value.ElementHash(e.Child(0), symbols)
		keys.Add(listHeadKey(h0))
	}

	for i := 0; i < n; i++ {
		extract(e.Child(i), symbols, includePair, keys)
	}
}

func atomKey(kind format.Kind, contentHash uint32) uint32 {
	return forceTopBit(xhash.Combine(uint32(kind), contentHash))
}

func pairKey(headHash, secondHash uint32) uint32 {
	return forceTopBit(xhash.Combine(pairTag, xhash.Combine(headHash, secondHash)))
}

func listHeadKey(firstHash uint32) uint32 {
	return forceTopBit(xhash.Combine(listHeadTag, firstHash))
}

func forceTopBit(v uint32) uint32 {
	return v | topBit
}

// Check is the tri-valued per-key state a posting probe reports back to
// Consistent/Triconsistent for one query key: definitively absent,
// definitively present, or "maybe" (a lossily-stored or undecomposed key
// whose presence cannot be ruled in or out from the posting alone).
type Check uint8

const (
	CheckFalse Check = iota
	CheckTrue
	CheckMaybe
)

// Consistent implements the consistent predicate: given the tri-valued
// state of each of a query's extracted keys against one posting (check,
// index-aligned with the query key slice ExtractQueryKeys returned),
// report whether the posting is a candidate and whether a recheck is
// required. Containment strategies require that no query key be
// definitively absent; StrategyContainedBy disabled pre-filtering at
// extraction time, so every posting is a candidate there too. A recheck
// is always required of a candidate: key presence alone never proves
// structural location, and hash collisions are possible (spec.md §4.8).
func Consistent(strategy format.Strategy, check []Check) (matches, recheckRequired bool) {
	if strategy == format.StrategyContainedBy {
		return true, true
	}

	for _, c := range check {
		if c == CheckFalse {
			return false, false
		}
	}

	return true, true
}

// Tristate is the three-valued result of Triconsistent.
type Tristate uint8

const (
	TriFalse Tristate = iota
	TriTrue
	TriMaybe
)

// Triconsistent implements the triconsistent predicate: any query key
// reported definitively absent concludes false without a recheck; with
// every key definitively present (no "maybe") and a single-atom query,
// the atom's presence is necessary and sufficient and concludes true
// without a recheck (up to hash collision, which is accepted); any other
// case — including any "maybe" key — defers to a mandatory recheck.
func Triconsistent(strategy format.Strategy, query value.Value, check []Check) Tristate {
	if strategy == format.StrategyContainedBy {
		return TriMaybe
	}

	allDefinitivelyPresent := true
	for _, c := range check {
		if c == CheckFalse {
			return TriFalse
		}
		if c == CheckMaybe {
			allDefinitivelyPresent = false
		}
	}

	if allDefinitivelyPresent && query.IsAtom() {
		return TriTrue
	}

	return TriMaybe
}
