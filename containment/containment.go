// Package containment implements structural containment and key-based
// containment over decoded values: a Bloom-reject fast path followed by a
// type-filtered recursive scan, using value.Elem's SEntry access so
// large-list descent stays O(1) per visited child.
package containment

import (
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/value"
)

// Structural reports whether container contains needle as an exact
// subtree: an atom needle must equal some descendant atom, a list needle
// must pairwise-equal some descendant list of the same length.
func Structural(container, needle value.Value) bool {
	if value.BloomReject(container.BloomSignature(), needle.BloomSignature()) {
		return false
	}

	return structuralScan(container.Root(), container.Symbols(), needle.Root(), needle.Symbols())
}

func structuralScan(node value.Elem, nodeSyms []string, needle value.Elem, needleSyms []string) bool {
	if node.Kind == needle.Kind && value.Equal(node, nodeSyms, needle, needleSyms) {
		return true
	}

	if node.Kind != format.KindList {
		return false
	}

	n := node.ListCount()
	for i := 0; i < n; i++ {
		childKind := node.ChildSEntryKind(i)
		if childKind != needle.Kind && childKind != format.KindList {
			continue
		}

		if structuralScan(node.Child(i), nodeSyms, needle, needleSyms) {
			return true
		}
	}

	return false
}

// KeyBased reports whether container contains needle treating list heads
// as keys, order-insensitive among the tail: an atom needle behaves as in
// Structural; a list needle (h n1..nk) matches a descendant list (h
// c1..cm) when the heads are equal (full structural equality, recursively)
// and every needle tail element finds a distinct, as-yet-unconsumed
// container tail element that key-based-contains it.
// KeyBased does not apply the Bloom-reject fast path Structural uses: that
// shortcut is only sound when the needle appears verbatim as a subtree, so
// every needle hash (including each list node's own element-hash) is
// guaranteed present in the container's Bloom signature. Under key-based
// matching a needle list is satisfied by relaxation (same head, tail
// elements matched pairwise-and-unordered), not by identity, so a needle
// list node's own hash need not appear anywhere in the container even when
// the container does contain it — Bloom-rejecting here would reject true
// matches.
func KeyBased(container, needle value.Value) bool {
	return keyBasedScan(container.Root(), container.Symbols(), needle.Root(), needle.Symbols())
}

func keyBasedScan(node value.Elem, nodeSyms []string, needle value.Elem, needleSyms []string) bool {
	if keyBasedMatches(node, nodeSyms, needle, needleSyms) {
		return true
	}

	if node.Kind != format.KindList {
		return false
	}

	n := node.ListCount()
	for i := 0; i < n; i++ {
		childKind := node.ChildSEntryKind(i)
		if childKind != needle.Kind && childKind != format.KindList {
			continue
		}

		if keyBasedScan(node.Child(i), nodeSyms, needle, needleSyms) {
			return true
		}
	}

	return false
}

// keyBasedMatches tests the non-recursive part of the key-based rule at a
// single node: does node itself (not its descendants) satisfy the needle
// under key-based matching.
func keyBasedMatches(node value.Elem, nodeSyms []string, needle value.Elem, needleSyms []string) bool {
	if needle.Kind != format.KindList {
		return node.Kind == needle.Kind && value.Equal(node, nodeSyms, needle, needleSyms)
	}

	if node.Kind != format.KindList {
		return false
	}

	nn, nk := node.ListCount(), needle.ListCount()
	if nn == 0 || nk == 0 {
		return false
	}

	if !value.Equal(node.Child(0), nodeSyms, needle.Child(0), needleSyms) {
		return false
	}

	used := make([]bool, nn-1)
	for j := 1; j < nk; j++ {
		nj := needle.Child(j)
		matched := false

		for i := 1; i < nn; i++ {
			if used[i-1] {
				continue
			}

			if keyBasedScan(node.Child(i), nodeSyms, nj, needleSyms) {
				used[i-1] = true
				matched = true
				break
			}
		}

		if !matched {
			return false
		}
	}

	return true
}
