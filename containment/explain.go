package containment

import (
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/value"
)

// Explain returns the child-index path from container's root to the first
// subtree (depth-first, pre-order) that is equal to needle, alongside the
// usual boolean result; ok is exactly Structural's answer. It is a diagnostic convenience
// layered on top of Structural: re-running the same scan while recording
// the path taken costs nothing a caller couldn't already pay by
// re-deriving it themselves, but doing it once here saves every caller
// from reimplementing the walk.
func Explain(container, needle value.Value) (path []int, ok bool) {
	if value.BloomReject(container.BloomSignature(), needle.BloomSignature()) {
		return nil, false
	}

	return explainScan(container.Root(), container.Symbols(), needle.Root(), needle.Symbols(), nil)
}

func explainScan(node value.Elem, nodeSyms []string, needle value.Elem, needleSyms []string, path []int) ([]int, bool) {
	if node.Kind == needle.Kind && value.Equal(node, nodeSyms, needle, needleSyms) {
		return append([]int{}, path...), true
	}

	if node.Kind != format.KindList {
		return nil, false
	}

	n := node.ListCount()
	for i := 0; i < n; i++ {
		childKind := node.ChildSEntryKind(i)
		if childKind != needle.Kind && childKind != format.KindList {
			continue
		}

		if p, ok := explainScan(node.Child(i), nodeSyms, needle, needleSyms, append(path, i)); ok {
			return p, true
		}
	}

	return nil, false
}
