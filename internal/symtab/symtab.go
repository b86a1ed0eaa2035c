// Package symtab implements the per-parse symbol intern table: a
// hash-then-string-compare open-addressed table that deduplicates symbol
// byte strings and assigns each a small integer index, doubling when its
// load factor exceeds 0.5.
//
// The probing strategy follows the open-addressed table in
// other_examples/9ed5ae26_philpearl-intern__intern.go.go: entries store the
// hash alongside the interned index so that most probes reject on a hash
// mismatch without touching the string at all.
package symtab

import (
	"math/bits"

	"github.com/gdiazlo/pg-sexp/internal/xhash"
)

type entry struct {
	hash  uint32
	index int // 1-based; 0 means empty slot
}

// Table interns symbol strings for a single parse. It is not safe for
// concurrent use: one intern table belongs to one parse, used
// synchronously.
type Table struct {
	slots   []entry
	symbols []string
	count   int
}

// New creates an intern table sized for roughly cap unique symbols.
func New(cap int) *Table {
	if cap < 8 {
		cap = 8
	} else {
		cap = 1 << uint(bits.Len(uint(cap-1)))
	}

	return &Table{
		slots: make([]entry, cap),
	}
}

// Len returns the number of unique interned symbols.
func (t *Table) Len() int {
	return t.count
}

// Symbols returns the interned symbols in index order (index i is
// Symbols()[i]), ready to serialize into the binary container's symbol
// table.
func (t *Table) Symbols() []string {
	return t.symbols
}

// Intern deduplicates sym and returns its table index, interning it if it
// has not been seen before in this parse.
func (t *Table) Intern(sym string) int {
	t.maybeGrow()

	h := xhash.HashBytesString(sym)
	mask := uint32(len(t.slots) - 1)
	i := h & mask

	for {
		e := t.slots[i]
		if e.index == 0 {
			idx := len(t.symbols)
			t.symbols = append(t.symbols, sym)
			t.slots[i] = entry{hash: h, index: idx + 1}
			t.count++

			return idx
		}

		if e.hash == h && t.symbols[e.index-1] == sym {
			return e.index - 1
		}

		i = (i + 1) & mask
	}
}

func (t *Table) maybeGrow() {
	if t.count*2 < len(t.slots) {
		return
	}

	old := t.slots
	t.slots = make([]entry, len(old)*2)

	for _, e := range old {
		if e.index == 0 {
			continue
		}

		h := e.hash
		mask := uint32(len(t.slots) - 1)
		i := h & mask
		for t.slots[i].index != 0 {
			i = (i + 1) & mask
		}
		t.slots[i] = e
	}
}
