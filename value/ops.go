package value

import (
	"github.com/gdiazlo/pg-sexp/errs"
	"github.com/gdiazlo/pg-sexp/format"
)

// TypeOf returns one of: nil, symbol, string, integer, float, list.
func (v Value) TypeOf() string {
	return v.Root().Kind.String()
}

// IsNil, IsList, IsAtom, IsSymbol, IsString, IsNumber are the type
// predicates. An atom is anything that is not a list (NIL included).
func (v Value) IsNil() bool    { return v.Root().Kind == format.KindNil }
func (v Value) IsList() bool   { return v.Root().Kind == format.KindList }
func (v Value) IsAtom() bool   { return v.Root().Kind != format.KindList }
func (v Value) IsSymbol() bool { return v.Root().Kind == format.KindSymbol }
func (v Value) IsString() bool { return v.Root().Kind == format.KindString }
func (v Value) IsNumber() bool {
	k := v.Root().Kind
	return k == format.KindInt || k == format.KindFloat
}

// Length returns 0 for NIL, 1 for any other atom, and the child count for
// a list. Callers distinguish "atom of length 1" from "single-element
// list" via IsList.
func (v Value) Length() int32 {
	root := v.Root()
	switch root.Kind {
	case format.KindNil:
		return 0
	case format.KindList:
		return int32(root.ListCount())
	default:
		return 1
	}
}

// Car returns the first element of a list as a standalone Value. NIL
// yields (zero, false, nil): "absent", not an error. A non-list, non-NIL
// atom is a datatype mismatch.
func (v Value) Car() (Value, bool, error) {
	root := v.Root()
	switch root.Kind {
	case format.KindNil:
		return Value{}, false, nil
	case format.KindList:
		return v.child(root.Child(0)), true, nil
	default:
		return Value{}, false, errs.ErrCarOfAtom
	}
}

// Cdr returns the list with its first element removed. NIL yields absent;
// a 1-element list yields NIL; a non-list atom is a datatype mismatch.
func (v Value) Cdr() (Value, bool, error) {
	root := v.Root()
	switch root.Kind {
	case format.KindNil:
		return Value{}, false, nil
	case format.KindList:
		n := root.ListCount()
		if n == 1 {
			return NIL(), true, nil
		}

		rest := make([]Elem, n-1)
		for i := 1; i < n; i++ {
			rest[i-1] = root.Child(i)
		}

		return v.child(EncodeList(rest, v.symbols)), true, nil
	default:
		return Value{}, false, errs.ErrCdrOfAtom
	}
}

// Nth returns the i-th element (0-based) of a list, or absent if i is out
// of range. Nth on a non-list atom with i==0 returns the atom itself
// (recorded as an open-question decision in DESIGN.md); any other index on
// an atom is out of range.
func (v Value) Nth(i int32) (Value, bool) {
	if i < 0 {
		return Value{}, false
	}

	root := v.Root()
	switch root.Kind {
	case format.KindNil:
		return Value{}, false
	case format.KindList:
		if int(i) >= root.ListCount() {
			return Value{}, false
		}

		return v.child(root.Child(int(i))), true
	default:
		if i == 0 {
			return v, true
		}

		return Value{}, false
	}
}
