// Package sexp implements a compact, indexable binary encoding for
// S-expression values, along with the text grammar, semantic operations
// (equality, hashing, car/cdr/nth), structural and key-based
// containment, wildcard/capture pattern matching, and inverted-index key
// extraction that a host embeds to query them.
//
// # Basic Usage
//
// Parsing and printing:
//
//	v, err := sexp.Parse(`(user (id 100) (name "ann"))`)
//	if err != nil {
// // handle malformed text
//	}
//	fmt.Println(sexp.Print(v)) // (user (id 100) (name "ann"))
//
// Equality and hashing are symbol-table-independent: two values parsed
// from different text, or with different internal symbol orderings,
// compare and hash the same as long as they're semantically identical.
//
//	a, _ := sexp.Parse("(a b c)")
//	b, _ := sexp.Parse("(a b c)")
//	a.Equal(b) // true
//	a.Hash() == b.Hash() // true
//
// For the full host integration surface (send/recv with optional wire
// compression, containment, pattern matching, inverted-index key
// extraction), see the hostadapter package.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around value,
// parser and printer for the most common use cases. For containment,
// pattern matching, index-key extraction, or a configurable host
// binding, use the containment, pattern, index and hostadapter packages
// directly.
package sexp

import ("github.com/gdiazlo/pg-sexp/parser"
	"github.com/gdiazlo/pg-sexp/printer"
	"github.com/gdiazlo/pg-sexp/value")

// Value is a decoded sexp container ( -).
type Value = value.Value

// Parse reads one sexp value from text.
func Parse(text string) (Value, error) {
	return parser.Parse(text)
}

// MustParse is Parse, panicking on a malformed input. Intended for
// tests and startup-time constants, never for parsing untrusted input.
func MustParse(text string) Value {
	v, err := parser.Parse(text)
	if err != nil {
 panic(err)
	}

	return v
}

// Decode validates and wraps a binary sexp container (
// `recv`).
func Decode(data []byte) (Value, error) {
	return value.Decode(data)
}

// Print renders v back to canonical sexp text ( `print`).
func Print(v Value) string {
	return printer.Print(v)
}

// NIL returns the shared NIL value.
func NIL() Value {
	return value.NIL()
}
