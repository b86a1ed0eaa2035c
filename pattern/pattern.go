// Package pattern implements pattern matching over decoded values:
// patterns are values themselves, with a handful of symbols given
// special meaning (_, _*, ?name, ??name) and everything else matching by
// the same semantic equality containment and hashing share.
package pattern

import (
	"strings"

	"github.com/gdiazlo/pg-sexp/errs"
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/value"
)

// Captures maps a named capture (?name or ??name, name without the
// sigil) to the sub-value it matched. Single captures hold the matched
// element; rest captures hold a list of the matched trailing elements
// (or NIL if the rest matched zero elements).
//
// Capture surfacing is an optional extension; this package always
// surfaces it, but Match ignores captures entirely for callers that only
// need the boolean result.
type Captures map[string]value.Value

// Match reports whether expr matches pat at the root.
func Match(expr, pat value.Value) bool {
	return matchElem(expr.Root(), expr.Symbols(), pat.Root(), pat.Symbols(), nil)
}

// MatchCaptures is Match, additionally returning every named capture
// bound during a successful match. Returns (nil, false) on no match.
func MatchCaptures(expr, pat value.Value) (Captures, bool) {
	caps := make(Captures)
	if !matchElem(expr.Root(), expr.Symbols(), pat.Root(), pat.Symbols(), caps) {
		return nil, false
	}

	return caps, true
}

// FindFirst returns the first subtree of expr, visited depth-first,
// pre-order, left-to-right, that matches pat, or (zero, false) if none
// does.
func FindFirst(expr, pat value.Value) (value.Value, bool) {
	return findFirst(expr.Root(), expr.Symbols(), pat.Root(), pat.Symbols())
}

func findFirst(e value.Elem, eSyms []string, p value.Elem, pSyms []string) (value.Value, bool) {
	if matchElem(e, eSyms, p, pSyms, nil) {
		return value.New(eSyms, e), true
	}

	if e.Kind != format.KindList {
		return value.Value{}, false
	}

	n := e.ListCount()
	for i := 0; i < n; i++ {
		if v, ok := findFirst(e.Child(i), eSyms, p, pSyms); ok {
			return v, true
		}
	}

	return value.Value{}, false
}

// matchElem matches a single element against a single pattern element.
// caps may be nil, in which case captures are recognized (and still
// count as a match) but not recorded.
func matchElem(e value.Elem, eSyms []string, p value.Elem, pSyms []string, caps Captures) bool {
	if p.Kind == format.KindSymbol {
		if text, ok := symbolText(p, pSyms); ok {
			switch {
			case text == "_":
				return true

			case text == "_*" || strings.HasPrefix(text, "??"):
				// Rest tokens are only meaningful as the terminal element
				// of an enclosing list pattern, where matchList consumes
				// them directly without calling matchElem. Reaching one
				// here means it appears outside that position (e.g. as
				// a bare root pattern, or mid-list where matchList
				// already rejected it) — never a match.
				return false

			case strings.HasPrefix(text, "?"):
				if caps != nil {
					caps[text[1:]] = value.New(eSyms, e)
				}

				return true
			}
		}
	}

	if p.Kind == format.KindList {
		if e.Kind != format.KindList {
			return false
		}

		return matchList(e, eSyms, p, pSyms, caps)
	}

	return e.Kind == p.Kind && value.Equal(e, eSyms, p, pSyms)
}

// matchList matches a list element against a list pattern, honoring the
// rest-wildcard/rest-capture terminal-position rule.
func matchList(e value.Elem, eSyms []string, p value.Elem, pSyms []string, caps Captures) bool {
	pn, en := p.ListCount(), e.ListCount()

	for i := 0; i < pn; i++ {
		pc := p.Child(i)

		if name, isRest := restToken(pc, pSyms); isRest {
			if i != pn-1 {
				// A rest token in non-terminal position never matches.
				// Validate catches this eagerly for callers that compile
				// a pattern once and match it repeatedly; Match itself
				// just fails the match.
				return false
			}

			if caps != nil && name != "" {
				rest := make([]value.Elem, en-i)
				for k := i; k < en; k++ {
					rest[k-i] = e.Child(k)
				}

				caps[name] = value.New(eSyms, value.EncodeList(rest, eSyms))
			}

			return true
		}

		if i >= en {
			return false
		}

		if !matchElem(e.Child(i), eSyms, pc, pSyms, caps) {
			return false
		}
	}

	return pn == en
}

// restToken reports whether p is a rest-wildcard (_*) or rest-capture
// (??name) token, returning the capture name (empty for _*).
func restToken(p value.Elem, pSyms []string) (name string, isRest bool) {
	if p.Kind != format.KindSymbol {
		return "", false
	}

	text, ok := symbolText(p, pSyms)
	if !ok {
		return "", false
	}

	if text == "_*" {
		return "", true
	}

	if strings.HasPrefix(text, "??") && len(text) > 2 {
		return text[2:], true
	}

	return "", false
}

// Validate eagerly checks that every rest token (_*, ??name) in pat
// appears only in the terminal position of its enclosing list pattern,
// returning errs.ErrRestNotTerminal otherwise. Match and FindFirst do not
// call this themselves (a misplaced rest token simply fails to match);
// callers that compile a pattern once and reuse it many times can call
// Validate up front to reject a malformed pattern eagerly instead of
// discovering it as silent non-matches.
func Validate(pat value.Value) error {
	if _, isRest := restToken(pat.Root(), pat.Symbols()); isRest {
		// A bare rest token at the root has no enclosing list at all.
		return errs.ErrRestNotTerminal
	}

	return validateElem(pat.Root(), pat.Symbols())
}

func validateElem(p value.Elem, pSyms []string) error {
	if p.Kind != format.KindList {
		return nil
	}

	n := p.ListCount()
	for i := 0; i < n; i++ {
		pc := p.Child(i)
		if _, isRest := restToken(pc, pSyms); isRest && i != n-1 {
			return errs.ErrRestNotTerminal
		}

		if err := validateElem(pc, pSyms); err != nil {
			return err
		}
	}

	return nil
}

func symbolText(e value.Elem, symbols []string) (string, bool) {
	idx := e.SymbolIndex()
	if idx < 0 || idx >= len(symbols) {
		return "", false
	}

	return symbols[idx], true
}
