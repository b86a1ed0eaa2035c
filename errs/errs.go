// Package errs defines the sentinel errors returned throughout the sexp
// codec and a taxonomy helper that classifies them the way this
// module's error-handling design requires: invalid text and
// limit-exceeded errors are user-visible and recoverable by the caller
// fixing its input; datatype-mismatch errors are user-visible
// programming errors; data-corruption and internal-invariant errors are
// fatal and unrecoverable.
package errs

import "errors"

// Kind classifies an error into one of the taxonomy buckets above.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidText
	KindLimitExceeded
	KindDatatypeMismatch
	KindDataCorruption
	KindInternalInvariant
)

func (k Kind) String() string {
	switch k {
	case KindInvalidText:
		return "invalid_text"
	case KindLimitExceeded:
		return "limit_exceeded"
	case KindDatatypeMismatch:
		return "datatype_mismatch"
	case KindDataCorruption:
		return "data_corruption"
	case KindInternalInvariant:
		return "internal_invariant"
	default:
		return "unknown"
	}
}

// Invalid text (parser) errors.
var (
	ErrUnterminatedList     = errors.New("sexp: unterminated list")
	ErrUnterminatedStr      = errors.New("sexp: unterminated string")
	ErrTrailingGarbage      = errors.New("sexp: trailing non-whitespace after root expression")
	ErrEmptyAtom            = errors.New("sexp: empty atom between delimiters")
	ErrUnexpectedCloseParen = errors.New("sexp: unexpected ')'")
	ErrMalformedNumber      = errors.New("sexp: malformed number literal")
	ErrUnexpectedEOF        = errors.New("sexp: unexpected end of input, expected a value")
)

// Limit-exceeded errors.
var (
	ErrDepthExceeded  = errors.New("sexp: nesting depth exceeds MAX_DEPTH")
	ErrTooManySymbols = errors.New("sexp: symbol table exceeds MAX_SYMBOLS")
	ErrListTooLarge   = errors.New("sexp: list element-data exceeds 256MiB")
	ErrVarintOverflow = errors.New("sexp: varint exceeds 64-bit shift")
)

// Datatype-mismatch errors.
var (
	ErrCarOfAtom = errors.New("sexp: car requires a list")
	ErrCdrOfAtom = errors.New("sexp: cdr requires a list")
)

// Data-corruption errors (decode-time, fatal, no recovery).
var (
	ErrUnknownTag         = errors.New("sexp: unknown element tag")
	ErrUnsupportedVersion = errors.New("sexp: value format version is newer than supported")
	ErrTruncated          = errors.New("sexp: truncated binary value")
	ErrOffsetOutOfBounds  = errors.New("sexp: offset out of bounds")
	ErrUnknownSymbolRef   = errors.New("sexp: symbol reference has no entry in symbol table")
	ErrDuplicateSymbol    = errors.New("sexp: symbol table contains a duplicate entry")
)

// Internal-invariant errors (fatal, indicate a bug rather than bad input).
var (
	ErrInconsistentLength     = errors.New("sexp: decoded length contradicts stored count")
	ErrStructuralHashMismatch = errors.New("sexp: stored structural hash does not match recomputed hash")
	ErrRestNotTerminal        = errors.New("sexp: rest-wildcard pattern is not in terminal position")
)

var kinds = map[error]Kind{
	ErrUnterminatedList:     KindInvalidText,
	ErrUnterminatedStr:      KindInvalidText,
	ErrTrailingGarbage:      KindInvalidText,
	ErrEmptyAtom:            KindInvalidText,
	ErrUnexpectedCloseParen: KindInvalidText,
	ErrMalformedNumber:      KindInvalidText,
	ErrUnexpectedEOF:        KindInvalidText,

	ErrDepthExceeded:  KindLimitExceeded,
	ErrTooManySymbols: KindLimitExceeded,
	ErrListTooLarge:   KindLimitExceeded,
	ErrVarintOverflow: KindLimitExceeded,

	ErrCarOfAtom: KindDatatypeMismatch,
	ErrCdrOfAtom: KindDatatypeMismatch,

	ErrUnknownTag:         KindDataCorruption,
	ErrUnsupportedVersion: KindDataCorruption,
	ErrTruncated:          KindDataCorruption,
	ErrOffsetOutOfBounds:  KindDataCorruption,
	ErrUnknownSymbolRef:   KindDataCorruption,
	ErrDuplicateSymbol:    KindDataCorruption,

	ErrInconsistentLength:     KindInternalInvariant,
	ErrStructuralHashMismatch: KindInternalInvariant,
	ErrRestNotTerminal:        KindInternalInvariant,
}

// Classify returns the taxonomy Kind for err, looking through any wrapping
// performed with fmt.Errorf("...: %w", sentinel). Unknown errors classify
// as KindUnknown so a host adapter can decide its own default handling.
func Classify(err error) Kind {
	for sentinel, kind := range kinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}

	return KindUnknown
}

// Fatal reports whether an error's kind must abort and unwind the current
// operation without any possibility of partial results: data-corruption
// and internal-invariant errors are always fatal.
func Fatal(err error) bool {
	switch Classify(err) {
	case KindDataCorruption, KindInternalInvariant:
		return true
	default:
		return false
	}
}
