// Package hostadapter is the thin binding layer a host (Postgres
// extension glue, or any other embedder) calls into: every operation
// delegates straight to the value/containment/pattern/index packages,
// plus an optional compressed send/recv path for embedders that don't
// already toast large values themselves.
package hostadapter

import (
	"fmt"

	"github.com/gdiazlo/pg-sexp/containment"
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/index"
	"github.com/gdiazlo/pg-sexp/parser"
	"github.com/gdiazlo/pg-sexp/pattern"
	"github.com/gdiazlo/pg-sexp/printer"
	"github.com/gdiazlo/pg-sexp/value"
)

// LogFunc is an optional event hook a host can inject to observe
// otherwise-silent adapter events: a "send" event with the byte counts
// before and after compression, and a "recv_error" event when a received
// payload fails to decode. The zero
// Adapter uses a no-op hook, making observability additive rather than
// mandatory.
type LogFunc func(event string, kv ...any)

// Adapter bundles the options a host selects once at setup: which wire
// compression codec Send/Recv uses, and where diagnostic events go.
type Adapter struct {
	codec Codec
	log   LogFunc
}

// Option configures an Adapter at construction time.
type Option func(*Adapter)

// WithCompression selects the codec Send/Recv uses for the wire
// payload. Unset, New defaults to format.CompressionNone.
func WithCompression(compressionType format.CompressionType) Option {
	return func(a *Adapter) {
		codec, err := CreateCodec(compressionType)
		if err != nil {
			// Only reachable with a compressionType value New's caller
			// fabricated outside the format.CompressionType enum.
			panic(err)
		}

		a.codec = codec
	}
}

// WithLogHook installs fn as the adapter's diagnostic event hook.
func WithLogHook(fn LogFunc) Option {
	return func(a *Adapter) { a.log = fn }
}

// New builds an Adapter, defaulting to no compression and a no-op log hook.
func New(opts ...Option) *Adapter {
	a := &Adapter{codec: NoOpCodec{}, log: func(string, ...any) {}}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Parse reads one value from sexp text.
func (a *Adapter) Parse(text string) (value.Value, error) {
	return parser.Parse(text)
}

// Print renders v back to canonical sexp text.
func (a *Adapter) Print(v value.Value) string {
	return printer.Print(v)
}

// Send serializes v to the wire form a host stores or transmits: the
// binary container, optionally compressed under the adapter's
// configured codec. Any framing or TOAST-style storage decision belongs
// to the host, not here.
func (a *Adapter) Send(v value.Value) ([]byte, error) {
	out, err := a.codec.Compress(v.Bytes())
	if err != nil {
		return nil, fmt.Errorf("hostadapter: send: %w", err)
	}

	a.log("send", "bytes_in", len(v.Bytes()), "bytes_out", len(out))

	return out, nil
}

// Recv decodes data produced by Send, or a bare uncompressed container
// when the adapter has no compression configured.
func (a *Adapter) Recv(data []byte) (value.Value, error) {
	raw, err := a.codec.Decompress(data)
	if err != nil {
		return value.Value{}, fmt.Errorf("hostadapter: recv: %w", err)
	}

	v, err := value.Decode(raw)
	if err != nil {
		a.log("recv_error", "error", err)
		return value.Value{}, err
	}

	return v, nil
}

// Equal reports semantic equality.
func (a *Adapter) Equal(x, y value.Value) bool {
	return x.Equal(y)
}

// Hash returns v's 32-bit semantic hash.
func (a *Adapter) Hash(v value.Value) int32 {
	return v.Hash()
}

// HashExtended returns v's 64-bit seeded hash.
func (a *Adapter) HashExtended(v value.Value, seed int64) int64 {
	return v.HashExtended(seed)
}

// Car returns v's first element.
func (a *Adapter) Car(v value.Value) (value.Value, bool, error) {
	return v.Car()
}

// Cdr returns v with its first element removed.
func (a *Adapter) Cdr(v value.Value) (value.Value, bool, error) {
	return v.Cdr()
}

// Nth returns v's i-th element, 0-based.
func (a *Adapter) Nth(v value.Value, i int32) (value.Value, bool) {
	return v.Nth(i)
}

// Length reports v's element count.
func (a *Adapter) Length(v value.Value) int32 {
	return v.Length()
}

// TypeOf reports v's type name.
func (a *Adapter) TypeOf(v value.Value) string {
	return v.TypeOf()
}

func (a *Adapter) IsNil(v value.Value) bool    { return v.IsNil() }
func (a *Adapter) IsList(v value.Value) bool   { return v.IsList() }
func (a *Adapter) IsAtom(v value.Value) bool   { return v.IsAtom() }
func (a *Adapter) IsSymbol(v value.Value) bool { return v.IsSymbol() }
func (a *Adapter) IsString(v value.Value) bool { return v.IsString() }
func (a *Adapter) IsNumber(v value.Value) bool { return v.IsNumber() }

// Contains implements structural containment.
func (a *Adapter) Contains(container, needle value.Value) bool {
	return containment.Structural(container, needle)
}

// ContainsKey implements key-based containment.
func (a *Adapter) ContainsKey(container, needle value.Value) bool {
	return containment.KeyBased(container, needle)
}

// Match reports whether pat matches expr.
func (a *Adapter) Match(expr, pat value.Value) bool {
	return pattern.Match(expr, pat)
}

// FindFirst returns the first subtree of expr matching pat, depth-first
// pre-order.
func (a *Adapter) FindFirst(expr, pat value.Value) (value.Value, bool) {
	return pattern.FindFirst(expr, pat)
}

// ExtractValueKeys returns v's inverted-index keys for storage. Keys are
// returned as int32 because that is the signed 4-byte width a GIN-style
// opclass stores; the top bit is always forced on by
// index.ExtractValueKeys, so the bit pattern — not its signed
// interpretation — is what matters to the index.
func (a *Adapter) ExtractValueKeys(v value.Value) []int32 {
	return toInt32(index.ExtractValueKeys(v))
}

// ExtractQueryKeys returns the keys a query value probes for under
// strategy; nil for format.StrategyContainedBy, which has no safe
// pre-filter.
func (a *Adapter) ExtractQueryKeys(q value.Value, strategy format.Strategy) []int32 {
	return toInt32(index.ExtractQueryKeys(q, strategy))
}

// Consistent reports the GIN-style consistent predicate: whether the
// tri-valued per-key check vector (aligned with the query's key list,
// each entry definitively-absent/definitively-present/maybe) could
// possibly match, and whether the host must still recheck the actual
// value. Recheck is always required of a candidate: key presence narrows
// candidates but never proves structural containment by itself,
// regardless of strategy.
func (a *Adapter) Consistent(strategy format.Strategy, check []index.Check) (matches, recheckRequired bool) {
	return index.Consistent(strategy, check)
}

// Triconsistent reports the three-valued GIN triconsistent predicate.
func (a *Adapter) Triconsistent(strategy format.Strategy, query value.Value, check []index.Check) index.Tristate {
	return index.Triconsistent(strategy, query, check)
}

func toInt32(keys []uint32) []int32 {
	if keys == nil {
		return nil
	}

	out := make([]int32, len(keys))
	for i, k := range keys {
		out[i] = int32(k)
	}

	return out
}
