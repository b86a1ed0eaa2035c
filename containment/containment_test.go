package containment_test

import (
	"testing"

	"github.com/gdiazlo/pg-sexp/containment"
	"github.com/gdiazlo/pg-sexp/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(symbols []string, root value.Elem) value.Value {
	return value.New(symbols, root)
}

func Test_Structural_AtomInList(t *testing.T) {
	container := build(nil, value.EncodeList([]value.Elem{
		value.EncodeInt(1),
		value.EncodeList([]value.Elem{value.EncodeInt(2), value.EncodeInt(3)}, nil),
	}, nil))
	needle := build(nil, value.EncodeInt(3))

	assert.True(t, containment.Structural(container, needle))
}

func Test_Structural_ExactSublistOnly(t *testing.T) {
	container := build(nil, value.EncodeList([]value.Elem{
		value.EncodeInt(1), value.EncodeInt(2), value.EncodeInt(3),
	}, nil))

	// (1 2) is not a subtree of (1 2 3): sublist match is exact by length.
	needle := build(nil, value.EncodeList([]value.Elem{value.EncodeInt(1), value.EncodeInt(2)}, nil))

	assert.False(t, containment.Structural(container, needle))
}

func Test_Structural_Reflexive(t *testing.T) {
	v := build([]string{"x"}, value.EncodeList([]value.Elem{
		value.EncodeSymbol(0), value.EncodeInt(1), value.EncodeString([]byte("s")),
	}, []string{"x"}))

	assert.True(t, containment.Structural(v, v), "contains(v, v) must hold for any v")
}

func Test_Structural_Miss(t *testing.T) {
	container := build(nil, value.EncodeList([]value.Elem{value.EncodeInt(1), value.EncodeInt(2)}, nil))
	needle := build(nil, value.EncodeInt(99))

	assert.False(t, containment.Structural(container, needle))
}

func Test_KeyBased_HeadMustMatch(t *testing.T) {
	sym := []string{"user", "id", "name"}
	container := build(sym, value.EncodeList([]value.Elem{
		value.EncodeSymbol(0), // user
		value.EncodeList([]value.Elem{value.EncodeSymbol(1), value.EncodeInt(100)}, sym),
		value.EncodeList([]value.Elem{value.EncodeSymbol(2), value.EncodeString([]byte("ann"))}, sym),
	}, sym))

	needle := build(sym, value.EncodeList([]value.Elem{
		value.EncodeSymbol(0),
		value.EncodeList([]value.Elem{value.EncodeSymbol(1), value.EncodeInt(100)}, sym),
	}, sym))

	assert.True(t, containment.KeyBased(container, needle),
		"(user (id 100)) must key-based-match (user (id 100) (name ann)) even though the container's user list is not a 2-element pair")
}

func Test_KeyBased_TailOrderInsensitive(t *testing.T) {
	sym := []string{"h", "a", "b"}
	container := build(sym, value.EncodeList([]value.Elem{
		value.EncodeSymbol(0), value.EncodeSymbol(2), value.EncodeSymbol(1),
	}, sym))
	needle := build(sym, value.EncodeList([]value.Elem{
		value.EncodeSymbol(0), value.EncodeSymbol(1), value.EncodeSymbol(2),
	}, sym))

	assert.True(t, containment.KeyBased(container, needle))
}

func Test_KeyBased_DistinctConsumption(t *testing.T) {
	// Two identical needle tails must each consume a distinct container
	// tail element; a single container element cannot satisfy both.
	sym := []string{"h", "a"}
	container := build(sym, value.EncodeList([]value.Elem{
		value.EncodeSymbol(0), value.EncodeSymbol(1),
	}, sym))
	needle := build(sym, value.EncodeList([]value.Elem{
		value.EncodeSymbol(0), value.EncodeSymbol(1), value.EncodeSymbol(1),
	}, sym))

	assert.False(t, containment.KeyBased(container, needle))
}

func Test_KeyBased_HeadMismatch(t *testing.T) {
	sym := []string{"a", "b"}
	container := build(sym, value.EncodeList([]value.Elem{value.EncodeSymbol(0), value.EncodeInt(1)}, sym))
	needle := build(sym, value.EncodeList([]value.Elem{value.EncodeSymbol(1), value.EncodeInt(1)}, sym))

	assert.False(t, containment.KeyBased(container, needle))
}

func Test_Explain_ReturnsPath(t *testing.T) {
	container := build(nil, value.EncodeList([]value.Elem{
		value.EncodeInt(1),
		value.EncodeList([]value.Elem{value.EncodeInt(2), value.EncodeInt(3)}, nil),
	}, nil))
	needle := build(nil, value.EncodeInt(3))

	path, ok := containment.Explain(container, needle)
	require.True(t, ok)
	assert.Equal(t, []int{1, 1}, path)
}

func Test_Explain_NotFound(t *testing.T) {
	container := build(nil, value.EncodeInt(1))
	needle := build(nil, value.EncodeInt(2))

	_, ok := containment.Explain(container, needle)
	assert.False(t, ok)
}
