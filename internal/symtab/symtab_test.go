package symtab_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdiazlo/pg-sexp/internal/symtab"
)

func TestInternDeduplicates(t *testing.T) {
	tab := symtab.New(4)
	a := tab.Intern("foo")
	b := tab.Intern("bar")
	c := tab.Intern("foo")
	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, tab.Len())
}

func TestInternPreservesFirstSeenOrder(t *testing.T) {
	tab := symtab.New(4)
	tab.Intern("z")
	tab.Intern("a")
	tab.Intern("m")
	assert.Equal(t, []string{"z", "a", "m"}, tab.Symbols())
}

func TestInternGrowsAndStaysConsistent(t *testing.T) {
	tab := symtab.New(4)
	names := make([]string, 0, 200)
	indices := make(map[string]int)
	for i := 0; i < 200; i++ {
		name := fmt.Sprintf("sym-%d", i)
		names = append(names, name)
		indices[name] = tab.Intern(name)
	}

	for _, name := range names {
		assert.Equal(t, indices[name], tab.Intern(name))
	}
	assert.Equal(t, 200, tab.Len())
}
