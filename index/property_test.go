package index_test

import (
	"testing"

	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/index"
	"github.com/gdiazlo/pg-sexp/internal/corpus"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// Test_Property_ValueKeysNeverExceedMax checks the truncation bound holds
// for arbitrarily generated values.
func Test_Property_ValueKeysNeverExceedMax(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := corpus.Value(rt)
		keys := index.ExtractValueKeys(v)
		assert.LessOrEqual(rt, len(keys), format.MaxKeys)
	})
}

// Test_Property_ValueKeysTopBitAlwaysSet checks every key's top bit is
// forced on, so a key can never equal the empty-slot sentinel.
func Test_Property_ValueKeysTopBitAlwaysSet(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := corpus.Value(rt)
		for _, k := range index.ExtractValueKeys(v) {
			assert.NotZero(rt, k&(1<<31))
		}
	})
}

// Test_Property_StructuralQueryKeysSubsetOfValueKeys checks that a
// value's own structural-strategy query keys are always found among its
// own stored keys, so a self-query against its own posting is always a
// consistent candidate.
func Test_Property_StructuralQueryKeysSubsetOfValueKeys(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := corpus.Value(rt)

		stored := make(map[uint32]bool)
		for _, k := range index.ExtractValueKeys(v) {
			stored[k] = true
		}

		queryKeys := index.ExtractQueryKeys(v, format.StrategyStructural)
		if len(queryKeys) == format.MaxKeys {
			return // truncation may have dropped keys on either side
		}

		check := make([]index.Check, len(queryKeys))
		for i, k := range queryKeys {
			if stored[k] {
				check[i] = index.CheckTrue
			} else {
				check[i] = index.CheckFalse
			}
		}

		matches, _ := index.Consistent(format.StrategyStructural, check)
		assert.True(rt, matches)
	})
}
