package index_test

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/gdiazlo/pg-sexp/containment"
	"github.com/gdiazlo/pg-sexp/format"
	"github.com/gdiazlo/pg-sexp/index"
	"github.com/gdiazlo/pg-sexp/parser"
	"github.com/gdiazlo/pg-sexp/value"
	"github.com/stretchr/testify/require"
)

// postingIndex is a small in-memory stand-in for a host's GIN posting
// lists: one compressed bitmap of document IDs per extracted key. It
// exists only to exercise index.Consistent/index.Triconsistent the way a
// real index probe would, end to end over a corpus of stored documents;
// the real posting-list storage is the host's, per spec.md §1.
type postingIndex struct {
	postings map[uint32]*roaring.Bitmap
	docs     []value.Value
}

func newPostingIndex() *postingIndex {
	return &postingIndex{postings: make(map[uint32]*roaring.Bitmap)}
}

func (p *postingIndex) add(doc value.Value) uint32 {
	id := uint32(len(p.docs))
	p.docs = append(p.docs, doc)

	for _, k := range index.ExtractValueKeys(doc) {
		bm, ok := p.postings[k]
		if !ok {
			bm = roaring.New()
			p.postings[k] = bm
		}
		bm.Add(id)
	}

	return id
}

// candidates returns, for a query under strategy, the document IDs whose
// posting lists carry every one of the query's extracted keys: the
// bitmap-AND of each key's posting, exactly what Consistent needs as its
// per-key check vector before a caller can trust the candidate set. This
// simulator has no lossy storage, so every key resolves definitively
// present or definitively absent — it never reports CheckMaybe.
func (p *postingIndex) candidates(q value.Value, strategy format.Strategy) *roaring.Bitmap {
	keys := index.ExtractQueryKeys(q, strategy)
	if keys == nil {
		// StrategyContainedBy: no pre-filtering, every doc is a candidate.
		all := roaring.New()
		for i := range p.docs {
			all.Add(uint32(i))
		}
		return all
	}

	if len(keys) == 0 {
		all := roaring.New()
		for i := range p.docs {
			all.Add(uint32(i))
		}
		return all
	}

	result := roaring.New()
	for docID := range p.docs {
		check := make([]index.Check, len(keys))
		for i, k := range keys {
			bm, ok := p.postings[k]
			if ok && bm.Contains(uint32(docID)) {
				check[i] = index.CheckTrue
			} else {
				check[i] = index.CheckFalse
			}
		}

		if matches, _ := index.Consistent(strategy, check); matches {
			result.Add(uint32(docID))
		}
	}

	return result
}

func mustParse(t *testing.T, text string) value.Value {
	t.Helper()
	v, err := parser.Parse(text)
	require.NoError(t, err)
	return v
}

// Test_PostingIndex_StructuralCandidatesMatchRecheck builds a small corpus,
// indexes it, probes with a structural query, and checks the candidate set
// the bitmap posting lists produce against a full containment.Structural
// recheck over every document: the recheck must never find a true match
// the candidate set excluded (soundness, spec.md §8 property 6). Extra
// candidates that the recheck rejects are allowed and not checked here.
func Test_PostingIndex_StructuralCandidatesMatchRecheck(t *testing.T) {
	idx := newPostingIndex()
	docs := []string{
		`(user (name "alice") (age 30))`,
		`(user (name "bob") (age 45))`,
		`(order (id 100) (total 9.5))`,
		`(+ 1 2 3)`,
		`(a b c)`,
	}
	for _, d := range docs {
		idx.add(mustParse(t, d))
	}

	query := mustParse(t, `(age 30)`)
	cands := idx.candidates(query, format.StrategyStructural)

	for i, doc := range idx.docs {
		isCandidate := cands.Contains(uint32(i))
		actual := containment.Structural(doc, query)
		if actual {
			require.Truef(t, isCandidate, "doc %d truly contains needle but was filtered out", i)
		}
	}
}

// Test_PostingIndex_KeyBasedExcludesPairKeyFalseNegative is the end-to-end
// scenario from spec.md §4.8: a key-based query `(user (age 30))` must
// remain a candidate against a stored `(user (name "alice") (age 30))`
// even though the stored document's `user` list is not itself a 2-element
// pair (so no pair key was ever emitted for it on the value side).
func Test_PostingIndex_KeyBasedExcludesPairKeyFalseNegative(t *testing.T) {
	idx := newPostingIndex()
	docID := idx.add(mustParse(t, `(user (name "alice") (age 30))`))

	query := mustParse(t, `(user (age 30))`)
	cands := idx.candidates(query, format.StrategyKeyBased)

	require.True(t, cands.Contains(docID), "key-based query must survive pre-filtering")
	require.True(t, containment.KeyBased(idx.docs[docID], query), "recheck must confirm the candidate")
}

// Test_PostingIndex_ContainedByDisablesPrefiltering checks the
// StrategyContainedBy strategy always yields the full document set as
// candidates (spec.md §4.8: "not amenable to pre-filtering; request
// full-index scan").
func Test_PostingIndex_ContainedByDisablesPrefiltering(t *testing.T) {
	idx := newPostingIndex()
	idx.add(mustParse(t, `(a b c)`))
	idx.add(mustParse(t, `(+ 1 2 3)`))

	cands := idx.candidates(mustParse(t, `x`), format.StrategyContainedBy)
	require.EqualValues(t, len(idx.docs), cands.GetCardinality())
}
