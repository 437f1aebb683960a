package watchlist

import (
	"sort"

	"github.com/devbrewai/veritas/internal/phonetic"
)

// Index is the blocking index over a snapshot's name variants. It maps cheap
// block keys to variant indices so a query compares against a small candidate
// subset instead of the whole list.
//
// Two key families are kept separately: phonetic codes, and short token
// prefixes. Prefix keys are the fallback that keeps very short or foreign
// tokens reachable when the phonetic encoder produces nothing for them; they
// are also the first thing dropped when a candidate set blows past the
// ceiling.
type Index struct {
	phonetic  map[string][]int
	prefix    map[string][]int
	entryOf   []int // variant index -> entry index
	prefixLen int
}

// buildIndex derives the blocking index from the variant list. Insertions are
// set-semantics: duplicate (key, variant) pairs collapse to one posting.
// Every variant is reachable through at least the prefix key of each of its
// tokens, so no entry is silently unreachable by blocking.
func buildIndex(variants []Variant, prefixLen int) *Index {
	phoneticKeys := make(map[string]map[int]struct{})
	prefixKeys := make(map[string]map[int]struct{})
	entryOf := make([]int, len(variants))

	for vi := range variants {
		v := &variants[vi]
		entryOf[vi] = v.EntryIdx

		for ti, token := range v.Name.Tokens {
			for _, key := range v.Codes[ti].Keys() {
				insert(phoneticKeys, key, vi)
			}
			insert(prefixKeys, tokenPrefix(token, prefixLen), vi)
		}
	}

	return &Index{
		phonetic:  freeze(phoneticKeys),
		prefix:    freeze(prefixKeys),
		entryOf:   entryOf,
		prefixLen: prefixLen,
	}
}

// Candidates returns the variant indices reachable from the query's tokens,
// sorted ascending. Retrieval is recall-favoring: the candidate sets for
// every token's phonetic and prefix keys are unioned, so a match is reachable
// if any query token blocks to any token of any variant.
//
// If the unioned set covers more entries than ceiling, retrieval is retried
// with phonetic keys only (prefix blocks on common short tokens are the usual
// culprit). If even that is over the ceiling, the full set is returned:
// correctness over a false early truncation.
func (ix *Index) Candidates(tokens []string, codes []phonetic.Code, ceiling int) []int {
	full := ix.collect(tokens, codes, true)
	if ix.countEntries(full) <= ceiling {
		return setToSorted(full)
	}

	narrowed := ix.collect(tokens, codes, false)
	if ix.countEntries(narrowed) <= ceiling {
		return setToSorted(narrowed)
	}

	return setToSorted(full)
}

// collect unions candidate postings for all query tokens. Prefix keys are
// consulted only when includePrefix is set.
func (ix *Index) collect(tokens []string, codes []phonetic.Code, includePrefix bool) map[int]struct{} {
	out := make(map[int]struct{})
	for ti, token := range tokens {
		for _, key := range codes[ti].Keys() {
			for _, vi := range ix.phonetic[key] {
				out[vi] = struct{}{}
			}
		}
		if includePrefix {
			for _, vi := range ix.prefix[tokenPrefix(token, ix.prefixLen)] {
				out[vi] = struct{}{}
			}
		}
	}
	return out
}

// countEntries counts distinct entries in a variant set; the candidate
// ceiling is defined over entries, not variants.
func (ix *Index) countEntries(variantSet map[int]struct{}) int {
	entries := make(map[int]struct{}, len(variantSet))
	for vi := range variantSet {
		entries[ix.entryOf[vi]] = struct{}{}
	}
	return len(entries)
}

func tokenPrefix(token string, n int) string {
	if len(token) <= n {
		return token
	}
	return token[:n]
}

func insert(m map[string]map[int]struct{}, key string, vi int) {
	set, ok := m[key]
	if !ok {
		set = make(map[int]struct{})
		m[key] = set
	}
	set[vi] = struct{}{}
}

// freeze converts build-time sets into sorted posting slices.
func freeze(m map[string]map[int]struct{}) map[string][]int {
	out := make(map[string][]int, len(m))
	for key, set := range m {
		out[key] = setToSorted(set)
	}
	return out
}

// setToSorted returns the set members as a sorted slice, giving retrieval a
// deterministic order independent of map iteration.
func setToSorted(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for vi := range set {
		out = append(out, vi)
	}
	sort.Ints(out)
	return out
}
