package similarity

import (
	"math"
	"testing"

	"github.com/devbrewai/veritas/internal/normalize"
	"github.com/devbrewai/veritas/internal/phonetic"
)

var defaultWeights = Weights{Edit: 0.45, TokenOverlap: 0.35, Phonetic: 0.20}

func score(t *testing.T, s *Scorer, query, candidate string) Breakdown {
	t.Helper()
	q := normalize.Normalize(query)
	c := normalize.Normalize(candidate)
	return s.Score(q, c, phonetic.EncodeAll(q.Tokens), phonetic.EncodeAll(c.Tokens))
}

func TestScoreIdentical(t *testing.T) {
	s := NewScorer(Levenshtein{}, defaultWeights)
	bd := score(t, s, "Vladimir Putin", "Vladimir Putin")
	if bd.Edit != 1.0 || bd.TokenOverlap != 1.0 || bd.Phonetic != 1.0 {
		t.Errorf("identical names should max every sub-score: %+v", bd)
	}
	if math.Abs(bd.Composite-1.0) > 1e-9 {
		t.Errorf("composite = %v, want 1.0", bd.Composite)
	}
}

func TestScoreReorderedTokens(t *testing.T) {
	s := NewScorer(Levenshtein{}, defaultWeights)
	original := score(t, s, "Vladimir Putin", "Vladimir Putin")
	reordered := score(t, s, "Putin Vladimir", "Vladimir Putin")

	if reordered.TokenOverlap != original.TokenOverlap {
		t.Errorf("token overlap must be order-insensitive: %v vs %v",
			reordered.TokenOverlap, original.TokenOverlap)
	}
	// The sorted-token edit pass keeps reordering from cratering the composite.
	if math.Abs(reordered.Composite-original.Composite) > 1e-9 {
		t.Errorf("reordered composite = %v, want %v", reordered.Composite, original.Composite)
	}
}

func TestScoreSubScoreRanges(t *testing.T) {
	s := NewScorer(Levenshtein{}, defaultWeights)
	pairs := [][2]string{
		{"Vladimir Putin", "Vladimr Puttin"},
		{"John Smith", "Vladimir Putin"},
		{"Maria Garcia", "Maria"},
		{"A", "Zebra Quagga Okapi"},
	}
	for _, p := range pairs {
		bd := score(t, s, p[0], p[1])
		for name, v := range map[string]float64{
			"edit":      bd.Edit,
			"token":     bd.TokenOverlap,
			"phonetic":  bd.Phonetic,
			"composite": bd.Composite,
		} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Errorf("%q vs %q: %s score %v out of [0,1]", p[0], p[1], name, v)
			}
		}
	}
}

func TestJaccardSetSemantics(t *testing.T) {
	// Duplicate tokens in one name must not double-count.
	if got := jaccard([]string{"maria", "maria"}, []string{"maria"}); got != 1.0 {
		t.Errorf("duplicate tokens double-counted: %v", got)
	}
	if got := jaccard([]string{"john", "smith"}, []string{"smith", "john"}); got != 1.0 {
		t.Errorf("jaccard should ignore order: %v", got)
	}
	if got := jaccard([]string{"john", "smith"}, []string{"john", "doe"}); got != 1.0/3.0 {
		t.Errorf("jaccard = %v, want 1/3", got)
	}
	if got := jaccard(nil, []string{"x"}); got != 0.0 {
		t.Errorf("empty vs non-empty = %v, want 0", got)
	}
}

func TestPhoneticOverlapGreedyPairing(t *testing.T) {
	smith := phonetic.Encode("smith")
	jones := phonetic.Encode("jones")

	// Two query tokens may not both consume the single candidate token.
	got := phoneticOverlap([]phonetic.Code{smith, smith}, []phonetic.Code{smith, jones})
	if got != 0.5 {
		t.Errorf("greedy pairing = %v, want 0.5", got)
	}

	// One-to-one pairing still finds the full alignment when it exists.
	got = phoneticOverlap([]phonetic.Code{smith, jones}, []phonetic.Code{jones, smith})
	if got != 1.0 {
		t.Errorf("full alignment = %v, want 1.0", got)
	}
}

func TestCompositeWeighting(t *testing.T) {
	// With all weight on one signal, the composite equals that signal.
	s := NewScorer(Levenshtein{}, Weights{Edit: 1})
	bd := score(t, s, "Vladimir Putin", "Vladimr Puttin")
	if bd.Composite != bd.Edit {
		t.Errorf("edit-only composite = %v, want %v", bd.Composite, bd.Edit)
	}

	s = NewScorer(Levenshtein{}, Weights{TokenOverlap: 1})
	bd = score(t, s, "Putin Vladimir", "Vladimir Putin")
	if bd.Composite != bd.TokenOverlap {
		t.Errorf("token-only composite = %v, want %v", bd.Composite, bd.TokenOverlap)
	}
}
