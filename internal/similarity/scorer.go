package similarity

import (
	"github.com/devbrewai/veritas/internal/normalize"
	"github.com/devbrewai/veritas/internal/phonetic"
)

// Breakdown holds the named sub-scores for one query/candidate comparison
// plus their weighted fusion. All values are in [0,1].
type Breakdown struct {
	Edit         float64 `json:"edit"`
	TokenOverlap float64 `json:"token_overlap"`
	Phonetic     float64 `json:"phonetic"`
	Composite    float64 `json:"composite"`
}

// Weights control how the sub-scores fuse into the composite. They are
// screening policy, supplied by configuration rather than hard-coded.
type Weights struct {
	Edit         float64
	TokenOverlap float64
	Phonetic     float64
}

// Scorer computes composite similarity between a normalized query name and
// one candidate name variant. It is stateless and safe for concurrent use.
type Scorer struct {
	edit    Function
	weights Weights
}

// NewScorer creates a scorer using the given edit metric and fusion weights.
func NewScorer(edit Function, weights Weights) *Scorer {
	return &Scorer{edit: edit, weights: weights}
}

// Score compares the query against a single candidate variant. Both names
// must be non-empty; callers reject zero-token names before scoring.
// queryCodes and candidateCodes are the per-token phonetic codes, positionally
// aligned with the respective token slices.
func (s *Scorer) Score(query, candidate normalize.Name, queryCodes, candidateCodes []phonetic.Code) Breakdown {
	bd := Breakdown{
		Edit:         s.editSimilarity(query, candidate),
		TokenOverlap: jaccard(query.Tokens, candidate.Tokens),
		Phonetic:     phoneticOverlap(queryCodes, candidateCodes),
	}
	bd.Composite = s.weights.Edit*bd.Edit +
		s.weights.TokenOverlap*bd.TokenOverlap +
		s.weights.Phonetic*bd.Phonetic
	return bd
}

// editSimilarity runs the edit metric on the joined strings. The raw joined
// form and the sorted-token form are both tried and the better score kept,
// so "putin vladimir" is not punished for token order the way a plain edit
// distance would punish it.
func (s *Scorer) editSimilarity(query, candidate normalize.Name) float64 {
	score := s.edit.Compare(query.Joined, candidate.Joined)
	if len(query.Tokens) > 1 || len(candidate.Tokens) > 1 {
		if sorted := s.edit.Compare(query.SortedJoined(), candidate.SortedJoined()); sorted > score {
			score = sorted
		}
	}
	return score
}

// jaccard computes token-set overlap: |A ∩ B| / |A ∪ B|. Set semantics, so a
// duplicated token in one name cannot double-count, and explicitly
// order-insensitive.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// phoneticOverlap returns the fraction of query tokens whose phonetic codes
// intersect the codes of some candidate token. Pairing is greedy one-to-one:
// each query token consumes at most one candidate token, so a single
// candidate token cannot inflate the score against many query tokens.
func phoneticOverlap(queryCodes, candidateCodes []phonetic.Code) float64 {
	if len(queryCodes) == 0 {
		return 0.0
	}

	consumed := make([]bool, len(candidateCodes))
	matched := 0
	for _, qc := range queryCodes {
		if qc.IsEmpty() {
			continue
		}
		for j, cc := range candidateCodes {
			if consumed[j] {
				continue
			}
			if qc.Overlaps(cc) {
				consumed[j] = true
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(queryCodes))
}
