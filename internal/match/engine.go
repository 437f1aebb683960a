// Package match orchestrates sanctions screening: normalize the query,
// retrieve blocking candidates, score each candidate variant, apply the
// country filter, and rank and threshold into a decision.
package match

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/devbrewai/veritas/internal/config"
	"github.com/devbrewai/veritas/internal/normalize"
	"github.com/devbrewai/veritas/internal/phonetic"
	"github.com/devbrewai/veritas/internal/similarity"
	"github.com/devbrewai/veritas/internal/watchlist"
)

// Decision classifies the top candidate's adjusted composite score.
type Decision string

const (
	DecisionNoMatch Decision = "no_match"
	DecisionReview  Decision = "review"
	DecisionMatch   Decision = "match"
)

// Candidate is one scored watchlist entry in a screening result. Multiple
// variant hits for the same entry are collapsed to the single best variant
// before ranking.
type Candidate struct {
	EntryID        string               `json:"entry_id"`
	PrimaryName    string               `json:"primary_name"`
	MatchedVariant string               `json:"matched_variant"`
	ListSource     string               `json:"list_source"`
	Countries      []string             `json:"countries,omitempty"`
	Scores         similarity.Breakdown `json:"scores"`

	// CountryFiltered is set when a country hint mismatched the entry's
	// country metadata. The composite score is penalized rather than the
	// candidate excluded, because watchlist country data is unreliable.
	CountryFiltered bool `json:"country_filtered,omitempty"`
}

// Result is the outcome of screening one name against one snapshot.
type Result struct {
	QueryName       string      `json:"query_name"`
	NormalizedQuery string      `json:"normalized_query"`
	Candidates      []Candidate `json:"candidates"`
	Decision        Decision    `json:"decision"`
	TopScore        float64     `json:"top_score"`
	SnapshotVersion string      `json:"snapshot_version"`
}

// Query is one batch screening request.
type Query struct {
	Name        string `json:"name"`
	CountryHint string `json:"country_hint,omitempty"`
}

// BatchItem pairs a batch result with its per-request error, positionally
// aligned with the input queries. A malformed name rejects only its own slot.
type BatchItem struct {
	Result *Result
	Err    error
}

// Engine is the screening entry point. It holds validated policy and a
// scorer; it does no I/O, keeps no mutable state, and is safe for unbounded
// concurrent use.
type Engine struct {
	cfg        *config.Config
	scorer     *similarity.Scorer
	sourceRank map[string]int
}

// NewEngine validates the configuration and builds an engine. Configuration
// problems fail here, never at query time.
func NewEngine(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("screening configuration: %w", err)
	}

	edit, err := similarity.EditMetric(cfg.Screening.EditMetric)
	if err != nil {
		return nil, fmt.Errorf("screening configuration: %w", err)
	}

	rank := make(map[string]int, len(cfg.Screening.SourcePriority))
	for i, src := range cfg.Screening.SourcePriority {
		rank[src] = i
	}

	return &Engine{
		cfg: cfg,
		scorer: similarity.NewScorer(edit, similarity.Weights{
			Edit:         cfg.Screening.EditWeight,
			TokenOverlap: cfg.Screening.TokenWeight,
			Phonetic:     cfg.Screening.PhoneticWeight,
		}),
		sourceRank: rank,
	}, nil
}

// Screen screens a single name against the snapshot. countryHint is an
// optional ISO country code; empty means no hint. The full ranked top-N list
// is returned even when the decision is no_match, so reviewers can see
// near-misses.
func (e *Engine) Screen(queryName, countryHint string, snap *watchlist.Snapshot) (*Result, error) {
	if snap == nil || snap.Len() == 0 {
		return nil, ErrSnapshotUnavailable
	}

	query := normalize.Normalize(queryName)
	if query.IsEmpty() {
		return nil, fmt.Errorf("screening %q: %w", queryName, ErrInvalidInput)
	}

	candidates := e.scoreCandidates(query, countryHint, snap)
	e.rank(candidates)

	return e.buildResult(queryName, query, candidates, snap), nil
}

// ScreenProfile screens a name together with caller-supplied aliases (for
// example other spellings from an identity document) and merges the results,
// keeping each entry's best score across all queried spellings. The primary
// name must be valid; aliases that normalize to empty are skipped.
func (e *Engine) ScreenProfile(queryName string, aliases []string, countryHint string, snap *watchlist.Snapshot) (*Result, error) {
	if snap == nil || snap.Len() == 0 {
		return nil, ErrSnapshotUnavailable
	}

	query := normalize.Normalize(queryName)
	if query.IsEmpty() {
		return nil, fmt.Errorf("screening %q: %w", queryName, ErrInvalidInput)
	}

	merged := e.scoreCandidates(query, countryHint, snap)
	byEntry := make(map[string]int, len(merged))
	for i, c := range merged {
		byEntry[c.EntryID] = i
	}

	for _, alias := range aliases {
		name := normalize.Normalize(alias)
		if name.IsEmpty() {
			continue
		}
		for _, c := range e.scoreCandidates(name, countryHint, snap) {
			if i, ok := byEntry[c.EntryID]; ok {
				if c.Scores.Composite > merged[i].Scores.Composite {
					merged[i] = c
				}
				continue
			}
			byEntry[c.EntryID] = len(merged)
			merged = append(merged, c)
		}
	}

	e.rank(merged)
	return e.buildResult(queryName, query, merged, snap), nil
}

// ScreenBatch screens many names against the same snapshot in parallel.
// Results are positionally aligned with the queries regardless of completion
// order, and each malformed name rejects only its own slot.
func (e *Engine) ScreenBatch(queries []Query, snap *watchlist.Snapshot) []BatchItem {
	items := make([]BatchItem, len(queries))

	var g errgroup.Group
	g.SetLimit(e.cfg.Batch.Workers)
	for i, q := range queries {
		g.Go(func() error {
			items[i].Result, items[i].Err = e.Screen(q.Name, q.CountryHint, snap)
			return nil
		})
	}
	// Workers never return errors; per-request failures live in the items.
	_ = g.Wait()

	return items
}

// scoreCandidates retrieves blocking candidates, scores each variant against
// the query, applies the country penalty, and collapses multiple variant
// hits per entry down to the best-scoring one.
func (e *Engine) scoreCandidates(query normalize.Name, countryHint string, snap *watchlist.Snapshot) []Candidate {
	queryCodes := phonetic.EncodeAll(query.Tokens)
	refs := snap.Candidates(query.Tokens, queryCodes, e.cfg.Blocking.CandidateCeiling)

	best := make(map[int]Candidate)
	order := make([]int, 0, len(refs))

	for _, vi := range refs {
		variant := snap.Variant(vi)
		entry := snap.Entry(variant.EntryIdx)

		scores := e.scorer.Score(query, variant.Name, queryCodes, variant.Codes)

		filtered := countryHint != "" && len(entry.CountryCodes) > 0 && !entry.HasCountry(countryHint)
		if filtered {
			scores.Composite *= e.cfg.Screening.CountryPenalty
		}

		prev, seen := best[variant.EntryIdx]
		if !seen {
			order = append(order, variant.EntryIdx)
		}
		if !seen || scores.Composite > prev.Scores.Composite {
			best[variant.EntryIdx] = Candidate{
				EntryID:         entry.ID,
				PrimaryName:     entry.PrimaryName,
				MatchedVariant:  variant.Display,
				ListSource:      entry.ListSource,
				Countries:       entry.Countries(),
				Scores:          scores,
				CountryFiltered: filtered,
			}
		}
	}

	out := make([]Candidate, 0, len(order))
	for _, entryIdx := range order {
		out = append(out, best[entryIdx])
	}
	return out
}

// rank sorts candidates by adjusted composite score descending. Ties prefer
// the higher-priority list source, then the lexicographically smaller entry
// ID, so rankings are stable across runs.
func (e *Engine) rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Scores.Composite != b.Scores.Composite {
			return a.Scores.Composite > b.Scores.Composite
		}
		if ra, rb := e.rankOf(a.ListSource), e.rankOf(b.ListSource); ra != rb {
			return ra < rb
		}
		return a.EntryID < b.EntryID
	})
}

// rankOf returns the priority rank of a list source; sources absent from the
// configured priority order rank after all configured ones.
func (e *Engine) rankOf(source string) int {
	if r, ok := e.sourceRank[source]; ok {
		return r
	}
	return len(e.sourceRank)
}

// buildResult applies the decision thresholds to the top candidate and
// truncates the ranked list to top-N.
func (e *Engine) buildResult(queryName string, query normalize.Name, candidates []Candidate, snap *watchlist.Snapshot) *Result {
	result := &Result{
		QueryName:       queryName,
		NormalizedQuery: query.Joined,
		Decision:        DecisionNoMatch,
		SnapshotVersion: snap.Version,
	}

	if len(candidates) > 0 {
		result.TopScore = candidates[0].Scores.Composite
		result.Decision = e.decide(result.TopScore)
	}

	if len(candidates) > e.cfg.Screening.TopN {
		candidates = candidates[:e.cfg.Screening.TopN]
	}
	result.Candidates = candidates

	return result
}

// decide maps the top candidate's adjusted score onto a decision label.
func (e *Engine) decide(score float64) Decision {
	switch {
	case score >= e.cfg.Screening.MatchThreshold:
		return DecisionMatch
	case score >= e.cfg.Screening.ReviewThreshold:
		return DecisionReview
	default:
		return DecisionNoMatch
	}
}
