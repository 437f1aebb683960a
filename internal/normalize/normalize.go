// Package normalize canonicalizes raw name strings into a comparable form.
//
// Normalization is the shared front door for both index construction and
// query handling: every name on either side of a comparison passes through
// Normalize first, so downstream scorers only ever see lowercase, accent-free,
// whitespace-collapsed tokens.
package normalize

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and removes combining marks, turning
// "José" into "jose" and "Müller" into "muller".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// particles are common name connectives dropped during tokenization. They
// carry little discriminating power and differ wildly between transliteration
// conventions ("bin" vs "ibn", "de la" vs "della").
var particles = map[string]struct{}{
	"de":  {},
	"da":  {},
	"del": {},
	"der": {},
	"la":  {},
	"le":  {},
	"van": {},
	"von": {},
	"bin": {},
	"ibn": {},
	"abu": {},
	"al":  {},
	"el":  {},
}

// Name is the normalized form of a raw name string. Tokens preserve the
// original word order for display; use SortedTokens for order-insensitive
// comparison.
type Name struct {
	Tokens []string
	Joined string
}

// IsEmpty reports whether normalization produced no tokens. Callers must
// treat an empty Name as invalid input, not as a valid no-match query.
func (n Name) IsEmpty() bool {
	return len(n.Tokens) == 0
}

// SortedTokens returns a lexicographically sorted copy of the tokens.
func (n Name) SortedTokens() []string {
	sorted := make([]string, len(n.Tokens))
	copy(sorted, n.Tokens)
	sort.Strings(sorted)
	return sorted
}

// SortedJoined returns the sorted tokens joined by single spaces.
func (n Name) SortedJoined() string {
	return strings.Join(n.SortedTokens(), " ")
}

// Normalize canonicalizes a raw name string:
//  1. Unicode-decompose and strip diacritics
//  2. Lowercase
//  3. Map intra-token hyphens/apostrophes to a space, drop other punctuation
//  4. Collapse whitespace and split into tokens
//  5. Drop particle stopwords, but never all tokens
//
// Sanctions lists publish romanized names, so characters outside a-z0-9
// are dropped after accent stripping.
func Normalize(raw string) Name {
	stripped, _, err := transform.String(stripMarks, raw)
	if err != nil {
		// The transform chain is total over valid UTF-8; on malformed input
		// fall back to the raw bytes and let the character filter handle it.
		stripped = raw
	}

	lower := strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '\'' || unicode.IsSpace(r):
			b.WriteByte(' ')
		}
		// Everything else (other punctuation, non-Latin scripts) is dropped.
	}

	tokens := strings.Fields(b.String())
	tokens = dropParticles(tokens)

	return Name{
		Tokens: tokens,
		Joined: strings.Join(tokens, " "),
	}
}

// dropParticles filters particle stopwords from tokens. A name must never
// normalize to empty because of stopword filtering, so if every token is a
// particle the original tokens are kept.
func dropParticles(tokens []string) []string {
	if len(tokens) <= 1 {
		return tokens
	}

	kept := tokens[:0:0]
	for _, t := range tokens {
		if _, ok := particles[t]; !ok {
			kept = append(kept, t)
		}
	}

	if len(kept) == 0 {
		return tokens
	}
	return kept
}
