package similarity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
)

// Function represents a string similarity function interface
type Function interface {
	// Compare returns a similarity score between 0.0 and 1.0,
	// where 0.0 means completely different and 1.0 means identical
	Compare(a, b string) float64
	// Name returns the name of the similarity function
	Name() string
}

// Levenshtein calculates similarity from normalized edit distance.
// Good for catching misspellings and transliteration drift.
type Levenshtein struct{}

func (f Levenshtein) Compare(a, b string) float64 {
	// Handle empty strings
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	// Convert distance to similarity score (0-1)
	return 1.0 - float64(distance)/float64(maxLen)
}

func (f Levenshtein) Name() string {
	return "Levenshtein"
}

// JaroWinkler wraps the Jaro-Winkler similarity algorithm, which favors
// strings sharing a common prefix. An alternative edit metric for
// deployments that weight leading-character agreement more heavily.
type JaroWinkler struct{}

func (f JaroWinkler) Compare(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return matchr.JaroWinkler(a, b, false)
}

func (f JaroWinkler) Name() string {
	return "JaroWinkler"
}

// ExactMatch checks if two strings are exactly equal
type ExactMatch struct{}

func (f ExactMatch) Compare(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return 0.0
}

func (f ExactMatch) Name() string {
	return "ExactMatch"
}

// EditMetric returns the edit-similarity function registered under the given
// name. The scorer depends only on the Function interface, so any
// implementation can be swapped in via configuration.
func EditMetric(name string) (Function, error) {
	switch strings.ToLower(name) {
	case "", "levenshtein", "editdistance":
		return Levenshtein{}, nil
	case "jaro", "jarowinkler":
		return JaroWinkler{}, nil
	case "exact", "exactmatch":
		return ExactMatch{}, nil
	default:
		return nil, fmt.Errorf("unknown edit metric %q", name)
	}
}
