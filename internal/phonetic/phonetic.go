// Package phonetic maps normalized name tokens to coarse pronunciation codes
// so spelling variants that sound alike ("Smith"/"Schmidt") can block and
// score against each other. Codes are produced by Double Metaphone, which
// yields a primary code and, for ambiguous pronunciations, a secondary one.
package phonetic

import "github.com/antzucaro/matchr"

// Code holds the primary and optional secondary Double Metaphone code for a
// single token. Secondary is empty when the pronunciation is unambiguous.
type Code struct {
	Primary   string
	Secondary string
}

// Encode returns the phonetic code(s) for a normalized token. It is a pure
// function: the same token always yields the same codes. Very short or
// vowel-only tokens may produce empty codes.
func Encode(token string) Code {
	p, s := matchr.DoubleMetaphone(token)
	return Code{Primary: p, Secondary: s}
}

// EncodeAll encodes every token in order.
func EncodeAll(tokens []string) []Code {
	codes := make([]Code, len(tokens))
	for i, t := range tokens {
		codes[i] = Encode(t)
	}
	return codes
}

// Keys returns the non-empty codes, for use as blocking keys.
func (c Code) Keys() []string {
	keys := make([]string, 0, 2)
	if c.Primary != "" {
		keys = append(keys, c.Primary)
	}
	if c.Secondary != "" && c.Secondary != c.Primary {
		keys = append(keys, c.Secondary)
	}
	return keys
}

// IsEmpty reports whether the encoder produced no usable code for the token.
func (c Code) IsEmpty() bool {
	return c.Primary == "" && c.Secondary == ""
}

// Overlaps reports whether two codes share any non-empty variant. Codes are
// only ever compared against other codes, never against raw strings.
func (c Code) Overlaps(other Code) bool {
	for _, a := range c.Keys() {
		for _, b := range other.Keys() {
			if a == b {
				return true
			}
		}
	}
	return false
}
