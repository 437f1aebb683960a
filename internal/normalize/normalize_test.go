package normalize

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"José María", []string{"jose", "maria"}},
		{"VLADIMIR PUTIN", []string{"vladimir", "putin"}},
		{"AL-QAIDA", []string{"qaida"}},
		{"O'Brien", []string{"o", "brien"}},
		{"  John   Smith  ", []string{"john", "smith"}},
		{"Usama bin Muhammad bin Ladin", []string{"usama", "muhammad", "ladin"}},
		{"Müller, Hans-Jürgen", []string{"muller", "hans", "jurgen"}},
		{"J.D. Salinger", []string{"jd", "salinger"}},
		{"", nil},
		{"   ", nil},
		{"!!!", nil},
		{"中国工商银行", nil},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if len(got.Tokens) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got.Tokens, tt.want) {
			t.Errorf("Normalize(%q) tokens = %v, want %v", tt.input, got.Tokens, tt.want)
		}
	}
}

func TestNormalizeKeepsSoleParticle(t *testing.T) {
	// A name must never normalize to empty because of stopword filtering.
	if got := Normalize("De"); len(got.Tokens) != 1 || got.Tokens[0] != "de" {
		t.Errorf("sole particle dropped: %v", got.Tokens)
	}
	if got := Normalize("van der"); len(got.Tokens) != 2 {
		t.Errorf("all-particle name dropped: %v", got.Tokens)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"José María", "Vladimir Putin", "AL-QAIDA", "van der", "O'Brien"}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once.Joined)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Normalize(%q) not idempotent: %v vs %v", input, once, twice)
		}
	}
}

func TestNormalizeJoined(t *testing.T) {
	got := Normalize("José  María")
	if got.Joined != "jose maria" {
		t.Errorf("Joined = %q, want %q", got.Joined, "jose maria")
	}
}

func TestSortedTokens(t *testing.T) {
	n := Normalize("putin vladimir")
	if got := n.SortedJoined(); got != "putin vladimir" {
		t.Errorf("SortedJoined = %q", got)
	}
	// Sorting must not mutate the display order.
	n2 := Normalize("vladimir putin")
	_ = n2.SortedTokens()
	if n2.Tokens[0] != "vladimir" {
		t.Errorf("SortedTokens mutated original order: %v", n2.Tokens)
	}
	if n2.SortedJoined() != "putin vladimir" {
		t.Errorf("SortedJoined = %q", n2.SortedJoined())
	}
}

func TestIsEmpty(t *testing.T) {
	if !Normalize("").IsEmpty() {
		t.Error("empty input should produce an empty Name")
	}
	if Normalize("x").IsEmpty() {
		t.Error("non-empty input should not produce an empty Name")
	}
}
