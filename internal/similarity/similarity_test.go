package similarity

import (
	"math"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	f := Levenshtein{}
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"putin", "", 0.0},
		{"putin", "putin", 1.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"vladimir putin", "vladimr puttin", 1.0 - 2.0/14.0},
	}
	for _, tt := range tests {
		if got := f.Compare(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Levenshtein(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshteinSymmetric(t *testing.T) {
	f := Levenshtein{}
	if f.Compare("jose", "josef") != f.Compare("josef", "jose") {
		t.Error("Levenshtein similarity should be symmetric")
	}
}

func TestJaroWinkler(t *testing.T) {
	f := JaroWinkler{}
	if got := f.Compare("putin", "putin"); got != 1.0 {
		t.Errorf("identical strings = %v, want 1.0", got)
	}
	if got := f.Compare("", "putin"); got != 0.0 {
		t.Errorf("empty vs non-empty = %v, want 0.0", got)
	}
	if got := f.Compare("martha", "marhta"); got <= 0.9 {
		t.Errorf("transposed martha/marhta = %v, want > 0.9", got)
	}
}

func TestExactMatch(t *testing.T) {
	f := ExactMatch{}
	if f.Compare("a", "a") != 1.0 || f.Compare("a", "b") != 0.0 {
		t.Error("ExactMatch misbehaves")
	}
}

func TestEditMetric(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"levenshtein", "Levenshtein", false},
		{"", "Levenshtein", false},
		{"jarowinkler", "JaroWinkler", false},
		{"exact", "ExactMatch", false},
		{"soundex", "", true},
	}
	for _, tt := range tests {
		fn, err := EditMetric(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("EditMetric(%q): expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("EditMetric(%q): %v", tt.name, err)
			continue
		}
		if fn.Name() != tt.want {
			t.Errorf("EditMetric(%q) = %s, want %s", tt.name, fn.Name(), tt.want)
		}
	}
}
