package phonetic

import (
	"reflect"
	"testing"
)

func TestEncodeDeterministic(t *testing.T) {
	for _, token := range []string{"smith", "schmidt", "putin", "jose", "x"} {
		a := Encode(token)
		b := Encode(token)
		if a != b {
			t.Errorf("Encode(%q) not deterministic: %v vs %v", token, a, b)
		}
	}
}

func TestEncodeAllAligned(t *testing.T) {
	tokens := []string{"vladimir", "putin"}
	codes := EncodeAll(tokens)
	if len(codes) != len(tokens) {
		t.Fatalf("EncodeAll returned %d codes for %d tokens", len(codes), len(tokens))
	}
	for i, token := range tokens {
		if !reflect.DeepEqual(codes[i], Encode(token)) {
			t.Errorf("EncodeAll[%d] != Encode(%q)", i, token)
		}
	}
}

func TestSpellingVariantsShareCodeFamily(t *testing.T) {
	pairs := [][2]string{
		{"smith", "schmidt"},
		{"catherine", "katherine"},
		{"mohammed", "muhammad"},
	}
	for _, p := range pairs {
		if !Encode(p[0]).Overlaps(Encode(p[1])) {
			t.Errorf("expected %q and %q to share a phonetic code", p[0], p[1])
		}
	}
}

func TestOverlaps(t *testing.T) {
	smith := Encode("smith")
	if !smith.Overlaps(smith) {
		t.Error("code should overlap itself")
	}
	if smith.Overlaps(Encode("putin")) {
		t.Error("smith and putin should not overlap")
	}
	if smith.Overlaps(Code{}) {
		t.Error("nothing overlaps the empty code")
	}
}

func TestKeys(t *testing.T) {
	smith := Encode("smith")
	keys := smith.Keys()
	if len(keys) == 0 {
		t.Fatal("smith should produce at least one key")
	}
	if keys[0] != smith.Primary {
		t.Errorf("first key should be the primary code, got %q", keys[0])
	}
	seen := make(map[string]struct{})
	for _, k := range keys {
		if k == "" {
			t.Error("Keys must not contain empty codes")
		}
		if _, dup := seen[k]; dup {
			t.Errorf("Keys contains duplicate %q", k)
		}
		seen[k] = struct{}{}
	}
}
