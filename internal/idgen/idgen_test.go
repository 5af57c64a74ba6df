package idgen

import "testing"

func TestGenerateLength(t *testing.T) {
	s := New()
	id := s.Generate()
	if len(id) != 21 {
		t.Fatalf("expected 21-character id, got %d: %q", len(id), id)
	}
	for _, r := range id {
		if !containsRune(alphabet, r) {
			t.Fatalf("id %q contains character %q outside alphabet", id, r)
		}
	}
}

func TestGenerateUnique(t *testing.T) {
	s := New()
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := s.Generate()
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateSecretLength(t *testing.T) {
	secret := GenerateSecret()
	if len(secret) != 43 {
		t.Fatalf("expected 43-character secret, got %d", len(secret))
	}
}

func TestGenerateSecretDistinctFromIDs(t *testing.T) {
	if GenerateSecret() == New().Generate() {
		t.Fatalf("secret and id generators collided, which crypto/rand makes implausible")
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
