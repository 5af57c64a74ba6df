// Package idgen mints opaque entity identifiers. It performs no
// server-side uniqueness check: collision resistance rests on the
// probabilistic argument of a 21-character draw from a 62-character
// alphabet (roughly 62^21 possibilities). Uniqueness is additionally
// enforced at the graph level by an `id` uniqueness constraint per label.
package idgen

import (
	"crypto/rand"
	"math/big"
)

const (
	alphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	idLength  = 21
)

// Source generates opaque ids. It is safe for concurrent use.
type Source struct{}

// New returns a Source. There is no state to construct: every call to
// Generate draws fresh randomness from crypto/rand.
func New() *Source { return &Source{} }

// Generate returns a new 21-character id.
func (s *Source) Generate() string {
	return generate(idLength)
}

func generate(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform's entropy source is
			// broken; there is no safe degraded mode for id generation.
			panic("idgen: crypto/rand unavailable: " + err.Error())
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}

// GenerateSecret returns a 43-character random token suitable for an API
// key's raw secret value, per original_source/functions/database/api_key_database.py
// (secrets.token_urlsafe(32) yields a 32-byte value base64url-encoded to 43
// chars). It draws from the same alphabet as entity ids but is never used
// for entity ids: keeping the two generators distinct means rotating the
// id alphabet or length never touches secret material, and vice versa.
func GenerateSecret() string {
	return generate(43)
}
