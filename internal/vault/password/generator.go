// Package password generates high-entropy passwords from a character policy
// and scores the strength of arbitrary password strings. Every operation is a
// pure function of its inputs plus the crypto/rand source; there is no shared
// state between calls.
package password

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
)

// Character categories an alphabet is built from.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Policy selects the character categories and length for generation.
type Policy struct {
	Length    int  `json:"length"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Digits    bool `json:"digits"`
	Symbols   bool `json:"symbols"`
}

// BuildAlphabet concatenates the enabled category sets. A policy with no
// category enabled falls back to the lowercase set instead of failing; the
// fallback is part of the contract, not an accident.
func BuildAlphabet(p Policy) string {
	var b strings.Builder
	if p.Uppercase {
		b.WriteString(Uppercase)
	}
	if p.Lowercase {
		b.WriteString(Lowercase)
	}
	if p.Digits {
		b.WriteString(Digits)
	}
	if p.Symbols {
		b.WriteString(Symbols)
	}
	if b.Len() == 0 {
		return Lowercase
	}
	return b.String()
}

// Generate draws p.Length characters from the policy's alphabet, each chosen
// by an independent uniform pick from crypto/rand. Every position consumes 32
// bits of randomness, which keeps the modulo bias against the at-most-94-rune
// alphabet negligible for password purposes.
func Generate(p Policy) (string, error) {
	if p.Length <= 0 {
		return "", fmt.Errorf("invalid password length: %d", p.Length)
	}

	alphabet := BuildAlphabet(p)

	buf := make([]byte, 4*p.Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random source: %w", err)
	}

	out := make([]byte, p.Length)
	for i := 0; i < p.Length; i++ {
		n := binary.BigEndian.Uint32(buf[4*i:])
		out[i] = alphabet[n%uint32(len(alphabet))]
	}
	return string(out), nil
}
