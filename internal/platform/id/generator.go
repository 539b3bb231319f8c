package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const maxLength = 64

// Generator creates opaque IDs used to correlate a request across logs and responses.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	reader io.Reader
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{reader: rand.Reader}
}

// NewReaderGenerator draws ID bytes from r instead of crypto/rand.
func NewReaderGenerator(r io.Reader) *RandomGenerator {
	return &RandomGenerator{reader: r}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := io.ReadFull(g.reader, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Valid reports whether a caller-supplied ID is safe to log and echo back.
func Valid(v string) bool {
	if v == "" || len(v) > maxLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
