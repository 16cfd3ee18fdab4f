package verifycode

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Generator produces verification codes for a format.
type Generator interface {
	Generate(format CodeFormat) (string, error)
}

// RandomGenerator draws every character independently and uniformly
// from the format's alphabet.
type RandomGenerator struct {
	reader io.Reader
}

// GeneratorOption configures a RandomGenerator
type GeneratorOption func(*RandomGenerator)

// WithReader replaces the random source. The reader must be
// cryptographically secure outside of tests.
func WithReader(r io.Reader) GeneratorOption {
	return func(g *RandomGenerator) {
		g.reader = r
	}
}

// NewRandomGenerator creates a generator backed by crypto/rand.
func NewRandomGenerator(opts ...GeneratorOption) *RandomGenerator {
	g := &RandomGenerator{
		reader: rand.Reader,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate returns a code of exactly format.Length characters.
func (g *RandomGenerator) Generate(format CodeFormat) (string, error) {
	if format.Length <= 0 {
		return "", &InvalidFormatError{Format: format.String(), Err: ErrInvalidLength}
	}

	alphabet := format.Charset.Alphabet()
	if alphabet == "" {
		return "", ErrEmptyAlphabet
	}

	var b strings.Builder
	b.Grow(format.Length)

	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < format.Length; i++ {
		n, err := rand.Int(g.reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}

	return b.String(), nil
}

// Generate creates a code with the default random generator.
func Generate(format CodeFormat) (string, error) {
	return NewRandomGenerator().Generate(format)
}
