package verifycode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCodeInAlphabet(t *testing.T, code, alphabet string) {
	t.Helper()
	for _, c := range code {
		assert.Truef(t, strings.ContainsRune(alphabet, c), "unexpected character %q in %q", c, code)
	}
}

func TestRandomGenerator_Generate(t *testing.T) {
	tests := []struct {
		format   string
		length   int
		alphabet string
	}{
		{format: "digits-6", length: 6, alphabet: digitsAlphabet},
		{format: "lower-12", length: 12, alphabet: lowerAlphabet},
		{format: "upper-4", length: 4, alphabet: upperAlphabet},
		{format: "alphanum-8", length: 8, alphabet: upperAlphabet + lowerAlphabet + digitsAlphabet},
		{format: "", length: 8, alphabet: upperAlphabet + lowerAlphabet + digitsAlphabet},
	}

	generator := NewRandomGenerator()

	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			format := MustParseFormat(tt.format)
			for i := 0; i < 50; i++ {
				code, err := generator.Generate(format)
				require.NoError(t, err)
				assert.Len(t, code, tt.length)
				assertCodeInAlphabet(t, code, tt.alphabet)
			}
		})
	}
}

func TestRandomGenerator_LowerCodesAreLowercase(t *testing.T) {
	code, err := Generate(MustParseFormat("lower-12"))
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(code), code)
}

func TestRandomGenerator_Distinct(t *testing.T) {
	generator := NewRandomGenerator()
	format := MustParseFormat("alphanum-8")

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := generator.Generate(format)
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestRandomGenerator_CoversAlphabet(t *testing.T) {
	generator := NewRandomGenerator()

	counts := make(map[rune]int)
	for i := 0; i < 200; i++ {
		code, err := generator.Generate(MustParseFormat("digits-10"))
		require.NoError(t, err)
		for _, c := range code {
			counts[c]++
		}
	}
	assert.Len(t, counts, len(digitsAlphabet))
}

func TestRandomGenerator_InvalidLength(t *testing.T) {
	_, err := NewRandomGenerator().Generate(CodeFormat{Charset: CharsetDigits})
	var formatErr *InvalidFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestRandomGenerator_ReaderFailure(t *testing.T) {
	generator := NewRandomGenerator(WithReader(bytes.NewReader(nil)))
	_, err := generator.Generate(MustParseFormat("digits-6"))
	assert.Error(t, err)
}
