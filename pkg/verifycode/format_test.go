package verifycode

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected CodeFormat
	}{
		{name: "Empty", input: "", expected: CodeFormat{Charset: CharsetAlphaNumeric, Length: 8}},
		{name: "Digits", input: "digits-6", expected: CodeFormat{Charset: CharsetDigits, Length: 6}},
		{name: "Lower", input: "lower-12", expected: CodeFormat{Charset: CharsetLower, Length: 12}},
		{name: "Upper", input: "upper-4", expected: CodeFormat{Charset: CharsetUpper, Length: 4}},
		{name: "Alphanum", input: "alphanum-8", expected: CodeFormat{Charset: CharsetAlphaNumeric, Length: 8}},
		{name: "CharsetOnly", input: "digits", expected: CodeFormat{Charset: CharsetDigits, Length: 8}},
		{name: "UnknownCharset", input: "hex-10", expected: CodeFormat{Charset: CharsetAlphaNumeric, Length: 10}},
		{name: "LegacySpelling", input: "alfanum-6", expected: CodeFormat{Charset: CharsetAlphaNumeric, Length: 6}},
		{name: "UppercaseToken", input: "DIGITS-6", expected: CodeFormat{Charset: CharsetAlphaNumeric, Length: 6}},
		{name: "EmptyCharsetToken", input: "-5", expected: CodeFormat{Charset: CharsetAlphaNumeric, Length: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestParseFormat_Invalid(t *testing.T) {
	inputs := []string{"foo-bar", "digits-", "digits-six", "digits-6-7", "digits-0", "lower--3"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseFormat(input)
			require.Error(t, err)

			var formatErr *InvalidFormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, input, formatErr.Format)
		})
	}

	t.Run("NonNumericWrapsStrconv", func(t *testing.T) {
		_, err := ParseFormat("foo-bar")
		var numErr *strconv.NumError
		assert.True(t, errors.As(err, &numErr))
	})

	t.Run("ZeroLength", func(t *testing.T) {
		_, err := ParseFormat("digits-0")
		assert.ErrorIs(t, err, ErrInvalidLength)
	})
}

func TestMustParseFormat(t *testing.T) {
	assert.Equal(t, CodeFormat{Charset: CharsetDigits, Length: 6}, MustParseFormat("digits-6"))
	assert.Panics(t, func() { MustParseFormat("foo-bar") })
}

func TestCodeFormat_String(t *testing.T) {
	assert.Equal(t, "digits-6", MustParseFormat("digits-6").String())
	assert.Equal(t, "alphanum-8", DefaultFormat.String())
}
