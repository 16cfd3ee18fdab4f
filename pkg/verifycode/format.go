package verifycode

import (
	"fmt"
	"strconv"
	"strings"
)

// Charset identifies the alphabet codes are drawn from.
type Charset int

const (
	CharsetAlphaNumeric Charset = iota
	CharsetLower
	CharsetUpper
	CharsetDigits
)

const (
	lowerAlphabet  = "abcdefghijklmnopqrstuvwxyz"
	upperAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitsAlphabet = "0123456789"
)

// DefaultLength is used when a format omits the length segment.
const DefaultLength = 8

// DefaultFormat is the format used when no code format is configured.
var DefaultFormat = CodeFormat{Charset: CharsetAlphaNumeric, Length: DefaultLength}

// Alphabet returns the characters a code of this charset may contain.
func (c Charset) Alphabet() string {
	switch c {
	case CharsetLower:
		return lowerAlphabet
	case CharsetUpper:
		return upperAlphabet
	case CharsetDigits:
		return digitsAlphabet
	default:
		return upperAlphabet + lowerAlphabet + digitsAlphabet
	}
}

func (c Charset) String() string {
	switch c {
	case CharsetLower:
		return "lower"
	case CharsetUpper:
		return "upper"
	case CharsetDigits:
		return "digits"
	default:
		return "alphanum"
	}
}

// CodeFormat describes the shape of generated codes.
type CodeFormat struct {
	Charset Charset
	Length  int
}

func (f CodeFormat) String() string {
	return fmt.Sprintf("%s-%d", f.Charset, f.Length)
}

// ParseFormat parses a format string such as "digits-6".
//
// The string is split on the first '-'. Unknown charset tokens, including
// the empty token, select alphanumeric codes; token matching is exact.
func ParseFormat(s string) (CodeFormat, error) {
	token, lengthToken, hasLength := strings.Cut(s, "-")

	format := CodeFormat{
		Charset: parseCharset(token),
		Length:  DefaultLength,
	}

	if hasLength {
		length, err := strconv.Atoi(lengthToken)
		if err != nil {
			return CodeFormat{}, &InvalidFormatError{Format: s, Err: err}
		}
		if length <= 0 {
			return CodeFormat{}, &InvalidFormatError{Format: s, Err: ErrInvalidLength}
		}
		format.Length = length
	}

	return format, nil
}

// MustParseFormat is like ParseFormat but panics on error.
func MustParseFormat(s string) CodeFormat {
	format, err := ParseFormat(s)
	if err != nil {
		panic(err)
	}
	return format
}

func parseCharset(token string) Charset {
	switch token {
	case "lower":
		return CharsetLower
	case "upper":
		return CharsetUpper
	case "digits":
		return CharsetDigits
	default:
		return CharsetAlphaNumeric
	}
}
