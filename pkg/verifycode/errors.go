package verifycode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned when the length segment of a code format is not a positive integer
	ErrInvalidLength = errors.New("code length must be a positive integer")

	// ErrEmptyAlphabet is returned when a charset has no characters to draw from
	ErrEmptyAlphabet = errors.New("code charset has no characters")
)

// InvalidFormatError reports a code format string that could not be parsed.
type InvalidFormatError struct {
	Format string
	Err    error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid code format %q: %v", e.Format, e.Err)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}
