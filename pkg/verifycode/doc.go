// Package verifycode parses code format settings and generates
// human-typeable one-time verification codes.
//
// A code format is written as "<charset>-<length>", for example
// "digits-6", "lower-12" or "alphanum-8". The charset token is one of
// lower, upper, digits or alphanum; any other token falls back to
// alphanumeric. When the length is omitted it defaults to 8, and the
// empty string means alphanumeric codes of length 8.
//
// # Basic Usage
//
//	format, err := verifycode.ParseFormat("digits-6")
//	if err != nil {
//		return err // *verifycode.InvalidFormatError
//	}
//
//	generator := verifycode.NewRandomGenerator()
//	code, err := generator.Generate(format)
//
// Formats are parsed once when configuration is loaded, so a malformed
// length is reported at startup rather than on the first request.
package verifycode
