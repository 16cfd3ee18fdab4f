package actiontoken

import "errors"

var (
	ErrMissingSecret  = errors.New("action token secret is required")
	ErrInvalidBaseURL = errors.New("invalid action token base url")

	// ErrInvalidToken is returned for tokens that fail signature or claim validation
	ErrInvalidToken = errors.New("invalid action token")

	// ErrTokenExpired is returned once the token's expiry has passed
	ErrTokenExpired = errors.New("action token has expired")

	// ErrWrongTokenType is returned for a valid token issued for another action
	ErrWrongTokenType = errors.New("unexpected action token type")
)
