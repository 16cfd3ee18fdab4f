package sessions

import "errors"

var (
	// ErrSessionNotFound is returned when the session does not exist or has expired
	ErrSessionNotFound = errors.New("authentication session not found")

	// ErrInvalidCompoundID is returned when a compound session id cannot be parsed
	ErrInvalidCompoundID = errors.New("invalid compound session id")

	// ErrClientIDRequired is returned when a session is created without a client
	ErrClientIDRequired = errors.New("client_id is required")
)
