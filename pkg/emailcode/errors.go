package emailcode

import "errors"

var (
	// ErrMissingDependency is returned by NewController when a required collaborator is nil
	ErrMissingDependency = errors.New("missing controller dependency")

	// ErrTestCodeRequired is returned when test accounts are configured without a test code
	ErrTestCodeRequired = errors.New("test accounts require a test code")

	// ErrLinkEmailMismatch is returned when a fallback link was issued for a different email
	ErrLinkEmailMismatch = errors.New("link was issued for a different email")
)
