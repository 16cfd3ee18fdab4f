package user

import "errors"

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when the email is already registered
	ErrUserAlreadyExists = errors.New("user already exists")

	ErrInvalidEmail = errors.New("invalid email address")
)
