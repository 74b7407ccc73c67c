package models

import "errors"

var (
	ErrNoRecord = errors.New("models: no matching record found")

	// ErrInvalidCredentials is returned when a login uses an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("models: invalid credentials")

	ErrDuplicateEmail = errors.New("models: duplicate email")

	// ErrAlreadyEnrolled is returned when an email is enrolled in the same course twice.
	ErrAlreadyEnrolled = errors.New("models: already enrolled")
)
