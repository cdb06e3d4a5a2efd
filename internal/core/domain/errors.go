package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error surfaced by the core wraps exactly one of them.
var (
	// ErrValidation marks missing or malformed client input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a request that collides with existing state.
	ErrConflict = errors.New("conflict")
	// ErrAuthentication marks failed credential or token checks.
	ErrAuthentication = errors.New("authentication failed")
	// ErrCipher marks ciphertext that cannot be decrypted with the configured key.
	ErrCipher = errors.New("cipher failure")
	// ErrConfiguration marks missing or invalid process configuration.
	ErrConfiguration = errors.New("invalid configuration")
)

var (
	// ErrMissingField indicates a required payload field was absent.
	ErrMissingField = fmt.Errorf("%w: missing required field", ErrValidation)
	// ErrMissingToken indicates logout was requested without a session token.
	ErrMissingToken = fmt.Errorf("%w: token", ErrMissingField)
	// ErrInvalidField indicates a required payload field had a non-string value.
	ErrInvalidField = fmt.Errorf("%w: field must be a string", ErrValidation)
	// ErrInvalidEmail indicates the email does not look like local@domain.tld.
	ErrInvalidEmail = fmt.Errorf("%w: email address is invalid", ErrValidation)
	// ErrInvalidPhone indicates the phone is not a 10-digit number without a leading zero.
	ErrInvalidPhone = fmt.Errorf("%w: phone number is invalid", ErrValidation)

	// ErrDuplicateUsername indicates the username is taken, ignoring letter case.
	ErrDuplicateUsername = fmt.Errorf("%w: username already exists", ErrConflict)

	// ErrUserNotFound indicates login was attempted for an unknown username.
	ErrUserNotFound = fmt.Errorf("%w: username not found", ErrAuthentication)
	// ErrIncorrectPassword indicates the supplied password did not match the stored one.
	ErrIncorrectPassword = fmt.Errorf("%w: incorrect password", ErrAuthentication)
	// ErrIncorrectUsername indicates logout was attempted for an unknown username.
	ErrIncorrectUsername = fmt.Errorf("%w: incorrect username", ErrAuthentication)
	// ErrTokenMismatch indicates the supplied token is not the account's current session token.
	ErrTokenMismatch = fmt.Errorf("%w: token error / user already logged out", ErrAuthentication)
)

// MissingFieldError lists the required fields absent from a payload.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Fields, ", "))
}

// Unwrap allows errors.Is(err, ErrMissingField) and errors.Is(err, ErrValidation).
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// InvalidFieldError names a field whose value has the wrong type.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field %q must be a string", e.Field)
}

// Unwrap allows errors.Is(err, ErrInvalidField).
func (e *InvalidFieldError) Unwrap() error {
	return ErrInvalidField
}
