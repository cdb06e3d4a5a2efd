package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind error
	}{
		{"missing field", ErrMissingField, ErrValidation},
		{"missing token", ErrMissingToken, ErrMissingField},
		{"invalid email", ErrInvalidEmail, ErrValidation},
		{"invalid phone", ErrInvalidPhone, ErrValidation},
		{"duplicate username", ErrDuplicateUsername, ErrConflict},
		{"user not found", ErrUserNotFound, ErrAuthentication},
		{"incorrect password", ErrIncorrectPassword, ErrAuthentication},
		{"incorrect username", ErrIncorrectUsername, ErrAuthentication},
		{"token mismatch", ErrTokenMismatch, ErrAuthentication},
	}

	for _, tc := range cases {
		wrapped := fmt.Errorf("handler: %w", tc.err)
		if !errors.Is(wrapped, tc.kind) {
			t.Fatalf("%s: expected error to wrap its kind", tc.name)
		}
		if !errors.Is(wrapped, tc.err) {
			t.Fatalf("%s: expected error to match itself through wrapping", tc.name)
		}
	}
}

func TestMissingFieldErrorUnwrap(t *testing.T) {
	err := error(&MissingFieldError{Fields: []string{"email", "phone"}})

	if !errors.Is(err, ErrMissingField) || !errors.Is(err, ErrValidation) {
		t.Fatalf("expected missing field error to unwrap to validation kinds")
	}
	if err.Error() != "missing required field(s): email, phone" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	var missing *MissingFieldError
	if !errors.As(fmt.Errorf("wrap: %w", err), &missing) || len(missing.Fields) != 2 {
		t.Fatalf("expected errors.As to recover the field list")
	}
}

func TestAccountLoggedIn(t *testing.T) {
	account := Account{Username: "ann"}
	if account.LoggedIn() {
		t.Fatal("new account must be logged out")
	}

	token := "abc"
	account.SessionToken = &token
	if !account.LoggedIn() {
		t.Fatal("account with token must be logged in")
	}

	account.PasswordCiphertext = "cipher"
	sanitized := account.Sanitized()
	if sanitized.PasswordCiphertext != "" || sanitized.SessionToken != nil {
		t.Fatalf("sanitized copy leaked credentials: %+v", sanitized)
	}
	if account.SessionToken == nil {
		t.Fatal("sanitizing must not mutate the original")
	}
}
