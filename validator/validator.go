// Package validator holds the stateless rules applied to login form input.
package validator

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted.
const MinPasswordLength = 8

// InvalidEmailMessage is shown under the username field when it is not an email address.
const InvalidEmailMessage = "Please Input Valid Email"

// emailPattern accepts local@label(.label)+ where every domain label is 1-63
// alphanumerics with optional internal hyphens.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+" +
		"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$",
)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	if s == "" {
		return false
	}
	return emailPattern.MatchString(s)
}

// PasswordErrorKind identifies which password rule failed.
type PasswordErrorKind int

const (
	TooShort PasswordErrorKind = iota + 1
	MissingUppercase
	MissingLowercase
	MissingDigit
)

// String returns a short identifier for the kind
func (k PasswordErrorKind) String() string {
	switch k {
	case TooShort:
		return "too_short"
	case MissingUppercase:
		return "missing_uppercase"
	case MissingLowercase:
		return "missing_lowercase"
	case MissingDigit:
		return "missing_digit"
	default:
		return "unknown"
	}
}

// Message returns the text shown to the user for the kind
func (k PasswordErrorKind) Message() string {
	switch k {
	case TooShort:
		return "Needs at least eight characters"
	case MissingUppercase:
		return "Needs at least one uppercase"
	case MissingLowercase:
		return "Needs at least one lowercase"
	case MissingDigit:
		return "Needs at least one number"
	default:
		return "Invalid password"
	}
}

// PasswordError is returned by ValidatePassword.
type PasswordError struct {
	Kind PasswordErrorKind
}

func (e *PasswordError) Error() string {
	return "password: " + e.Kind.Message()
}

// Is lets errors.Is match against the Err* sentinels by kind.
func (e *PasswordError) Is(target error) bool {
	var other *PasswordError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// Sentinels usable with errors.Is.
var (
	ErrTooShort         error = &PasswordError{Kind: TooShort}
	ErrMissingUppercase error = &PasswordError{Kind: MissingUppercase}
	ErrMissingLowercase error = &PasswordError{Kind: MissingLowercase}
	ErrMissingDigit     error = &PasswordError{Kind: MissingDigit}
)

// ValidatePassword checks s against the password rules in order and returns
// the first failure, or nil when every rule passes.
func ValidatePassword(s string) error {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return &PasswordError{Kind: TooShort}
	}

	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}

	switch {
	case !upper:
		return &PasswordError{Kind: MissingUppercase}
	case !lower:
		return &PasswordError{Kind: MissingLowercase}
	case !digit:
		return &PasswordError{Kind: MissingDigit}
	}
	return nil
}

// KindOf extracts the failed rule from an error returned by ValidatePassword.
func KindOf(err error) (PasswordErrorKind, bool) {
	var pe *PasswordError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
