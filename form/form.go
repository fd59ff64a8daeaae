// Package form derives the login form's error messages and submit gate from
// the current field values.
package form

import (
	"sync"

	"techexam-cli/validator"
)

// Field identifies a login form input.
type Field int

const (
	NoField Field = iota
	UsernameField
	PasswordField
)

func (f Field) String() string {
	switch f {
	case UsernameField:
		return "username"
	case PasswordField:
		return "password"
	default:
		return "none"
	}
}

// Result is everything the view needs after a field changes.
type Result struct {
	UsernameError *string
	PasswordError *string
	CanSubmit     bool
}

// Recompute derives a Result from the current values alone. A nil value is
// a field the user has not filled in yet and never carries an error.
// Focus is accepted so callers can pass their whole input state; it does not
// change the outcome.
func Recompute(username, password *string, focus Field) Result {
	var res Result
	usernameValid := false
	if username != nil {
		usernameValid = validator.IsValidEmail(*username)
		if !usernameValid {
			msg := validator.InvalidEmailMessage
			res.UsernameError = &msg
		}
	}

	passwordValid := false
	if password != nil {
		if err := validator.ValidatePassword(*password); err != nil {
			if kind, ok := validator.KindOf(err); ok {
				msg := kind.Message()
				res.PasswordError = &msg
			}
		} else {
			passwordValid = true
		}
	}

	res.CanSubmit = usernameValid && passwordValid
	return res
}

// State is the live login form. Every setter recomputes the Result and
// publishes it on the three output streams, subscribers are called
// synchronously on the caller's goroutine. Setters may be called from any
// goroutine; subscribers must not call back into the State.
type State struct {
	// publishing serializes recompute and publish so the streams end on the last write
	publishing sync.Mutex
	mu         sync.Mutex
	username *string
	password *string
	focus    Field

	canSubmit     *Stream[bool]
	usernameError *Stream[*string]
	passwordError *Stream[*string]
}

// NewState returns an empty form with no errors and submit disabled.
func NewState() *State {
	return &State{
		canSubmit:     NewStream(false),
		usernameError: NewStream[*string](nil),
		passwordError: NewStream[*string](nil),
	}
}

// SetUsername replaces the username value
func (s *State) SetUsername(v string) Result {
	s.publishing.Lock()
	defer s.publishing.Unlock()
	s.mu.Lock()
	s.username = &v
	return s.recomputeLocked()
}

// SetPassword replaces the password value
func (s *State) SetPassword(v string) Result {
	s.publishing.Lock()
	defer s.publishing.Unlock()
	s.mu.Lock()
	s.password = &v
	return s.recomputeLocked()
}

// SetFocus records which field has input focus
func (s *State) SetFocus(f Field) Result {
	s.publishing.Lock()
	defer s.publishing.Unlock()
	s.mu.Lock()
	s.focus = f
	return s.recomputeLocked()
}

// Reset forgets both values
func (s *State) Reset() Result {
	s.publishing.Lock()
	defer s.publishing.Unlock()
	s.mu.Lock()
	s.username = nil
	s.password = nil
	s.focus = NoField
	return s.recomputeLocked()
}

// Focus returns the focused field
func (s *State) Focus() Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focus
}

// Result returns the outcome for the current values
func (s *State) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Recompute(s.username, s.password, s.focus)
}

func (s *State) CanSubmit() *Stream[bool]         { return s.canSubmit }
func (s *State) UsernameError() *Stream[*string] { return s.usernameError }
func (s *State) PasswordError() *Stream[*string] { return s.passwordError }

// recomputeLocked is entered with s.publishing and s.mu held and releases s.mu
// before publishing.
func (s *State) recomputeLocked() Result {
	res := Recompute(s.username, s.password, s.focus)
	s.mu.Unlock()

	s.usernameError.publish(res.UsernameError)
	s.passwordError.publish(res.PasswordError)
	s.canSubmit.publish(res.CanSubmit)
	return res
}
