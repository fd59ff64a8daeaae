package auth

import (
	"context"
	"fmt"
	"time"

	"techexam-cli/session"

	"golang.org/x/crypto/bcrypt"
)

// StaticProvider accepts exactly one identity. Only a bcrypt hash of the
// password is kept. Delay simulates a remote round trip and is cut short
// when ctx ends.
type StaticProvider struct {
	username     string
	passwordHash []byte
	delay        time.Duration
}

// NewStaticProvider creates a provider for identity
func NewStaticProvider(identity Identity, delay time.Duration) (*StaticProvider, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(identity.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash accepted password: %w", err)
	}
	return &StaticProvider{username: identity.Username, passwordHash: hash, delay: delay}, nil
}

// SignIn returns session.ErrInvalidCredentials unless the pair matches exactly
func (p *StaticProvider) SignIn(ctx context.Context, username, password string) error {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	if !p.Recognizes(username, password) {
		return session.ErrInvalidCredentials
	}
	return nil
}

// Recognizes reports whether the pair is the accepted identity
func (p *StaticProvider) Recognizes(username, password string) bool {
	if username != p.username {
		return false
	}
	return bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password)) == nil
}

// Username returns the accepted username
func (p *StaticProvider) Username() string {
	return p.username
}
