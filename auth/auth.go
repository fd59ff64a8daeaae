package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"techexam-cli/session"

	"golang.org/x/time/rate"
)

// Login throttling defaults: a burst of attempts, then one per interval.
const (
	DefaultLoginBurst    = 5
	DefaultLoginInterval = 2 * time.Second
)

// NewLoginLimiter returns a limiter with the default login throttling
func NewLoginLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(DefaultLoginInterval), DefaultLoginBurst)
}

// SessionLogin is the part of the session machine the service drives
type SessionLogin interface {
	Login(ctx context.Context, username, password string) error
}

// AuthService handles authentication business logic for the UI and CLI
type AuthService struct {
	session SessionLogin
	limiter *rate.Limiter
}

// Option configures an AuthService
type Option func(*AuthService)

// WithLimiter throttles attempts that reach the session. Blank input is
// rejected before the limiter is consulted.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(s *AuthService) {
		s.limiter = limiter
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(s SessionLogin, opts ...Option) *AuthService {
	svc := &AuthService{session: s}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// AttemptLogin performs the complete login flow
func (s *AuthService) AttemptLogin(ctx context.Context, username, password string) LoginResult {
	if strings.TrimSpace(username) == "" || password == "" {
		return LoginResult{
			Success: false,
			Error:   "Username and password are required",
		}
	}

	if s.limiter != nil && !s.limiter.Allow() {
		return LoginResult{
			Error:     "Too many attempts, try again shortly",
			Throttled: true,
		}
	}

	err := s.session.Login(ctx, username, password)
	switch {
	case err == nil:
		return LoginResult{Success: true}
	case errors.Is(err, session.ErrInvalidCredentials):
		return LoginResult{Error: "Invalid credentials", Rejected: true}
	case errors.Is(err, context.DeadlineExceeded):
		return LoginResult{Error: "Login timed out", TimedOut: true}
	case errors.Is(err, context.Canceled):
		return LoginResult{Error: "Login cancelled", Cancelled: true}
	default:
		return LoginResult{Error: fmt.Sprintf("Failed to save session: %v", err)}
	}
}
