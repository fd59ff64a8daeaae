// Package session decides whether the user must log in, and owns the
// login/logout transitions over the credential store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"techexam-cli/store"

	"github.com/sirupsen/logrus"
)

// ErrInvalidCredentials is returned by Login when the authenticator rejects the pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// State is the derived session state
type State int

const (
	Unknown State = iota
	NeedsLogin
	Authenticated
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case NeedsLogin:
		return "needs_login"
	case Authenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// Authenticator checks a username/password pair.
type Authenticator interface {
	// SignIn returns ErrInvalidCredentials for a rejected pair and ctx.Err()
	// when cancelled.
	SignIn(ctx context.Context, username, password string) error
	// Recognizes reports whether a stored pair still identifies a signed-in user.
	Recognizes(username, password string) bool
}

// CredentialStore is the part of store.Store the machine needs.
type CredentialStore interface {
	Get() store.Credentials
	Set(store.Credentials) error
	Clear() error
}

// Transition records one state change
type Transition struct {
	From   State
	To     State
	Reason string
	At     time.Time
}

// Machine serializes every transition through a single turn.
type Machine struct {
	store CredentialStore
	auth  Authenticator
	log   logrus.FieldLogger
	hooks []func(Transition)
	now   func() time.Time

	// turn holds one token; a transition runs only while it owns it.
	turn chan struct{}

	mu      sync.RWMutex
	current State
	history []Transition
}

// Option configures a Machine
type Option func(*Machine)

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Machine) {
		m.log = log
	}
}

// WithTransitionHook calls fn after every recorded transition, while the turn is still held.
func WithTransitionHook(fn func(Transition)) Option {
	return func(m *Machine) {
		m.hooks = append(m.hooks, fn)
	}
}

// NewMachine creates a machine in the Unknown state
func NewMachine(s CredentialStore, auth Authenticator, opts ...Option) *Machine {
	m := &Machine{
		store: s,
		auth:  auth,
		log:   logrus.StandardLogger(),
		now:   time.Now,
		turn:  make(chan struct{}, 1),
	}
	m.turn <- struct{}{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the state
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// History returns a copy of all recorded transitions
func (m *Machine) History() []Transition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Transition, len(m.history))
	copy(out, m.history)
	return out
}

// Evaluate derives the state from the stored credentials. Falling back to
// NeedsLogin from Unknown wipes whatever partial session is stored.
func (m *Machine) Evaluate() State {
	m.acquire()
	defer m.release()

	creds := m.store.Get()
	from := m.Current()

	if creds.Username != nil && creds.Password != nil && m.auth.Recognizes(*creds.Username, *creds.Password) {
		m.transition(from, Authenticated, "evaluate")
		return Authenticated
	}

	if from == Unknown {
		if err := m.store.Clear(); err != nil {
			m.log.WithError(err).Warn("failed to clear stale session")
		}
	}
	m.transition(from, NeedsLogin, "evaluate")
	return NeedsLogin
}

// Login authenticates the pair and on success stores it and moves to
// Authenticated. On any error neither the store nor the state change.
func (m *Machine) Login(ctx context.Context, username, password string) error {
	if err := m.acquireCtx(ctx); err != nil {
		return err
	}
	defer m.release()

	log := m.log.WithField("username", username)

	if err := m.auth.SignIn(ctx, username, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Info("login rejected")
		} else {
			log.WithError(err).Warn("login aborted")
		}
		return err
	}
	// A cancellation racing a successful sign-in still leaves no trace.
	if err := ctx.Err(); err != nil {
		log.WithError(err).Warn("login aborted after sign-in")
		return err
	}

	if err := m.store.Set(store.NewCredentials(username, password)); err != nil {
		log.WithError(err).Error("failed to store credentials")
		return fmt.Errorf("store credentials: %w", err)
	}

	m.transition(m.Current(), Authenticated, "login")
	log.Info("login succeeded")
	return nil
}

// Logout clears the store and moves to NeedsLogin. Store failures are logged.
func (m *Machine) Logout() State {
	m.acquire()
	defer m.release()

	if err := m.store.Clear(); err != nil {
		m.log.WithError(err).Error("failed to clear session on logout")
	}
	m.transition(m.Current(), NeedsLogin, "logout")
	return NeedsLogin
}

func (m *Machine) acquire() {
	<-m.turn
}

func (m *Machine) acquireCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-m.turn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Machine) release() {
	m.turn <- struct{}{}
}

func (m *Machine) transition(from, to State, reason string) {
	t := Transition{From: from, To: to, Reason: reason, At: m.now()}

	m.mu.Lock()
	m.current = to
	m.history = append(m.history, t)
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	}).Debug("session transition")

	for _, hook := range m.hooks {
		hook(t)
	}
}
