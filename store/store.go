// Package store persists the remembered session (username, password and
// session flags) and notifies subscribers when the credentials change.
package store

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Backend keys
const (
	usernameKey = "userName"
	passwordKey = "password"
	flagPrefix  = "flag."
)

// FlagWelcomeSeen is set once the home screen has greeted the user.
const FlagWelcomeSeen = "welcome_seen"

// Credentials is the remembered username/password pair. A nil field means
// the value is not stored.
type Credentials struct {
	Username *string
	Password *string
}

// NewCredentials builds a fully populated pair
func NewCredentials(username, password string) Credentials {
	return Credentials{Username: &username, Password: &password}
}

// IsEmpty reports whether neither field is stored
func (c Credentials) IsEmpty() bool {
	return c.Username == nil && c.Password == nil
}

// Equal compares values, not pointers
func (c Credentials) Equal(other Credentials) bool {
	return equalPtr(c.Username, other.Username) && equalPtr(c.Password, other.Password)
}

// UsernameOrEmpty returns the username or "" when absent
func (c Credentials) UsernameOrEmpty() string {
	if c.Username == nil {
		return ""
	}
	return *c.Username
}

// PasswordOrEmpty returns the password or "" when absent
func (c Credentials) PasswordOrEmpty() string {
	if c.Password == nil {
		return ""
	}
	return *c.Password
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Change is delivered to subscribers after every Set or Clear.
type Change struct {
	New Credentials
	Old Credentials
}

// Subscription is returned by Subscribe. Cancel stops further deliveries.
type Subscription struct {
	id        uint64
	fn        func(Change)
	store     *Store
	cancelled atomic.Bool
}

// Cancel stops delivery to this subscriber. Deliveries already running may still complete.
func (s *Subscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.store.remove(s.id)
}

// Store serializes every read and write of the remembered session through one lock.
type Store struct {
	mu        sync.Mutex
	backend   Backend
	scheduler Scheduler
	log       logrus.FieldLogger
	subs      []*Subscription
	nextID    uint64
	flags     map[string]struct{}
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for backend failures
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates a store on top of backend. Change notifications are handed to
// scheduler, which must not run them before Schedule returns.
func New(backend Backend, scheduler Scheduler, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		scheduler: scheduler,
		log:       logrus.StandardLogger(),
		flags:     map[string]struct{}{FlagWelcomeSeen: {}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the stored credentials. Backend failures read as absent values.
func (s *Store) Get() Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Set stores c, deleting the key of every nil field, and notifies subscribers.
// Both fields are written together; on error the stored pair is unchanged.
func (s *Store) Set(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.read()
	set := make(map[string]string, 2)
	var del []string
	for _, f := range []struct {
		key   string
		value *string
	}{{usernameKey, c.Username}, {passwordKey, c.Password}} {
		if f.value == nil {
			del = append(del, f.key)
		} else {
			set[f.key] = *f.value
		}
	}
	if err := s.backend.Apply(set, del); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.notify(Change{New: copyCredentials(c), Old: old})
	return nil
}

// Clear deletes every stored key, including session flags, and notifies subscribers.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.read()
	keys := []string{usernameKey, passwordKey}
	for name := range s.flags {
		keys = append(keys, flagPrefix+name)
	}
	if err := s.backend.Delete(keys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.notify(Change{New: Credentials{}, Old: old})
	return nil
}

// Flag reads a session flag. Absent flags are false.
func (s *Store) Flag(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok, err := s.backend.Bool(flagPrefix + name)
	if err != nil {
		s.log.WithError(err).WithField("flag", name).Warn("failed to read session flag")
		return false
	}
	return ok && v
}

// SetFlag stores a session flag
func (s *Store) SetFlag(name string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flags[name] = struct{}{}
	if err := s.backend.SetBool(flagPrefix+name, value); err != nil {
		return fmt.Errorf("set flag %s: %w", name, err)
	}
	return nil
}

// Subscribe registers fn for change notifications. Subscribers are called in
// registration order, never on the goroutine that performed the write.
func (s *Store) Subscribe(fn func(Change)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	sub := &Subscription{id: s.nextID, fn: fn, store: s}
	s.subs = append(s.subs, sub)
	return sub
}

func (s *Store) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// notify must be called with s.mu held so deliveries keep write order.
func (s *Store) notify(change Change) {
	if len(s.subs) == 0 {
		return
	}
	subs := make([]*Subscription, len(s.subs))
	copy(subs, s.subs)

	s.scheduler.Schedule(func() {
		for _, sub := range subs {
			if sub.cancelled.Load() {
				continue
			}
			sub.fn(change)
		}
	})
}

func (s *Store) read() Credentials {
	return Credentials{
		Username: s.readField(usernameKey),
		Password: s.readField(passwordKey),
	}
}

func (s *Store) readField(key string) *string {
	v, ok, err := s.backend.String(key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to read stored value")
		return nil
	}
	if !ok {
		return nil
	}
	return &v
}

func copyCredentials(c Credentials) Credentials {
	var out Credentials
	if c.Username != nil {
		u := *c.Username
		out.Username = &u
	}
	if c.Password != nil {
		p := *c.Password
		out.Password = &p
	}
	return out
}
