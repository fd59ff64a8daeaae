package tracing

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

// BaseEvent carries the fields every event has
type BaseEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// EventType returns the type identifier for this event
func (b BaseEvent) EventType() string {
	return b.Type
}

// Timestamp returns when this event occurred
func (b BaseEvent) Timestamp() time.Time {
	return b.CreatedAt
}

func newBase(kind, sessionID string) BaseEvent {
	return BaseEvent{Type: kind, CreatedAt: time.Now(), SessionID: sessionID}
}

// Duration wraps time.Duration to provide human-readable JSON serialization
type Duration time.Duration

// MarshalJSON implements json.Marshaler interface
func (d Duration) MarshalJSON() ([]byte, error) {
	duration := time.Duration(d)
	return json.Marshal(map[string]interface{}{
		"nanoseconds":  int64(duration),
		"readable":     duration.String(),
		"milliseconds": duration.Milliseconds(),
	})
}

// UnmarshalJSON accepts either the object form or a bare nanosecond count
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case map[string]interface{}:
		if ns, ok := value["nanoseconds"].(float64); ok {
			*d = Duration(time.Duration(ns))
		}
	}
	return nil
}

// NavigationEvent tracks screen and session transitions
type NavigationEvent struct {
	BaseEvent
	FromState string            `json:"from_state"`
	ToState   string            `json:"to_state"`
	Trigger   string            `json:"trigger"`
	Context   map[string]string `json:"context,omitempty"`
}

// NewNavigationEvent creates a new navigation event
func NewNavigationEvent(sessionID, fromState, toState, trigger string) *NavigationEvent {
	return &NavigationEvent{
		BaseEvent: newBase("navigation", sessionID),
		FromState: fromState,
		ToState:   toState,
		Trigger:   trigger,
		Context:   make(map[string]string),
	}
}

func (n *NavigationEvent) Validate() error {
	if n.ToState == "" {
		return errors.New("to_state is required")
	}
	if n.Trigger == "" {
		return errors.New("trigger is required")
	}
	return nil
}

func (n *NavigationEvent) Sanitize() Event {
	sanitized := *n
	sanitized.Context = filterSensitive(n.Context)
	return &sanitized
}

// Login outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeTimeout   = "timeout"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
	OutcomeThrottled = "throttled"
)

// LoginAttemptEvent records how a login ended and how long it took. It never
// carries the username or password.
type LoginAttemptEvent struct {
	BaseEvent
	Source   string   `json:"source"`
	Outcome  string   `json:"outcome"`
	Duration Duration `json:"duration"`
}

// NewLoginAttemptEvent creates a login attempt event. source is "tui" or "cli".
func NewLoginAttemptEvent(sessionID, source, outcome string, duration time.Duration) *LoginAttemptEvent {
	return &LoginAttemptEvent{
		BaseEvent: newBase("login_attempt", sessionID),
		Source:    source,
		Outcome:   outcome,
		Duration:  Duration(duration),
	}
}

func (l *LoginAttemptEvent) Validate() error {
	switch l.Outcome {
	case OutcomeSuccess, OutcomeRejected, OutcomeTimeout, OutcomeCancelled, OutcomeFailed, OutcomeThrottled:
	default:
		return errors.New("unknown login outcome")
	}
	if time.Duration(l.Duration) < 0 {
		return errors.New("duration cannot be negative")
	}
	return nil
}

func (l *LoginAttemptEvent) Sanitize() Event {
	sanitized := *l
	return &sanitized
}

// ErrorEvent tracks errors and diagnostic information
type ErrorEvent struct {
	BaseEvent
	Error     string            `json:"error"`
	Component string            `json:"component,omitempty"`
	Context   map[string]string `json:"context,omitempty"`
}

// NewErrorEvent creates a new error event
func NewErrorEvent(sessionID, errorMsg, component string) *ErrorEvent {
	return &ErrorEvent{
		BaseEvent: newBase("error", sessionID),
		Error:     errorMsg,
		Component: component,
		Context:   make(map[string]string),
	}
}

func (e *ErrorEvent) Validate() error {
	if e.Error == "" {
		return errors.New("error message is required")
	}
	return nil
}

func (e *ErrorEvent) Sanitize() Event {
	sanitized := *e
	sanitized.Error = sanitizeErrorMessage(e.Error)
	sanitized.Context = filterSensitive(e.Context)
	return &sanitized
}

var sensitiveKeys = []string{
	"password", "token", "secret", "key", "auth", "credential",
	"username", "user", "email",
}

// isSensitiveKey checks if a key names personal or secret data
func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}
	return false
}

func filterSensitive(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		if !isSensitiveKey(k) {
			out[k] = v
		}
	}
	return out
}

var (
	emailLike   = regexp.MustCompile(`[^\s@"']+@[^\s@"']+`)
	secretParam = regexp.MustCompile(`(?i)(password|token|secret|key|auth)=[^&\s]+`)
)

// sanitizeErrorMessage masks addresses and secret-looking parameters
func sanitizeErrorMessage(msg string) string {
	msg = emailLike.ReplaceAllString(msg, "[REDACTED]")
	return secretParam.ReplaceAllString(msg, "$1=[REDACTED]")
}
