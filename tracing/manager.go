package tracing

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Manager is the facade the rest of the application talks to
type Manager struct {
	tracer    Tracer
	config    Config
	sessionID string
	mu        sync.RWMutex
	closed    bool
}

// NewManager creates a LocalTracer when tracing is enabled and a NoOpTracer otherwise
func NewManager(config Config, version string) (*Manager, error) {
	var tracer Tracer = NewNoOpTracer()
	sessionID := "disabled"

	if config.Enabled {
		local, err := NewLocalTracer(config, version)
		if err != nil {
			return nil, fmt.Errorf("failed to create tracer: %w", err)
		}
		tracer = local
		sessionID = local.SessionID()
	}

	m := &Manager{
		tracer:    tracer,
		config:    config,
		sessionID: sessionID,
	}

	start := NewNavigationEvent(sessionID, "", "session_start", "application_launch")
	start.Context["platform"] = runtime.GOOS
	start.Context["go_version"] = runtime.Version()
	_ = m.track(start)

	return m, nil
}

// NewDisabledManager returns a manager that records nothing
func NewDisabledManager() *Manager {
	m, _ := NewManager(Config{}, "")
	return m
}

func (m *Manager) track(event Event) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil
	}
	return m.tracer.TrackEvent(event)
}

// TrackStateTransition records a screen or session state change
func (m *Manager) TrackStateTransition(fromState, toState, trigger string) error {
	return m.track(NewNavigationEvent(m.sessionID, fromState, toState, trigger))
}

// TrackLoginAttempt records the outcome of one login
func (m *Manager) TrackLoginAttempt(source, outcome string, duration time.Duration) error {
	return m.track(NewLoginAttemptEvent(m.sessionID, source, outcome, duration))
}

// TrackError records an error event
func (m *Manager) TrackError(err error, component string) error {
	return m.TrackErrorWithContext(err, component, nil)
}

// TrackErrorWithContext records an error with additional context
func (m *Manager) TrackErrorWithContext(err error, component string, context map[string]string) error {
	if err == nil {
		return nil
	}
	event := NewErrorEvent(m.sessionID, err.Error(), component)
	for k, v := range context {
		event.Context[k] = v
	}
	return m.track(event)
}

// Flush ensures all pending events are persisted
func (m *Manager) Flush() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil
	}
	return m.tracer.Flush()
}

// Close records the end of the session and shuts the tracer down
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	// tracked directly, track() would deadlock on mu
	_ = m.tracer.TrackEvent(NewNavigationEvent(m.sessionID, "session_active", "session_end", "application_exit"))

	err := m.tracer.Close()
	m.closed = true
	return err
}

// IsEnabled returns whether events are persisted
func (m *Manager) IsEnabled() bool {
	return m.config.Enabled
}

// SessionID returns the current session ID
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Dir returns where traces are written
func (m *Manager) Dir() string {
	return m.config.Dir
}
