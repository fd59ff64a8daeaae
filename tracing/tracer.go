// Package tracing records a local, privacy-safe trail of what happened in a
// techexam session: screen and session transitions, login attempts and errors.
package tracing

import (
	"path/filepath"
	"time"
)

// Tracer persists events
type Tracer interface {
	// TrackEvent validates, sanitizes and buffers an event
	TrackEvent(event Event) error

	// Flush ensures all pending events are persisted
	Flush() error

	// Close flushes and releases resources
	Close() error
}

// Event is anything a Tracer can record
type Event interface {
	EventType() string
	Timestamp() time.Time
	Validate() error
	// Sanitize returns a copy without credentials or other personal data
	Sanitize() Event
}

// SessionInfo contains metadata about the current process run
type SessionInfo struct {
	ID        string    `json:"session_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`
	UserAgent string    `json:"user_agent"`
	Platform  string    `json:"platform"`
	Version   string    `json:"version"`
}

// EventBatch is the content of one trace file
type EventBatch struct {
	Session SessionInfo `json:"session"`
	Events  []Event     `json:"events"`
}

// Config holds configuration for the tracing system
type Config struct {
	Enabled       bool
	Dir           string
	MaxSessions   int
	FlushInterval time.Duration
	MaxBufferSize int
}

// DefaultConfig writes traces below <home>/traces
func DefaultConfig(home string) Config {
	return Config{
		Enabled:       true,
		Dir:           filepath.Join(home, "traces"),
		MaxSessions:   10,
		FlushInterval: 10 * time.Second,
		MaxBufferSize: 200,
	}
}

// NoOpTracer discards all events
type NoOpTracer struct{}

func (n *NoOpTracer) TrackEvent(event Event) error { return nil }
func (n *NoOpTracer) Flush() error                 { return nil }
func (n *NoOpTracer) Close() error                 { return nil }

// NewNoOpTracer creates a tracer that discards all events
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}
