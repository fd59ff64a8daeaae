package tracing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalTracer buffers events and writes them as JSON batches into Config.Dir
type LocalTracer struct {
	config      Config
	session     SessionInfo
	buffer      []Event
	bufferMutex sync.Mutex
	flushTicker *time.Ticker
	stopChan    chan struct{}
	wg          sync.WaitGroup
	seq         int
}

// NewLocalTracer creates the trace directory and starts background flushing
func NewLocalTracer(config Config, version string) (*LocalTracer, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("traces directory is required")
	}
	if err := os.MkdirAll(config.Dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create traces directory %s: %w", config.Dir, err)
	}
	if config.MaxBufferSize <= 0 {
		config.MaxBufferSize = 1
	}

	tracer := &LocalTracer{
		config: config,
		session: SessionInfo{
			ID:        uuid.New().String(),
			StartTime: time.Now(),
			UserAgent: fmt.Sprintf("techexam/%s", version),
			Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
			Version:   version,
		},
		buffer:   make([]Event, 0, config.MaxBufferSize),
		stopChan: make(chan struct{}),
	}

	if config.FlushInterval > 0 {
		tracer.startBackgroundFlushing()
	}
	return tracer, nil
}

// SessionID returns the id stamped on every batch
func (l *LocalTracer) SessionID() string {
	return l.session.ID
}

// TrackEvent validates, sanitizes and buffers an event, flushing when the buffer is full
func (l *LocalTracer) TrackEvent(event Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}
	sanitized := event.Sanitize()

	l.bufferMutex.Lock()
	defer l.bufferMutex.Unlock()

	l.buffer = append(l.buffer, sanitized)
	if len(l.buffer) >= l.config.MaxBufferSize {
		return l.flushLocked()
	}
	return nil
}

// Flush writes buffered events
func (l *LocalTracer) Flush() error {
	l.bufferMutex.Lock()
	defer l.bufferMutex.Unlock()
	return l.flushLocked()
}

// Close stops background flushing, writes what is left and prunes old batches
func (l *LocalTracer) Close() error {
	if l.flushTicker != nil {
		l.flushTicker.Stop()
		close(l.stopChan)
		l.wg.Wait()
	}

	if err := l.Flush(); err != nil {
		return fmt.Errorf("failed to flush during close: %w", err)
	}
	return l.cleanupOldSessions()
}

func (l *LocalTracer) startBackgroundFlushing() {
	l.flushTicker = time.NewTicker(l.config.FlushInterval)
	l.wg.Add(1)

	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-l.flushTicker.C:
				_ = l.Flush()
			case <-l.stopChan:
				return
			}
		}
	}()
}

// flushLocked is called with bufferMutex held
func (l *LocalTracer) flushLocked() error {
	if len(l.buffer) == 0 {
		return nil
	}

	session := l.session
	session.EndTime = time.Now()
	batch := EventBatch{
		Session: session,
		Events:  make([]Event, len(l.buffer)),
	}
	copy(batch.Events, l.buffer)

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	l.seq++
	name := fmt.Sprintf("session_%s_%d_%03d.json", l.session.ID, session.EndTime.Unix(), l.seq)
	path := filepath.Join(l.config.Dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write events to %s: %w", path, err)
	}

	l.buffer = l.buffer[:0]
	return nil
}

// cleanupOldSessions keeps the batches of the newest MaxSessions sessions
func (l *LocalTracer) cleanupOldSessions() error {
	if l.config.MaxSessions <= 0 {
		return nil
	}
	entries, err := os.ReadDir(l.config.Dir)
	if err != nil {
		return fmt.Errorf("failed to read traces directory: %w", err)
	}

	type sessionFiles struct {
		id     string
		latest time.Time
		names  []string
	}
	byID := make(map[string]*sessionFiles)
	for _, entry := range entries {
		id, ok := sessionIDFromName(entry.Name())
		if entry.IsDir() || !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sf := byID[id]
		if sf == nil {
			sf = &sessionFiles{id: id}
			byID[id] = sf
		}
		sf.names = append(sf.names, entry.Name())
		if info.ModTime().After(sf.latest) {
			sf.latest = info.ModTime()
		}
	}
	if len(byID) <= l.config.MaxSessions {
		return nil
	}

	sessions := make([]*sessionFiles, 0, len(byID))
	for _, sf := range byID {
		sessions = append(sessions, sf)
	}
	// newest first; the current session always survives
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].id == l.session.ID {
			return true
		}
		if sessions[j].id == l.session.ID {
			return false
		}
		return sessions[i].latest.After(sessions[j].latest)
	})

	for _, sf := range sessions[l.config.MaxSessions:] {
		for _, name := range sf.names {
			_ = os.Remove(filepath.Join(l.config.Dir, name))
		}
	}
	return nil
}

// sessionIDFromName extracts <id> from session_<id>_<unix>_<seq>.json
func sessionIDFromName(name string) (string, bool) {
	if !strings.HasPrefix(name, "session_") || filepath.Ext(name) != ".json" {
		return "", false
	}
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(name, "session_"), ".json"), "_")
	if len(parts) < 3 {
		return "", false
	}
	return strings.Join(parts[:len(parts)-2], "_"), true
}
