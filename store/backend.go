package store

import "sync"

// Backend is the persistent key-value storage a Store is built on.
// The ok result reports whether the key is present.
type Backend interface {
	String(key string) (value string, ok bool, err error)
	// Apply stores every entry of set and deletes every key of del as one
	// write. On error none of it is applied.
	Apply(set map[string]string, del []string) error
	Bool(key string) (value bool, ok bool, err error)
	SetBool(key string, value bool) error
	Delete(keys ...string) error
}

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu      sync.Mutex
	strings map[string]string
	bools   map[string]bool
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		strings: make(map[string]string),
		bools:   make(map[string]bool),
	}
}

func (m *MemoryBackend) String(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.strings[key]
	return v, ok, nil
}

func (m *MemoryBackend) Apply(set map[string]string, del []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range del {
		delete(m.strings, k)
	}
	for k, v := range set {
		m.strings[k] = v
	}
	return nil
}

func (m *MemoryBackend) Bool(key string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.bools[key]
	return v, ok, nil
}

func (m *MemoryBackend) SetBool(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bools[key] = value
	return nil
}

func (m *MemoryBackend) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.strings, k)
		delete(m.bools, k)
	}
	return nil
}
