package config

import (
	"path/filepath"
	"sync"
	"time"
)

// FileBackend stores session values in a YAML file. It implements store.Backend.
type FileBackend struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileBackend creates a backend writing <dir>/session.yml
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{
		path: filepath.Join(dir, SessionFileName),
		now:  time.Now,
	}
}

// Path returns the session file location
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) String(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cfg, err := readConfig(b.path)
	if err != nil {
		return "", false, err
	}
	v, ok := cfg.Strings[key]
	return v, ok, nil
}

// Apply writes set and deletes del with a single file rewrite
func (b *FileBackend) Apply(set map[string]string, del []string) error {
	return b.update(func(cfg *Config) {
		for _, k := range del {
			delete(cfg.Strings, k)
		}
		if len(set) > 0 && cfg.Strings == nil {
			cfg.Strings = make(map[string]string, len(set))
		}
		for k, v := range set {
			cfg.Strings[k] = v
		}
	})
}

func (b *FileBackend) Bool(key string) (bool, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cfg, err := readConfig(b.path)
	if err != nil {
		return false, false, err
	}
	v, ok := cfg.Flags[key]
	return v, ok, nil
}

func (b *FileBackend) SetBool(key string, value bool) error {
	return b.update(func(cfg *Config) {
		if cfg.Flags == nil {
			cfg.Flags = make(map[string]bool)
		}
		cfg.Flags[key] = value
	})
}

// Delete removes keys from both value maps. Unknown keys are ignored.
func (b *FileBackend) Delete(keys ...string) error {
	return b.update(func(cfg *Config) {
		for _, k := range keys {
			delete(cfg.Strings, k)
			delete(cfg.Flags, k)
		}
	})
}

func (b *FileBackend) update(fn func(*Config)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Read existing file to preserve the other keys
	cfg, err := readConfig(b.path)
	if err != nil {
		return err
	}
	fn(&cfg)
	cfg.LastUpdated = b.now()
	return writeConfig(b.path, cfg)
}
