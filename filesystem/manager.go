package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Manager handles file system operations inside the data directory
type Manager struct {
	root string
}

// NewManager creates a new filesystem manager rooted at the data directory
func NewManager(root string) *Manager {
	return &Manager{root: filepath.Clean(root)}
}

// Root returns the data directory
func (f *Manager) Root() string {
	return f.root
}

// CreateDirectory creates a private directory if it doesn't exist
func (f *Manager) CreateDirectory(path string) error {
	return os.MkdirAll(path, 0700)
}

// RemoveDirectory removes a directory and all its contents. Paths outside
// the data directory, and the data directory itself, are refused.
func (f *Manager) RemoveDirectory(path string) error {
	if !f.contains(path) {
		return fmt.Errorf("refusing to remove %s: outside %s", path, f.root)
	}
	return os.RemoveAll(path)
}

// DirectoryExists checks if a directory exists
func (f *Manager) DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// CountFiles returns the number of regular files below path
func (f *Manager) CountFiles(path string) (int, error) {
	n := 0
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			n++
		}
		return nil
	})
	if os.IsNotExist(err) {
		return 0, nil
	}
	return n, err
}

func (f *Manager) contains(path string) bool {
	rel, err := filepath.Rel(f.root, filepath.Clean(path))
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
