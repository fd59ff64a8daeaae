package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

// TestNewManager tests the constructor
func TestNewManager(t *testing.T) {
	// Act
	manager := NewManager("/tmp/techexam/")

	// Assert
	if manager == nil {
		t.Fatal("Expected non-nil Manager")
	}
	if manager.Root() != "/tmp/techexam" {
		t.Errorf("Expected cleaned root, got '%s'", manager.Root())
	}
}

// TestManager_CreateDirectory_NestedPath tests creating nested directories
func TestManager_CreateDirectory_NestedPath(t *testing.T) {
	// Arrange
	root := t.TempDir()
	manager := NewManager(root)
	testDir := filepath.Join(root, "traces", "deep", "path")

	// Act
	err := manager.CreateDirectory(testDir)

	// Assert
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if !manager.DirectoryExists(testDir) {
		t.Error("Expected nested directory to exist after creation")
	}
	info, _ := os.Stat(testDir)
	if info.Mode().Perm() != 0700 {
		t.Errorf("Expected mode 0700, got %o", info.Mode().Perm())
	}
}

// TestManager_CreateDirectory_AlreadyExists tests creating directory that already exists
func TestManager_CreateDirectory_AlreadyExists(t *testing.T) {
	// Arrange
	root := t.TempDir()
	manager := NewManager(root)

	// Act
	err := manager.CreateDirectory(root)

	// Assert
	if err != nil {
		t.Errorf("Expected no error when directory already exists, got: %v", err)
	}
}

// TestManager_RemoveDirectory_WithContents tests removing directory with files
func TestManager_RemoveDirectory_WithContents(t *testing.T) {
	// Arrange
	root := t.TempDir()
	manager := NewManager(root)
	traces := filepath.Join(root, "traces")
	_ = manager.CreateDirectory(traces)
	if err := os.WriteFile(filepath.Join(traces, "batch.json"), []byte("{}"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// Act
	err := manager.RemoveDirectory(traces)

	// Assert
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if manager.DirectoryExists(traces) {
		t.Error("Expected directory to be removed")
	}
	if !manager.DirectoryExists(root) {
		t.Error("Expected root to survive")
	}
}

// TestManager_RemoveDirectory_NonExistent tests removing a directory that was never created
func TestManager_RemoveDirectory_NonExistent(t *testing.T) {
	// Arrange
	root := t.TempDir()
	manager := NewManager(root)

	// Act
	err := manager.RemoveDirectory(filepath.Join(root, "missing"))

	// Assert
	if err != nil {
		t.Errorf("Expected no error for non-existent directory, got: %v", err)
	}
}

// TestManager_RemoveDirectory_Refused tests paths outside the data directory
func TestManager_RemoveDirectory_Refused(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	manager := NewManager(root)

	for _, path := range []string{root, outside, filepath.Join(root, "..")} {
		if err := manager.RemoveDirectory(path); err == nil {
			t.Errorf("Expected refusal for %s", path)
		}
	}
	if !manager.DirectoryExists(outside) {
		t.Error("Expected outside directory to be untouched")
	}
}

// TestManager_DirectoryExists_File tests that a file is not a directory
func TestManager_DirectoryExists_File(t *testing.T) {
	// Arrange
	root := t.TempDir()
	manager := NewManager(root)
	file := filepath.Join(root, "session.yml")
	_ = os.WriteFile(file, []byte("strings: {}"), 0600)

	// Act & Assert
	if manager.DirectoryExists(file) {
		t.Error("Expected DirectoryExists to return false for a file")
	}
	if manager.DirectoryExists(filepath.Join(root, "missing")) {
		t.Error("Expected DirectoryExists to return false for a missing path")
	}
}

// TestManager_CountFiles tests counting files below a directory
func TestManager_CountFiles(t *testing.T) {
	// Arrange
	root := t.TempDir()
	manager := NewManager(root)
	nested := filepath.Join(root, "traces", "2024")
	_ = manager.CreateDirectory(nested)
	_ = os.WriteFile(filepath.Join(root, "traces", "a.json"), nil, 0600)
	_ = os.WriteFile(filepath.Join(nested, "b.json"), nil, 0600)

	// Act
	n, err := manager.CountFiles(filepath.Join(root, "traces"))
	missing, missingErr := manager.CountFiles(filepath.Join(root, "nothing"))

	// Assert
	if err != nil || n != 2 {
		t.Errorf("Expected 2 files, got %d (err %v)", n, err)
	}
	if missingErr != nil || missing != 0 {
		t.Errorf("Expected 0 files for missing dir, got %d (err %v)", missing, missingErr)
	}
}
