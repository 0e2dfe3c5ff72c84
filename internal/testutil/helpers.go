package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a temporary directory and returns it along with a cleanup function.
// The cleanup function removes the directory and all its contents.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "powerdash-test-*")
	if err != nil {
		t.Fatal(err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }
}

// WriteFile writes content to a file in the given directory.
// It creates parent directories as needed and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ReadFile reads a file and returns its contents.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// FileExists checks if a file exists.
func FileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

// SetupTestDir creates a test directory with a .powerdash directory.
// Returns the directory path and cleanup function.
func SetupTestDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, cleanup := TempDir(t)

	if err := os.MkdirAll(filepath.Join(dir, ".powerdash"), 0755); err != nil {
		cleanup()
		t.Fatal(err)
	}

	return dir, cleanup
}

// SetupTestDirWithConfig creates a test directory with a project config file.
// Returns the directory path and cleanup function.
func SetupTestDirWithConfig(t *testing.T, configYAML string) (string, func()) {
	t.Helper()
	dir, cleanup := SetupTestDir(t)

	WriteFile(t, dir, ".powerdash/config.yaml", configYAML)

	return dir, cleanup
}
