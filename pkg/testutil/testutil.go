// Package testutil provides testing utilities for sprigconfig
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// WriteConfigDir materializes a configuration tree in a fresh temp
// directory. Keys are paths relative to the root (subdirectories are
// created as needed), values are raw file contents.
func WriteConfigDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating config subdirectory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing config file %s: %v", name, err)
		}
	}
	return dir
}

// RequireNoError fails the test immediately if err is not nil.
// The msg parameter provides additional context in the failure message.
func RequireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}
