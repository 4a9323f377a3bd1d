// Package testutil provides shared helpers for tests.
package testutil

import (
	"os"
	"testing"
)

// TempDir creates a temporary directory using the given pattern and removes
// it when the test finishes.
func TempDir(t *testing.T, pattern string) string {
	t.Helper()
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(dir)
	})
	return dir
}
