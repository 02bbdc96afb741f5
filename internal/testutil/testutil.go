// Package testutil holds small helpers shared by package tests.
package testutil

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestFile creates a file with the given content and returns its
// path.
func CreateTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// CreateTree materializes a directory tree. Keys are slash-separated
// relative paths; entries ending in a slash become directories, the
// rest become files holding their value.
func CreateTree(t *testing.T, root string, entries map[string]string) {
	t.Helper()

	for rel, content := range entries {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if len(rel) > 0 && rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("failed to create directory %s: %v", rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create file %s: %v", rel, err)
		}
	}
}

// RandomName generates a random alphanumeric name of the given length.
func RandomName(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
