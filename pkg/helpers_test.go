package dupcmp

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile creates path (and its parent directories) with the given content
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// describeTestFile classifies path, failing the test if it cannot
func describeTestFile(t *testing.T, path string) FileDescriptor {
	t.Helper()
	fd, err := Classify(path)
	if err != nil {
		t.Fatalf("Failed to classify %s: %v", path, err)
	}
	return fd
}

// skipIfRoot skips tests that rely on permission bits being enforced
func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}
