package dupcmp

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func poolPaths(p *Pool) []string {
	var paths []string
	for _, fd := range p.Snapshot() {
		paths = append(paths, fd.Path)
	}
	return paths
}

func TestCollect_DefaultRoot(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "a.txt"), "a")
	writeTestFile(t, filepath.Join(tempDir, "sub", "b.txt"), "b")
	t.Chdir(tempDir)

	pool, errs, err := NewCollector(nil).Collect(nil, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if errs.Len() != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}

	expected := []string{"a.txt", filepath.Join("sub", "b.txt")}
	if got := poolPaths(pool); !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestCollect_FileAndDirectoryRoots(t *testing.T) {
	tempDir := t.TempDir()
	single := filepath.Join(tempDir, "single.txt")
	writeTestFile(t, single, "s")
	tree := filepath.Join(tempDir, "tree")
	writeTestFile(t, filepath.Join(tree, "x"), "x")
	writeTestFile(t, filepath.Join(tree, "y", "z"), "z")

	collector := NewCollector(nil)
	pool, errs, err := collector.Collect([]string{single, tree}, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if errs.Len() != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}

	expected := []string{
		single,
		filepath.Join(tree, "x"),
		filepath.Join(tree, "y", "z"),
	}
	if got := poolPaths(pool); !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if pool.Origin(single) != single {
		t.Errorf("Expected origin %s, got %s", single, pool.Origin(single))
	}
	if pool.Origin(filepath.Join(tree, "x")) != tree {
		t.Errorf("Expected origin %s, got %s", tree, pool.Origin(filepath.Join(tree, "x")))
	}
	if collector.DirsRead() != 2 {
		t.Errorf("Expected 2 directories read, got %d", collector.DirsRead())
	}
}

func TestCollect_RepeatedAndNestedRoots(t *testing.T) {
	tempDir := t.TempDir()
	inner := filepath.Join(tempDir, "inner")
	file := filepath.Join(inner, "f")
	writeTestFile(t, file, "f")

	pool, _, err := NewCollector(nil).Collect([]string{tempDir, inner, tempDir, file}, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if pool.Len() != 1 {
		t.Errorf("Expected the file to be collected once, got %v", poolPaths(pool))
	}
}

func TestCollect_SymlinkRootDropped(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "target")
	writeTestFile(t, target, "t")
	link := filepath.Join(tempDir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	pool, errs, err := NewCollector(nil).Collect([]string{link}, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if errs.Len() != 0 {
		t.Errorf("Expected a symlink root to be dropped silently, got %v", errs)
	}
	if !pool.IsEmpty() {
		t.Errorf("Expected an empty pool, got %v", poolPaths(pool))
	}
}

func TestCollect_MissingRoot(t *testing.T) {
	tempDir := t.TempDir()
	present := filepath.Join(tempDir, "present")
	writeTestFile(t, present, "p")
	missing := filepath.Join(tempDir, "missing")

	pool, errs, err := NewCollector(nil).Collect([]string{missing, present}, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if !slices.Equal(poolPaths(pool), []string{present}) {
		t.Errorf("Expected only %s, got %v", present, poolPaths(pool))
	}
	if errs.Len() != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}

	var te *TraversalError
	if !errors.As(errs[0], &te) {
		t.Fatalf("Expected a TraversalError, got %T", errs[0])
	}
	if te.Kind != ErrorNotFound || te.Path != missing {
		t.Errorf("Expected NotFound on %s, got %s on %s", missing, te.Kind, te.Path)
	}
}

func TestCollect_Interrupted(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "a"), "a")

	shutdown := make(chan struct{})
	close(shutdown)

	_, _, err := NewCollector(nil).Collect([]string{tempDir}, shutdown)
	if !errors.Is(err, ErrInterrupted) {
		t.Errorf("Expected ErrInterrupted, got %v", err)
	}
}
