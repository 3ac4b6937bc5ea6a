package dupcmp

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Walker lazily yields every regular file beneath a directory.
//
// Pending directories are kept on an explicit stack so deep trees cannot exhaust
// the call stack. Symlinks are never followed nor yielded, which also rules out
// cycles. A directory or entry that cannot be read produces a TraversalError and
// the walk carries on with its siblings.
type Walker struct {
	root    string
	ignore  *IgnoreList
	pending []string

	dir     string
	entries []fs.DirEntry
	cursor  int

	dirsRead int
	yielded  int
}

// NewWalker creates a walker rooted at a directory descriptor
func NewWalker(root FileDescriptor, ignore *IgnoreList) *Walker {
	return &Walker{
		root:    root.Path,
		ignore:  ignore,
		pending: []string{root.Path},
	}
}

// Next returns the next regular file, or a per-entry error.
// ok is false once the tree is exhausted.
func (w *Walker) Next() (fd FileDescriptor, err error, ok bool) {
	for {
		for w.cursor < len(w.entries) {
			entry := w.entries[w.cursor]
			w.cursor++
			path := filepath.Join(w.dir, entry.Name())

			mode := entry.Type()
			switch {
			case mode&fs.ModeSymlink != 0:
				if IsDebugEnabled(DebugWalk) {
					VerboseLog(3, "Walker: skipping symlink %s", path)
				}
				continue
			case entry.IsDir():
				if w.ignored(path, true) {
					continue
				}
				w.pending = append(w.pending, path)
				continue
			case !mode.IsRegular():
				continue
			}

			if w.ignored(path, false) {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				return FileDescriptor{}, newTraversalError("lstat", path, err), true
			}
			// the entry may have been replaced since the directory was read
			if !info.Mode().IsRegular() {
				continue
			}

			w.yielded++
			if IsDebugEnabled(DebugWalk) {
				VerboseLog(3, "Walker: found file %s", path)
			}
			return describe(path, info), nil, true
		}

		w.entries = nil
		w.cursor = 0
		if len(w.pending) == 0 {
			return FileDescriptor{}, nil, false
		}

		w.dir = w.pending[len(w.pending)-1]
		w.pending = w.pending[:len(w.pending)-1]

		// os.ReadDir hands back whatever it managed to read alongside the error
		w.entries, err = os.ReadDir(w.dir)
		w.dirsRead++
		if err != nil {
			return FileDescriptor{}, newTraversalError("readdir", w.dir, err), true
		}
	}
}

// Files exposes the walk as a range-over-func sequence
func (w *Walker) Files() iter.Seq2[FileDescriptor, error] {
	return func(yield func(FileDescriptor, error) bool) {
		for {
			fd, err, ok := w.Next()
			if !ok || !yield(fd, err) {
				return
			}
		}
	}
}

// DirsRead returns the number of directories enumerated so far
func (w *Walker) DirsRead() int {
	return w.dirsRead
}

// FilesYielded returns the number of regular files produced so far
func (w *Walker) FilesYielded() int {
	return w.yielded
}

// ignored matches the path relative to the walk root; directories are also
// tried with a trailing slash so "dir/.*" style patterns prune the subtree.
func (w *Walker) ignored(path string, isDir bool) bool {
	if !w.ignore.HasPatterns() {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	if w.ignore.ShouldIgnore(rel) || (isDir && w.ignore.ShouldIgnore(rel+"/")) {
		if IsDebugEnabled(DebugWalk) {
			VerboseLog(3, "Walker: ignoring %s", rel)
		}
		return true
	}
	return false
}
