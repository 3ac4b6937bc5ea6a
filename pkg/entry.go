package dupcmp

import (
	"io/fs"
	"os"
)

// FileKind is the type of a filesystem entry as seen without following symlinks
type FileKind uint8

const (
	KindOther FileKind = iota
	KindFile
	KindDirectory
	KindSymlink
)

func (k FileKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// FileDescriptor represents one filesystem entry considered for comparison.
// Size is captured when the entry is classified and never re-read.
type FileDescriptor struct {
	Path string   `json:"path"`
	Size int64    `json:"size"`
	Kind FileKind `json:"-"`
}

// IsFile returns true for regular files, the only kind that is ever compared
func (fd FileDescriptor) IsFile() bool {
	return fd.Kind == KindFile
}

// IsDir returns true for directories
func (fd FileDescriptor) IsDir() bool {
	return fd.Kind == KindDirectory
}

// kindFromMode maps lstat mode bits onto a FileKind
func kindFromMode(mode fs.FileMode) FileKind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDirectory
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// describe builds a FileDescriptor from lstat information
func describe(path string, info fs.FileInfo) FileDescriptor {
	return FileDescriptor{
		Path: path,
		Size: info.Size(),
		Kind: kindFromMode(info.Mode()),
	}
}

// Classify reads the metadata of path without following symlinks
func Classify(path string) (FileDescriptor, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return FileDescriptor{}, newTraversalError("classify", path, err)
	}
	fd := describe(path, info)
	if IsDebugEnabled(DebugCollect) {
		VerboseLog(3, "Classify: %s is a %s (%d bytes)", path, fd.Kind, fd.Size)
	}
	return fd, nil
}
