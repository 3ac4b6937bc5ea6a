package dupcmp

import (
	"strings"
	"unsafe"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// Pool is the set of candidates still waiting to be grouped, ordered by path.
// Removing a candidate from the pool is what marks it as visited.
type Pool struct {
	skiplist *zcsl.ZeroCopySkiplist[FileDescriptor, string, string]
}

// NewPool creates an empty candidate pool
func NewPool() *Pool {
	getKeyFromItem := func(fd *FileDescriptor) string {
		return fd.Path
	}

	getItemSize := func(fd *FileDescriptor) int {
		return int(unsafe.Sizeof(*fd)) + len(fd.Path)
	}

	skiplist := zcsl.MakeZeroCopySkiplist[FileDescriptor, string, string](
		16,
		getKeyFromItem,
		getItemSize,
		strings.Compare,
	)

	return &Pool{skiplist: skiplist}
}

// NewPoolFrom builds a pool from a slice of descriptors; non-file entries and
// repeated paths are dropped
func NewPoolFrom(files []FileDescriptor) *Pool {
	p := NewPool()
	for _, fd := range files {
		p.Add(fd, "")
	}
	return p
}

// Add inserts a regular-file candidate tagged with the root it came from.
// It returns false if the descriptor is not a file or its path is already pooled.
func (p *Pool) Add(fd FileDescriptor, origin string) bool {
	if !fd.IsFile() {
		return false
	}
	if existing, _ := p.skiplist.Find(fd.Path); existing != nil {
		return false
	}
	item := fd
	return p.skiplist.Insert(&item, origin)
}

// PopLast removes and returns the candidate with the greatest path
func (p *Pool) PopLast() (FileDescriptor, bool) {
	last := p.skiplist.Last()
	if last == nil {
		return FileDescriptor{}, false
	}
	fd := *last.Item()
	p.skiplist.Delete(fd.Path)
	return fd, true
}

// Remove deletes the candidate with the given path
func (p *Pool) Remove(path string) bool {
	return p.skiplist.Delete(path)
}

// Contains reports whether path is still pooled
func (p *Pool) Contains(path string) bool {
	item, _ := p.skiplist.Find(path)
	return item != nil
}

// Origin returns the root a pooled path was collected from
func (p *Pool) Origin(path string) string {
	_, origin := p.skiplist.Find(path)
	return origin
}

// Snapshot returns the pooled candidates in path order
func (p *Pool) Snapshot() []FileDescriptor {
	out := make([]FileDescriptor, 0, p.skiplist.Length())
	for current := p.skiplist.First(); current != nil; current = current.Next() {
		out = append(out, *current.Item())
	}
	return out
}

// Len returns the number of pooled candidates
func (p *Pool) Len() int {
	return p.skiplist.Length()
}

// IsEmpty returns true once every candidate has been taken
func (p *Pool) IsEmpty() bool {
	return p.skiplist.IsEmpty()
}
