package dupcmp

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DuplicateGroup is a maximal set of candidates with byte-identical content
type DuplicateGroup struct {
	Count   int              `json:"count"`
	Members []FileDescriptor `json:"members"`
}

// Paths returns the member paths in group order
func (g DuplicateGroup) Paths() []string {
	paths := make([]string, len(g.Members))
	for i, m := range g.Members {
		paths[i] = m.Path
	}
	return paths
}

// Size returns the size shared by every member
func (g DuplicateGroup) Size() int64 {
	if len(g.Members) == 0 {
		return 0
	}
	return g.Members[0].Size
}

// longest returns the member with the longest path, which sorts last
func (g DuplicateGroup) longest() string {
	if len(g.Members) == 0 {
		return ""
	}
	return g.Members[len(g.Members)-1].Path
}

// Engine partitions a candidate pool into duplicate groups
type Engine struct {
	comparer *Comparer
	workers  int
}

// NewEngine creates an engine; workers above 1 compare a representative
// against the rest of the pool concurrently
func NewEngine(comparer *Comparer, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{comparer: comparer, workers: workers}
}

// Group drains the pool. Each pass takes the last candidate as representative,
// moves every candidate equal to it into its group and leaves the rest pooled.
// A failed comparison is recorded and counted as "not a duplicate". Groups of
// one are dropped, and the result is ordered by sortMembers and sortGroups.
// If shutdownChan closes, grouping stops between passes with ErrInterrupted.
func (e *Engine) Group(pool *Pool, shutdownChan <-chan struct{}) ([]DuplicateGroup, ErrorList, error) {
	defer VerboseEnter()()

	var groups []DuplicateGroup
	var errs ErrorList

	for !pool.IsEmpty() {
		if interrupted(shutdownChan) {
			sortGroups(groups)
			return groups, errs, ErrInterrupted
		}

		rep, _ := pool.PopLast()
		remaining := pool.Snapshot()
		matches, failures := e.compareAll(rep, remaining)

		members := []FileDescriptor{rep}
		for i, fd := range remaining {
			errs.Add(failures[i])
			if matches[i] {
				pool.Remove(fd.Path)
				members = append(members, fd)
			}
		}

		if len(members) < 2 {
			continue
		}

		sortMembers(members)
		groups = append(groups, DuplicateGroup{Count: len(members), Members: members})
		if IsDebugEnabled(DebugGroup) {
			VerboseLog(3, "Engine: group of %d anchored on %s", len(members), rep.Path)
		}
	}

	sortGroups(groups)
	return groups, errs, nil
}

// GroupFiles groups a plain slice of candidates
func (e *Engine) GroupFiles(files []FileDescriptor) ([]DuplicateGroup, ErrorList) {
	groups, errs, _ := e.Group(NewPoolFrom(files), nil)
	return groups, errs
}

// compareAll compares rep against every candidate. Results are stored by
// position so the outcome does not depend on completion order.
func (e *Engine) compareAll(rep FileDescriptor, candidates []FileDescriptor) ([]bool, []error) {
	matches := make([]bool, len(candidates))
	failures := make([]error, len(candidates))

	if e.workers == 1 {
		for i, fd := range candidates {
			matches[i], failures[i] = e.comparer.IsDuplicate(rep, fd)
		}
		return matches, failures
	}

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, fd := range candidates {
		if fd.Size != rep.Size {
			matches[i], failures[i] = e.comparer.IsDuplicate(rep, fd)
			continue
		}
		g.Go(func() error {
			matches[i], failures[i] = e.comparer.IsDuplicate(rep, fd)
			return nil
		})
	}
	g.Wait()

	return matches, failures
}

// sortMembers orders members by path length, shortest first, then by path
func sortMembers(members []FileDescriptor) {
	slices.SortStableFunc(members, func(a, b FileDescriptor) int {
		if c := cmp.Compare(len(a.Path), len(b.Path)); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
}

// sortGroups orders groups by member count, then by the length of their
// longest path. Remaining ties fall back to comparing the longest and then the
// shortest path, which cannot both be equal for two distinct groups.
func sortGroups(groups []DuplicateGroup) {
	slices.SortStableFunc(groups, func(a, b DuplicateGroup) int {
		if c := cmp.Compare(a.Count, b.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(len(a.longest()), len(b.longest())); c != 0 {
			return c
		}
		if c := strings.Compare(a.longest(), b.longest()); c != 0 {
			return c
		}
		return strings.Compare(a.Members[0].Path, b.Members[0].Path)
	})
}
