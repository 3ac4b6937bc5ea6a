// Package dupcmp finds groups of byte-identical files beneath a set of paths.
//
// # Core API
//
// The main entry point is Finder, which collects candidates, compares them and
// orders the resulting groups:
//
//	cfg, _ := dupcmp.LoadConfig("")
//	finder, err := dupcmp.NewFinder(cfg)
//	result, err := finder.FindDuplicates([]string{"/path/to/dir"}, nil)
//	for _, group := range result.Groups {
//		fmt.Printf("%d copies: %v\n", group.Count, group.Paths())
//	}
//
// Files are never hashed. Two candidates are duplicates when they have the same
// size and the same bytes, checked by streaming both files side by side.
//
// # Building Blocks
//
// The pieces used by Finder are exported for callers that need finer control:
//   - Classify reads a path's metadata without following symlinks
//   - Walker lazily yields every regular file beneath a directory
//   - Collector turns root paths into a Pool of candidates
//   - Comparer decides whether two candidates are byte-identical
//   - Engine partitions a Pool into ordered DuplicateGroups
//   - Reporter renders groups as human, fdupes or json output
//
// Failures tied to a single path are returned as *TraversalError values in an
// ErrorList and never abort a run.
//
// # Configuration
//
// Enable debug output:
//
//	dupcmp.SetDebugFlags("walk,compare")
//	dupcmp.SetVerboseLevel(2)
package dupcmp
