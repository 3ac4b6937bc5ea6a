package dupcmp

// DefaultRoot is searched when no roots are given
const DefaultRoot = "."

// Collector turns root arguments into a flat candidate pool
type Collector struct {
	Ignore *IgnoreList

	dirsRead int
}

// NewCollector creates a collector that applies the given ignore list while walking
func NewCollector(ignore *IgnoreList) *Collector {
	return &Collector{Ignore: ignore}
}

// Collect classifies every root, walks the directories among them and pools
// every regular file found. Regular-file roots join the pool directly, symlink
// and special-file roots are dropped. Failures are recorded per path and never
// stop the collection; only a closed shutdownChan does, returning ErrInterrupted.
func (c *Collector) Collect(roots []string, shutdownChan <-chan struct{}) (*Pool, ErrorList, error) {
	defer VerboseEnter()()

	if len(roots) == 0 {
		roots = []string{DefaultRoot}
	}

	pool := NewPool()
	var errs ErrorList

	for _, root := range roots {
		if interrupted(shutdownChan) {
			return pool, errs, ErrInterrupted
		}

		fd, err := Classify(root)
		if err != nil {
			errs.Add(err)
			continue
		}

		switch fd.Kind {
		case KindFile:
			c.add(pool, fd, root)
		case KindDirectory:
			walker := NewWalker(fd, c.Ignore)
			for file, err := range walker.Files() {
				if err != nil {
					errs.Add(err)
				} else {
					c.add(pool, file, root)
				}
				if interrupted(shutdownChan) {
					c.dirsRead += walker.DirsRead()
					return pool, errs, ErrInterrupted
				}
			}
			c.dirsRead += walker.DirsRead()
			VerboseLog(2, "walked %s: %d directories, %d files", root, walker.DirsRead(), walker.FilesYielded())
		default:
			VerboseLog(1, "skipping %s: %s is not a regular file or directory", root, fd.Kind)
		}
	}

	VerboseLog(1, "collected %d candidates from %d roots", pool.Len(), len(roots))
	return pool, errs, nil
}

// DirsRead returns the number of directories enumerated by all walks so far
func (c *Collector) DirsRead() int {
	return c.dirsRead
}

func (c *Collector) add(pool *Pool, fd FileDescriptor, origin string) {
	if !pool.Add(fd, origin) && IsDebugEnabled(DebugCollect) {
		VerboseLog(3, "Collector: %s already collected", fd.Path)
	}
}

// interrupted polls a shutdown channel without blocking; a nil channel never fires
func interrupted(shutdownChan <-chan struct{}) bool {
	select {
	case <-shutdownChan:
		return true
	default:
		return false
	}
}
