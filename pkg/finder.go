package dupcmp

import (
	"fmt"
)

// Result is everything a run produces: ordered groups, the errors recorded
// along the way and counters describing the work done
type Result struct {
	Groups []DuplicateGroup
	Errors ErrorList
	Stats  Stats
}

// Finder wires collection, comparison and grouping together for one configuration
type Finder struct {
	config     *Config
	ignore     *IgnoreList
	bufferSize int
	workers    int
}

// NewFinder validates cfg and prepares a finder from it
func NewFinder(cfg *Config) (*Finder, error) {
	if cfg == nil {
		var err error
		if cfg, err = LoadConfig(""); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	all := cfg.GetAllConfig()

	ignore, err := NewIgnoreList(all.Scan.Ignore...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile ignore patterns: %w", err)
	}

	bufferSize, err := ParseHumanSize(all.Performance.CompareBuffer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse compare buffer: %w", err)
	}

	return &Finder{
		config:     cfg,
		ignore:     ignore,
		bufferSize: bufferSize,
		workers:    all.Performance.CompareWorkers,
	}, nil
}

// ConfigureLogging applies the verbose section of cfg to the package logger
func ConfigureLogging(cfg *Config) {
	verboseConfig := cfg.GetVerboseConfig()
	SetVerboseLevel(verboseConfig.Level)
	SetDebugFlags(verboseConfig.Debug)
	if verboseConfig.Debug != "" {
		VerboseLog(1, "debug flags: %s", verboseConfig.Debug)
	}
}

// Config returns the configuration the finder was built from
func (f *Finder) Config() *Config {
	return f.config
}

// Ignore returns the ignore list applied while walking
func (f *Finder) Ignore() *IgnoreList {
	return f.ignore
}

// FindDuplicates collects every regular file under roots (or "." when roots is
// empty) and groups them by identical content. Per-path failures end up in
// Result.Errors; the returned error is only ever ErrInterrupted, in which case
// the result holds whatever was determined before the shutdown.
func (f *Finder) FindDuplicates(roots []string, shutdownChan <-chan struct{}) (*Result, error) {
	defer VerboseEnter()()

	collector := NewCollector(f.ignore)
	pool, errs, err := collector.Collect(roots, shutdownChan)

	result := &Result{Errors: errs}
	result.Stats.Candidates = pool.Len()
	result.Stats.DirsRead = collector.DirsRead()
	if err != nil {
		return result, err
	}

	VerboseLog(2, "grouping %d candidates with %d workers", pool.Len(), f.workers)

	comparer := NewComparer(f.bufferSize)
	engine := NewEngine(comparer, f.workers)
	groups, groupErrs, err := engine.Group(pool, shutdownChan)

	result.Groups = groups
	result.Errors = append(result.Errors, groupErrs...)

	cmpStats := comparer.Stats()
	result.Stats.SizeRejects = cmpStats.SizeRejects
	result.Stats.ContentCompares = cmpStats.ContentCompares
	result.Stats.FilesOpened = cmpStats.FilesOpened
	result.Stats.BytesRead = cmpStats.BytesRead

	VerboseLog(1, "found %d duplicate groups, %d errors", len(groups), len(result.Errors))
	return result, err
}
