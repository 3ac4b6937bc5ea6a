package dupcmp

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreList holds regular expressions for paths that the walker skips.
// Patterns are matched against the slash-separated path relative to the walk root.
type IgnoreList struct {
	patterns []*regexp.Regexp
}

// NewIgnoreList compiles the given patterns
func NewIgnoreList(patterns ...string) (*IgnoreList, error) {
	il := &IgnoreList{}
	for _, p := range patterns {
		if err := il.AddPattern(p); err != nil {
			return nil, err
		}
	}
	return il, nil
}

// LoadIgnoreFile adds every pattern found in the file at path.
// Empty lines and lines starting with # are skipped.
func (il *IgnoreList) LoadIgnoreFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pattern, err := regexp.Compile(line)
		if err != nil {
			return fmt.Errorf("invalid regex pattern at line %d: %s - %w", lineNum, line, err)
		}
		il.patterns = append(il.patterns, pattern)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ignore file: %w", err)
	}

	return nil
}

// AddPattern adds a new ignore pattern
func (il *IgnoreList) AddPattern(patternStr string) error {
	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return fmt.Errorf("invalid regex pattern: %s - %w", patternStr, err)
	}

	il.patterns = append(il.patterns, pattern)
	return nil
}

// ShouldIgnore checks if a relative path matches any pattern.
// A nil IgnoreList ignores nothing.
func (il *IgnoreList) ShouldIgnore(relativePath string) bool {
	if il == nil {
		return false
	}

	normalisedPath := filepath.ToSlash(relativePath)
	for _, pattern := range il.patterns {
		if pattern.MatchString(normalisedPath) {
			return true
		}
	}

	return false
}

// HasPatterns returns true if there are any ignore patterns loaded
func (il *IgnoreList) HasPatterns() bool {
	return il != nil && len(il.patterns) > 0
}

// Patterns returns the source of every loaded pattern
func (il *IgnoreList) Patterns() []string {
	if il == nil {
		return nil
	}
	out := make([]string, len(il.patterns))
	for i, p := range il.patterns {
		out[i] = p.String()
	}
	return out
}
