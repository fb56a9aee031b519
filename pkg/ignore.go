package duplicatefinder

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreFilter drops listed files whose base name matches any pattern.
// Patterns are Go regular expressions.
type IgnoreFilter struct {
	patterns []*regexp.Regexp
}

// NewIgnoreFilter compiles patterns into a filter
func NewIgnoreFilter(patterns []string) (*IgnoreFilter, error) {
	filter := &IgnoreFilter{}
	for _, patternStr := range patterns {
		if err := filter.AddPattern(patternStr); err != nil {
			return nil, err
		}
	}
	return filter, nil
}

// LoadIgnoreFile reads one pattern per line from path. Empty lines and lines
// starting with # are skipped. A missing file yields no patterns.
func LoadIgnoreFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := regexp.Compile(line); err != nil {
			return nil, fmt.Errorf("invalid regex pattern at line %d: %s - %w", lineNum, line, err)
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ignore file: %w", err)
	}
	return patterns, nil
}

// AddPattern adds a new ignore pattern
func (f *IgnoreFilter) AddPattern(patternStr string) error {
	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return fmt.Errorf("invalid regex pattern: %s - %w", patternStr, err)
	}
	f.patterns = append(f.patterns, pattern)
	return nil
}

// Len returns the number of patterns
func (f *IgnoreFilter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.patterns)
}

// ShouldIgnore checks a path's base name against every pattern
func (f *IgnoreFilter) ShouldIgnore(path string) bool {
	if f == nil {
		return false
	}
	name := filepath.Base(path)
	for _, pattern := range f.patterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// FilterPaths returns paths with the ignored ones removed, order preserved
func (f *IgnoreFilter) FilterPaths(paths []string) []string {
	if f.Len() == 0 {
		return paths
	}
	filtered := make([]string, 0, len(paths))
	for _, path := range paths {
		if !f.ShouldIgnore(path) {
			filtered = append(filtered, path)
		}
	}
	return filtered
}
