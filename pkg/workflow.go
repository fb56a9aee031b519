package duplicatefinder

import (
	"fmt"

	"github.com/google/uuid"
)

// FinderOptions configures a Finder
type FinderOptions struct {
	Algorithm  string   // hash algorithm name, default md5
	Workers    int      // hash workers, <= 0 means one per logical CPU
	BufferSize int      // read chunk size in bytes, default 4096
	Observer   Observer // nil means no events
}

// ScanResult is everything one pipeline run produced
type ScanResult struct {
	RunID           string           `json:"run_id"`
	Algorithm       string           `json:"algorithm"`
	FilesScanned    int              `json:"files_scanned"`
	FilesHashed     int              `json:"files_hashed"`
	DistinctDigests int              `json:"distinct_digests"`
	Groups          []DuplicateGroup `json:"groups"`
	Duplicates      []string         `json:"duplicates"`
	Failures        []*IOError       `json:"failures"`
}

// Summary returns the counts reported at the end of the run
func (r *ScanResult) Summary() Summary {
	return Summary{
		RunID:           r.RunID,
		FilesScanned:    r.FilesScanned,
		FilesHashed:     r.FilesHashed,
		FilesFailed:     len(r.Failures),
		DistinctDigests: r.DistinctDigests,
		Duplicates:      len(r.Duplicates),
	}
}

// Finder runs the fingerprint -> group -> select pipeline
type Finder struct {
	algorithm *HashAlgorithm
	scheduler *HashScheduler
	observer  Observer
}

// NewFinder validates opts and creates a Finder
func NewFinder(opts FinderOptions) (*Finder, error) {
	name := opts.Algorithm
	if name == "" {
		name = DefaultHashAlgorithm
	}
	algorithm, err := GetHashAlgorithm(name)
	if err != nil {
		return nil, err
	}
	if opts.Workers > MaxHashWorkers {
		return nil, fmt.Errorf("hash workers should not exceed %d, got: %d", MaxHashWorkers, opts.Workers)
	}

	observer := opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	return &Finder{
		algorithm: algorithm,
		scheduler: NewHashScheduler(opts.Workers, algorithm, opts.BufferSize),
		observer:  observer,
	}, nil
}

// Workers returns the hash pool size in use
func (f *Finder) Workers() int {
	return f.scheduler.Workers()
}

// Run fingerprints every path and returns the duplicates. Unreadable files are
// recorded in ScanResult.Failures and skipped. Run returns only after every
// path has produced a result or a failure, unless shutdownChan closes first,
// in which case it returns ErrInterrupted.
func (f *Finder) Run(shutdownChan <-chan struct{}, paths []string) (*ScanResult, error) {
	runID := uuid.NewString()
	total := len(paths)
	f.observer.ScanStarted(runID, total)

	grouper := NewGrouper(f.observer)
	failures := []*IOError{}
	processed := 0

	// Single drain point: only this loop touches the grouper.
	for outcome := range f.scheduler.HashAll(shutdownChan, paths) {
		processed++
		if outcome.Err != nil {
			failures = append(failures, outcome.Err)
			f.observer.FileFailed(outcome.Err, processed, total)
			continue
		}
		f.observer.FileHashed(outcome.Result, processed, total)
		grouper.Add(outcome.Result)
	}

	if processed < total {
		select {
		case <-shutdownChan:
			return nil, ErrInterrupted
		default:
			return nil, fmt.Errorf("hash scheduler returned %d outcomes for %d paths", processed, total)
		}
	}

	result := &ScanResult{
		RunID:           runID,
		Algorithm:       f.algorithm.Name,
		FilesScanned:    total,
		FilesHashed:     grouper.Results(),
		DistinctDigests: grouper.Len(),
		Groups:          grouper.DuplicateGroups(),
		Duplicates:      grouper.SelectDuplicates(),
		Failures:        failures,
	}
	f.observer.ScanFinished(result.Summary())

	return result, nil
}

// FindDuplicates runs the pipeline with default options and returns every
// path whose content matches an earlier-seen path
func FindDuplicates(paths []string) ([]string, error) {
	finder, err := NewFinder(FinderOptions{})
	if err != nil {
		return nil, err
	}
	result, err := finder.Run(nil, paths)
	if err != nil {
		return nil, err
	}
	return result.Duplicates, nil
}
