// Package duplicatefinder fingerprints files by content and reports the ones
// whose content has already been seen.
//
// # Core API
//
// The pipeline is fingerprint -> group -> select. A Finder hashes every input
// path on a fixed-size worker pool, drains the results through a single
// Grouper, and returns every file after the first of each digest group:
//
//	files, err := duplicatefinder.ListRegularFiles("/path/to/dir")
//	finder, err := duplicatefinder.NewFinder(duplicatefinder.FinderOptions{})
//	result, err := finder.Run(nil, files)
//	for _, group := range result.Groups {
//		fmt.Printf("%s: keep %s, drop %v\n", group.Hash, group.Original(), group.Duplicates())
//	}
//
// For the common case FindDuplicates runs the pipeline with default options.
//
// # Failures
//
// A file that cannot be opened or read is recorded as an *IOError in
// ScanResult.Failures and skipped; the remaining files are still grouped.
// ListRegularFiles returns *DirectoryError, WriteReport returns *WriteError,
// and DeleteDuplicates collects one *DeleteError per file it could not remove.
//
// # Which file is the original
//
// Results reach the Grouper in completion order, not input order. Among
// several identical files the one that finished hashing first is kept, so the
// original can differ between runs. Group membership does not.
//
// # Observing a run
//
// Progress and failures are reported through an Observer passed in
// FinderOptions. VerboseObserver prints them as text; NopObserver discards
// them.
package duplicatefinder
