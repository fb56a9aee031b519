package duplicatefinder

import (
	"errors"
	"os"
)

// Deleter abstracts filesystem removal so dry runs and tests never touch disk
type Deleter interface {
	Remove(path string) error
}

// OSDeleter removes files with os.Remove
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error {
	return os.Remove(path)
}

// DryRunDeleter records what would be removed without removing anything
type DryRunDeleter struct {
	Removed []string
}

func (d *DryRunDeleter) Remove(path string) error {
	d.Removed = append(d.Removed, path)
	return nil
}

// DeleteResult collects the outcome of a deletion batch
type DeleteResult struct {
	Deleted []string
	Failed  []*DeleteError
}

// Err joins every per-file failure, or returns nil
func (r *DeleteResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, failure := range r.Failed {
		errs[i] = failure
	}
	return errors.Join(errs...)
}

// DeleteDuplicates removes each path independently. A failure is recorded and
// reported through observer, and the remaining paths are still attempted.
func DeleteDuplicates(paths []string, deleter Deleter, observer Observer) *DeleteResult {
	if deleter == nil {
		deleter = OSDeleter{}
	}
	if observer == nil {
		observer = NopObserver{}
	}

	result := &DeleteResult{}
	for _, path := range paths {
		if err := deleter.Remove(path); err != nil {
			deleteErr := &DeleteError{Path: path, Err: err}
			result.Failed = append(result.Failed, deleteErr)
			observer.DeleteFailed(deleteErr)
			continue
		}
		result.Deleted = append(result.Deleted, path)
		observer.FileDeleted(path)
	}
	return result
}
