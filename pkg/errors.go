package duplicatefinder

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInterrupted is returned when a shutdown signal stops a scan before every
// input path has been fingerprinted.
var ErrInterrupted = errors.New("operation interrupted by shutdown")

// IOError records a file that could not be opened or read while fingerprinting.
// It is attached to the failing path and never aborts the rest of the scan.
type IOError struct {
	Path string
	Op   string // "open" or "read"
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s file %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// MarshalJSON renders the failure as path, operation and message
func (e *IOError) MarshalJSON() ([]byte, error) {
	message := ""
	if e.Err != nil {
		message = e.Err.Error()
	}
	return json.Marshal(struct {
		Path  string `json:"path"`
		Op    string `json:"op"`
		Error string `json:"error"`
	}{e.Path, e.Op, message})
}

// DirectoryError means the scan root could not be listed. No hashing happens
// after it.
type DirectoryError struct {
	Dir string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// WriteError means the duplicate report could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DeleteError records one duplicate that could not be removed.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete %s: %v", e.Path, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
