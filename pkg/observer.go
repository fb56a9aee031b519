package duplicatefinder

// Summary is emitted once when a scan completes
type Summary struct {
	RunID           string
	FilesScanned    int
	FilesHashed     int
	FilesFailed     int
	DistinctDigests int
	Duplicates      int
}

// Observer receives progress and failure events for one pipeline run. Every
// callback is made from the goroutine that drains hash results, so
// implementations do not need locking unless they are shared between runs.
type Observer interface {
	ScanStarted(runID string, total int)
	FileHashed(result HashResult, processed, total int)
	FileFailed(err *IOError, processed, total int)
	DuplicateFound(original, duplicate string)
	ScanFinished(summary Summary)

	FileDeleted(path string)
	DeleteFailed(err *DeleteError)
}

// NopObserver ignores every event. Embed it to implement only a subset.
type NopObserver struct{}

func (NopObserver) ScanStarted(string, int)         {}
func (NopObserver) FileHashed(HashResult, int, int) {}
func (NopObserver) FileFailed(*IOError, int, int)   {}
func (NopObserver) DuplicateFound(string, string)   {}
func (NopObserver) ScanFinished(Summary)            {}
func (NopObserver) FileDeleted(string)              {}
func (NopObserver) DeleteFailed(*DeleteError)       {}
