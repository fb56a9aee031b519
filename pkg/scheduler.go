package duplicatefinder

import (
	"errors"
	"runtime"
	"sync"
)

// HashOutcome is what a hash worker produces for one input path: either a
// result or the IOError that prevented one.
type HashOutcome struct {
	Result HashResult
	Err    *IOError
}

// HashScheduler fingerprints a batch of paths on a fixed-size worker pool.
// Workers share nothing: each owns its file handle and hash state for the
// duration of one file.
type HashScheduler struct {
	workers    int
	algorithm  *HashAlgorithm
	bufferSize int
}

// NewHashScheduler creates a scheduler. workers <= 0 means one worker per
// logical CPU.
func NewHashScheduler(workers int, algorithm *HashAlgorithm, bufferSize int) *HashScheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if bufferSize <= 0 {
		bufferSize = DefaultChunkSize
	}
	return &HashScheduler{
		workers:    workers,
		algorithm:  algorithm,
		bufferSize: bufferSize,
	}
}

// Workers returns the pool size
func (hs *HashScheduler) Workers() int {
	return hs.workers
}

// HashAll dispatches every path to the pool and returns the completion queue.
// Outcomes arrive in completion order, exactly one per path, and the channel
// is closed once all workers have exited. The caller must drain it.
//
// When shutdownChan closes, no new paths are dispatched; files already being
// read stop at the next chunk boundary and produce no outcome.
func (hs *HashScheduler) HashAll(shutdownChan <-chan struct{}, paths []string) <-chan HashOutcome {
	jobChan := make(chan string, hs.workers)
	outcomeChan := make(chan HashOutcome, hs.workers)

	var wg sync.WaitGroup
	for i := 0; i < hs.workers; i++ {
		wg.Add(1)
		go hs.hashWorker(jobChan, outcomeChan, shutdownChan, &wg)
	}

	go func() {
		defer close(jobChan)
		for _, path := range paths {
			select {
			case jobChan <- path:
			case <-shutdownChan:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomeChan)
	}()

	return outcomeChan
}

// hashWorker fingerprints paths until the job channel closes
func (hs *HashScheduler) hashWorker(jobChan <-chan string, outcomeChan chan<- HashOutcome, shutdownChan <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	for path := range jobChan {
		digest, err := Fingerprint(path, hs.algorithm, hs.bufferSize, shutdownChan)
		if errors.Is(err, ErrInterrupted) {
			continue
		}

		var ioErr *IOError
		if errors.As(err, &ioErr) {
			outcomeChan <- HashOutcome{Err: ioErr}
			continue
		}

		outcomeChan <- HashOutcome{Result: HashResult{Path: path, Digest: digest}}
	}
}
