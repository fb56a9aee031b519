package duplicatefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeCorpus writes n files into dir where file i holds content i%distinct
func makeCorpus(t *testing.T, dir string, n, distinct int) []string {
	t.Helper()
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		content := fmt.Sprintf("content-%d", i%distinct)
		paths[i] = writeTestFile(t, dir, fmt.Sprintf("file-%03d", i), []byte(content))
	}
	return paths
}

func collectOutcomes(outcomes <-chan HashOutcome) ([]HashResult, []*IOError) {
	var results []HashResult
	var failures []*IOError
	for outcome := range outcomes {
		if outcome.Err != nil {
			failures = append(failures, outcome.Err)
			continue
		}
		results = append(results, outcome.Result)
	}
	return results, failures
}

// membership maps hex digest -> sorted member paths
func membership(results []HashResult) map[string][]string {
	groups := make(map[string][]string)
	for _, r := range results {
		groups[r.Digest.String()] = append(groups[r.Digest.String()], r.Path)
	}
	for _, members := range groups {
		sort.Strings(members)
	}
	return groups
}

func TestNewHashScheduler_Defaults(t *testing.T) {
	algo, err := GetHashAlgorithm("md5")
	require.NoError(t, err)

	hs := NewHashScheduler(0, algo, 0)
	assert.Equal(t, runtime.NumCPU(), hs.Workers())
	assert.Equal(t, DefaultChunkSize, hs.bufferSize)

	hs = NewHashScheduler(3, algo, 128)
	assert.Equal(t, 3, hs.Workers())
}

func TestHashScheduler_OneOutcomePerPath(t *testing.T) {
	dir := t.TempDir()
	paths := makeCorpus(t, dir, 50, 7)
	algo, err := GetHashAlgorithm("md5")
	require.NoError(t, err)

	results, failures := collectOutcomes(NewHashScheduler(4, algo, 64).HashAll(nil, paths))
	assert.Empty(t, failures)
	require.Len(t, results, len(paths))

	seen := make(map[string]bool)
	for _, r := range results {
		assert.False(t, seen[r.Path], "path %s produced twice", r.Path)
		seen[r.Path] = true
		assert.Len(t, r.Digest, HashSizeMD5)
	}
	assert.Len(t, membership(results), 7)
}

func TestHashScheduler_PoolSizeDoesNotChangeMembership(t *testing.T) {
	dir := t.TempDir()
	paths := makeCorpus(t, dir, 40, 9)
	algo, err := GetHashAlgorithm("sha256")
	require.NoError(t, err)

	var reference map[string][]string
	for _, workers := range []int{1, 2, runtime.NumCPU(), 16} {
		results, failures := collectOutcomes(NewHashScheduler(workers, algo, 16).HashAll(nil, paths))
		require.Empty(t, failures)

		groups := membership(results)
		if reference == nil {
			reference = groups
			continue
		}
		assert.Equal(t, reference, groups, "membership differs with %d workers", workers)
	}
}

func TestHashScheduler_FailureDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	paths := makeCorpus(t, dir, 10, 3)
	require.NoError(t, os.Remove(paths[4]))
	paths = append(paths, filepath.Join(dir, "never-existed"))

	algo, err := GetHashAlgorithm("md5")
	require.NoError(t, err)

	results, failures := collectOutcomes(NewHashScheduler(2, algo, 0).HashAll(nil, paths))
	assert.Len(t, results, 9)
	require.Len(t, failures, 2)

	failed := []string{failures[0].Path, failures[1].Path}
	sort.Strings(failed)
	assert.Equal(t, []string{paths[4], filepath.Join(dir, "never-existed")}, failed)
}

func TestHashScheduler_EmptyInput(t *testing.T) {
	algo, err := GetHashAlgorithm("md5")
	require.NoError(t, err)

	results, failures := collectOutcomes(NewHashScheduler(4, algo, 0).HashAll(nil, nil))
	assert.Empty(t, results)
	assert.Empty(t, failures)
}

func TestHashScheduler_ShutdownStopsDispatch(t *testing.T) {
	dir := t.TempDir()
	paths := makeCorpus(t, dir, 20, 20)
	algo, err := GetHashAlgorithm("md5")
	require.NoError(t, err)

	shutdown := make(chan struct{})
	close(shutdown)

	// Must terminate; no file may be reported as failed because of shutdown.
	results, failures := collectOutcomes(NewHashScheduler(2, algo, 0).HashAll(shutdown, paths))
	assert.Empty(t, failures)
	assert.Empty(t, results)
}
