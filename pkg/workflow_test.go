package duplicatefinder

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFinder(t *testing.T, workers int, observer Observer) *Finder {
	t.Helper()
	finder, err := NewFinder(FinderOptions{Workers: workers, Observer: observer})
	require.NoError(t, err)
	return finder
}

func TestNewFinder_Options(t *testing.T) {
	finder, err := NewFinder(FinderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "md5", finder.algorithm.Name)

	_, err = NewFinder(FinderOptions{Algorithm: "crc32"})
	assert.Error(t, err)

	_, err = NewFinder(FinderOptions{Workers: MaxHashWorkers + 1})
	assert.Error(t, err)
}

func TestFinder_ScenarioTwoIdenticalOneDistinct(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "A", []byte("x"))
	b := writeTestFile(t, dir, "B", []byte("x"))
	c := writeTestFile(t, dir, "C", []byte("y"))

	result, err := newTestFinder(t, 0, nil).Run(nil, []string{a, b, c})
	require.NoError(t, err)

	assert.Equal(t, 3, result.FilesScanned)
	assert.Equal(t, 3, result.FilesHashed)
	assert.Equal(t, 2, result.DistinctDigests)
	require.Len(t, result.Duplicates, 1)
	assert.Contains(t, []string{a, b}, result.Duplicates[0])

	require.Len(t, result.Groups, 1)
	members := append([]string(nil), result.Groups[0].Files...)
	sort.Strings(members)
	assert.Equal(t, []string{a, b}, members)
	assert.NotEqual(t, result.Groups[0].Original(), result.Duplicates[0])
	assert.NotEmpty(t, result.RunID)
}

func TestFinder_EmptyInput(t *testing.T) {
	observer := &recordingObserver{}
	result, err := newTestFinder(t, 4, observer).Run(nil, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Duplicates)
	assert.Empty(t, result.Groups)
	assert.Equal(t, 0, result.FilesScanned)
	assert.Equal(t, 1, observer.started)
	require.Len(t, observer.summaries, 1)
	assert.Equal(t, 0, observer.summaries[0].Duplicates)
}

func TestFinder_FileRemovedAfterListing(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a1", []byte("same"))
	writeTestFile(t, dir, "a2", []byte("same"))
	writeTestFile(t, dir, "b", []byte("other"))
	writeTestFile(t, dir, "victim", []byte("same"))

	paths, err := ListRegularFiles(dir)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	victim := filepath.Join(dir, "victim")
	require.NoError(t, os.Remove(victim))

	observer := &recordingObserver{}
	result, err := newTestFinder(t, 2, observer).Run(nil, paths)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, victim, result.Failures[0].Path)
	require.Len(t, observer.failed, 1)
	assert.Equal(t, victim, observer.failed[0].Path)

	assert.Equal(t, 4, result.FilesScanned)
	assert.Equal(t, 3, result.FilesHashed)
	require.Len(t, result.Duplicates, 1)
	assert.Contains(t, []string{filepath.Join(dir, "a1"), filepath.Join(dir, "a2")}, result.Duplicates[0])
	assert.Equal(t, 1, observer.summaries[0].FilesFailed)
}

func TestFinder_DuplicateCountProperty(t *testing.T) {
	dir := t.TempDir()
	paths := makeCorpus(t, dir, 60, 11)

	result, err := newTestFinder(t, 0, nil).Run(nil, paths)
	require.NoError(t, err)

	assert.Equal(t, 11, result.DistinctDigests)
	assert.Len(t, result.Duplicates, len(paths)-result.DistinctDigests)
	assert.Len(t, result.Groups, 11)

	// Every group has exactly one survivor and distinct contents never share a group.
	seen := make(map[string]bool)
	for _, group := range result.Groups {
		assert.Equal(t, len(group.Files)-1, len(group.Duplicates()))
		content, err := os.ReadFile(group.Files[0])
		require.NoError(t, err)
		for _, file := range group.Files {
			assert.False(t, seen[file], "%s in two groups", file)
			seen[file] = true
			other, err := os.ReadFile(file)
			require.NoError(t, err)
			assert.Equal(t, content, other)
		}
	}
	assert.Len(t, seen, len(paths))
}

func TestFinder_Idempotent(t *testing.T) {
	dir := t.TempDir()
	paths := makeCorpus(t, dir, 30, 4)
	finder := newTestFinder(t, 3, nil)

	first, err := finder.Run(nil, paths)
	require.NoError(t, err)
	second, err := finder.Run(nil, paths)
	require.NoError(t, err)

	assert.Len(t, second.Duplicates, len(first.Duplicates))
	require.Len(t, second.Groups, len(first.Groups))
	for i := range first.Groups {
		assert.Equal(t, first.Groups[i].Hash, second.Groups[i].Hash)
		assert.ElementsMatch(t, first.Groups[i].Files, second.Groups[i].Files)
	}
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestFinder_PoolSizeDoesNotChangeGroups(t *testing.T) {
	dir := t.TempDir()
	paths := makeCorpus(t, dir, 25, 6)

	var reference []DuplicateGroup
	for _, workers := range []int{1, 2, 0} {
		result, err := newTestFinder(t, workers, nil).Run(nil, paths)
		require.NoError(t, err)
		if reference == nil {
			reference = result.Groups
			continue
		}
		require.Len(t, result.Groups, len(reference))
		for i := range reference {
			assert.Equal(t, reference[i].Hash, result.Groups[i].Hash)
			assert.ElementsMatch(t, reference[i].Files, result.Groups[i].Files)
		}
	}
}

func TestFinder_Interrupted(t *testing.T) {
	dir := t.TempDir()
	paths := makeCorpus(t, dir, 10, 2)

	shutdown := make(chan struct{})
	close(shutdown)

	result, err := newTestFinder(t, 2, nil).Run(shutdown, paths)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrInterrupted))
}

func TestFinder_ObserverEvents(t *testing.T) {
	dir := t.TempDir()
	paths := makeCorpus(t, dir, 5, 1)

	observer := &recordingObserver{}
	result, err := newTestFinder(t, 2, observer).Run(nil, paths)
	require.NoError(t, err)

	assert.ElementsMatch(t, paths, observer.hashed)
	assert.Len(t, observer.duplicates, 4)
	require.Len(t, observer.summaries, 1)
	assert.Equal(t, result.Summary(), observer.summaries[0])
}

func TestFindDuplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a", []byte("dup"))
	b := writeTestFile(t, dir, "b", []byte("dup"))
	writeTestFile(t, dir, "c", []byte("unique"))

	paths, err := ListRegularFiles(dir)
	require.NoError(t, err)

	duplicates, err := FindDuplicates(paths)
	require.NoError(t, err)
	require.Len(t, duplicates, 1)
	assert.Contains(t, []string{a, b}, duplicates[0])
}
