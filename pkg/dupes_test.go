package duplicatefinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingObserver keeps every event it receives
type recordingObserver struct {
	NopObserver
	started    int
	hashed     []string
	failed     []*IOError
	duplicates [][2]string
	summaries  []Summary
	deleted    []string
	deleteErrs []*DeleteError
}

func (r *recordingObserver) ScanStarted(string, int) { r.started++ }

func (r *recordingObserver) FileHashed(result HashResult, processed, total int) {
	r.hashed = append(r.hashed, result.Path)
}

func (r *recordingObserver) FileFailed(err *IOError, processed, total int) {
	r.failed = append(r.failed, err)
}

func (r *recordingObserver) DuplicateFound(original, duplicate string) {
	r.duplicates = append(r.duplicates, [2]string{original, duplicate})
}

func (r *recordingObserver) ScanFinished(summary Summary) {
	r.summaries = append(r.summaries, summary)
}

func (r *recordingObserver) FileDeleted(path string) { r.deleted = append(r.deleted, path) }

func (r *recordingObserver) DeleteFailed(err *DeleteError) {
	r.deleteErrs = append(r.deleteErrs, err)
}

func TestDuplicateGroup_OriginalAndDuplicates(t *testing.T) {
	group := DuplicateGroup{
		Hash:  "abc123def456",
		Files: []string{"file1.txt", "file2.txt", "dir/file3.txt"},
		Count: 3,
	}

	if group.Original() != "file1.txt" {
		t.Errorf("Expected original 'file1.txt', got '%s'", group.Original())
	}
	dups := group.Duplicates()
	if len(dups) != 2 || dups[0] != "file2.txt" || dups[1] != "dir/file3.txt" {
		t.Errorf("Unexpected duplicates: %v", dups)
	}

	empty := DuplicateGroup{}
	if empty.Original() != "" || empty.Duplicates() != nil {
		t.Error("Empty group should have no original and no duplicates")
	}

	single := DuplicateGroup{Hash: "h", Files: []string{"only.txt"}, Count: 1}
	if single.Duplicates() != nil {
		t.Errorf("Single file group should have no duplicates, got %v", single.Duplicates())
	}
}

func TestGrouper_Empty(t *testing.T) {
	g := NewGrouper(nil)

	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.SelectDuplicates())
	assert.NotNil(t, g.SelectDuplicates())
	assert.Empty(t, g.DuplicateGroups())
	assert.Empty(t, g.AllGroups())
}

func TestGrouper_ArrivalOrderDecidesOriginal(t *testing.T) {
	observer := &recordingObserver{}
	g := NewGrouper(observer)

	x := Digest{0xaa}
	y := Digest{0xbb}

	original, dup := g.Add(HashResult{Path: "B", Digest: x})
	assert.Equal(t, "B", original)
	assert.False(t, dup)

	g.Add(HashResult{Path: "C", Digest: y})

	original, dup = g.Add(HashResult{Path: "A", Digest: x})
	assert.Equal(t, "B", original)
	assert.True(t, dup)

	g.Add(HashResult{Path: "D", Digest: x})

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 4, g.Results())
	assert.Equal(t, []string{"B", "A", "D"}, g.GroupOf(x))
	assert.Equal(t, []string{"C"}, g.GroupOf(y))
	assert.Nil(t, g.GroupOf(Digest{0xcc}))
	assert.Equal(t, []string{"A", "D"}, g.SelectDuplicates())

	assert.Equal(t, [][2]string{{"B", "A"}, {"B", "D"}}, observer.duplicates)
}

func TestGrouper_DuplicateGroups(t *testing.T) {
	g := NewGrouper(nil)

	g.Add(HashResult{Path: "z1", Digest: Digest{0xff}})
	g.Add(HashResult{Path: "a1", Digest: Digest{0x01}})
	g.Add(HashResult{Path: "z2", Digest: Digest{0xff}})
	g.Add(HashResult{Path: "lonely", Digest: Digest{0x10}})
	g.Add(HashResult{Path: "a2", Digest: Digest{0x01}})
	g.Add(HashResult{Path: "a3", Digest: Digest{0x01}})

	groups := g.DuplicateGroups()
	require.Len(t, groups, 2)

	// Groups come out in digest order; members keep arrival order
	assert.Equal(t, "01", groups[0].Hash)
	assert.Equal(t, []string{"a1", "a2", "a3"}, groups[0].Files)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, "ff", groups[1].Hash)
	assert.Equal(t, []string{"z1", "z2"}, groups[1].Files)

	assert.Equal(t, []string{"a2", "a3", "z2"}, g.SelectDuplicates())

	all := g.AllGroups()
	assert.Len(t, all, 3)
	assert.Equal(t, []string{"lonely"}, all["10"])
}

func TestGrouper_ReturnedSlicesAreCopies(t *testing.T) {
	g := NewGrouper(nil)
	d := Digest{0x42}
	g.Add(HashResult{Path: "one", Digest: d})
	g.Add(HashResult{Path: "two", Digest: d})

	members := g.GroupOf(d)
	members[0] = "changed"

	groups := g.DuplicateGroups()
	groups[0].Files[1] = "changed"

	assert.Equal(t, []string{"one", "two"}, g.GroupOf(d))
}

func TestGrouper_DuplicateCountProperty(t *testing.T) {
	g := NewGrouper(nil)

	// 10 results over 4 digests -> 6 duplicates
	digests := []byte{1, 2, 3, 1, 1, 4, 2, 3, 3, 3}
	for i, b := range digests {
		g.Add(HashResult{Path: string(rune('a' + i)), Digest: Digest{b}})
	}

	assert.Equal(t, 4, g.Len())
	assert.Len(t, g.SelectDuplicates(), len(digests)-g.Len())
}
