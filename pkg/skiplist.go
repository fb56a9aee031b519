package duplicatefinder

import (
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// groupContext tags every group inserted during a scan
const groupContext = "scan"

// digestGroup is one entry of the group table: every path whose content
// produced the same digest, in arrival order. paths[0] is the original.
type digestGroup struct {
	key    string
	digest Digest
	paths  []string
}

// groupIndex is the digest -> paths table, kept in a skiplist ordered by hex
// digest so group iteration is stable for a given set of contents.
// It is not safe for concurrent use: only the Grouper mutates it.
type groupIndex struct {
	skiplist *zcsl.ZeroCopySkiplist[digestGroup, string, string]
}

// newGroupIndex creates an empty group index
func newGroupIndex(maxLevels int) *groupIndex {
	if maxLevels < 8 {
		maxLevels = groupIndexLevels
	}

	getKeyFromItem := func(group *digestGroup) string {
		return group.key
	}

	// Size function for serialisation
	getItemSize := func(group *digestGroup) int {
		size := len(group.digest)
		for _, path := range group.paths {
			size += len(path)
		}
		return size
	}

	cmpKey := func(a, b string) int {
		return strings.Compare(a, b)
	}

	return &groupIndex{
		skiplist: zcsl.MakeZeroCopySkiplist[digestGroup, string, string](
			maxLevels,
			getKeyFromItem,
			getItemSize,
			cmpKey,
		),
	}
}

// append adds path to the group for digest, creating the group on first sight
// of the digest. It returns the group after the append.
func (gi *groupIndex) append(digest Digest, path string) *digestGroup {
	key := digest.String()

	if itemPtr, _ := gi.skiplist.Find(key); itemPtr != nil {
		group := itemPtr.Item()
		group.paths = append(group.paths, path)
		return group
	}

	group := &digestGroup{
		key:    key,
		digest: digest,
		paths:  []string{path},
	}
	gi.skiplist.Insert(group, groupContext)
	return group
}

// find returns the group for a digest, or nil
func (gi *groupIndex) find(digest Digest) *digestGroup {
	itemPtr, _ := gi.skiplist.Find(digest.String())
	if itemPtr == nil {
		return nil
	}
	return itemPtr.Item()
}

// forEach iterates through groups in digest order until callback returns false
func (gi *groupIndex) forEach(callback func(*digestGroup) bool) {
	for current := gi.skiplist.First(); current != nil; current = current.Next() {
		if !callback(current.Item()) {
			break
		}
	}
}

// length returns the number of distinct digests
func (gi *groupIndex) length() int {
	return gi.skiplist.Length()
}
