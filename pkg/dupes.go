package duplicatefinder

// DuplicateGroup represents a group of files with the same digest.
// Files[0] is the original; the rest are duplicates.
type DuplicateGroup struct {
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// Original returns the file kept from the group
func (g DuplicateGroup) Original() string {
	if len(g.Files) == 0 {
		return ""
	}
	return g.Files[0]
}

// Duplicates returns every file of the group except the original
func (g DuplicateGroup) Duplicates() []string {
	if len(g.Files) < 2 {
		return nil
	}
	return g.Files[1:]
}

// Grouper folds hash results into digest groups.
//
// The Grouper is the single writer of its group table and must only be fed
// from one goroutine; the pipeline drains the scheduler's completion queue
// into it. Within a group, paths keep arrival order, so which of several
// identical files becomes the original depends on which one finished hashing
// first and may differ between runs.
type Grouper struct {
	index    *groupIndex
	observer Observer
	results  int
}

// NewGrouper creates an empty grouper. A nil observer is allowed.
func NewGrouper(observer Observer) *Grouper {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Grouper{
		index:    newGroupIndex(groupIndexLevels),
		observer: observer,
	}
}

// Add records one hash result. It reports the group's original and whether
// the result made path a duplicate of it.
func (g *Grouper) Add(result HashResult) (original string, isDuplicate bool) {
	g.results++
	group := g.index.append(result.Digest, result.Path)
	original = group.paths[0]
	if len(group.paths) > 1 {
		g.observer.DuplicateFound(original, result.Path)
		return original, true
	}
	return original, false
}

// Len returns the number of distinct digests seen
func (g *Grouper) Len() int {
	return g.index.length()
}

// Results returns the number of results added
func (g *Grouper) Results() int {
	return g.results
}

// GroupOf returns the paths that share digest, original first
func (g *Grouper) GroupOf(digest Digest) []string {
	group := g.index.find(digest)
	if group == nil {
		return nil
	}
	return append([]string(nil), group.paths...)
}

// SelectDuplicates returns every path after the first of each group. Groups
// are concatenated in digest order; within a group arrival order is kept.
func (g *Grouper) SelectDuplicates() []string {
	duplicates := []string{}
	g.index.forEach(func(group *digestGroup) bool {
		if len(group.paths) > 1 {
			duplicates = append(duplicates, group.paths[1:]...)
		}
		return true
	})
	return duplicates
}

// DuplicateGroups returns the groups holding more than one file. The result
// is never nil.
func (g *Grouper) DuplicateGroups() []DuplicateGroup {
	result := []DuplicateGroup{}
	g.index.forEach(func(group *digestGroup) bool {
		if len(group.paths) > 1 {
			files := append([]string(nil), group.paths...)
			result = append(result, DuplicateGroup{
				Hash:  group.key,
				Files: files,
				Count: len(files),
			})
		}
		return true
	})
	return result
}

// AllGroups returns every group, singletons included, keyed by hex digest
func (g *Grouper) AllGroups() map[string][]string {
	result := make(map[string][]string, g.index.length())
	g.index.forEach(func(group *digestGroup) bool {
		result[group.key] = append([]string(nil), group.paths...)
		return true
	})
	return result
}
