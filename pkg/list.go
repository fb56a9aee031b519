package duplicatefinder

import (
	"os"
	"path/filepath"
)

// ListRegularFiles returns the regular files directly inside dir, sorted by
// name. Subdirectories, symlinks and special files are skipped; there is no
// recursion. Failure to read dir is returned as a *DirectoryError.
func ListRegularFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryError{Dir: dir, Err: err}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
