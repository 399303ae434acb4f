package logs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Entry describes one file found in the log directory.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// List returns the files under dir matching the glob patterns, sorted
// by name. A missing directory yields an empty list.
func List(dir string, patterns []string) ([]Entry, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	fsys := os.DirFS(dir)
	names, err := globFS(fsys, patterns)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, name := range names {
		info, err := fs.Stat(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		if info.IsDir() {
			continue
		}
		entries = append(entries, Entry{
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

func globFS(fsys fs.FS, patterns []string) ([]string, error) {
	var result []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		result = append(result, matches...)
	}
	slices.Sort(result)
	result = slices.Compact(result)
	return result, nil
}
