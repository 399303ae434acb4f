// Package logs prepares, lists and follows the project's log files.
package logs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Layout names the log directory and the files prepared inside it.
type Layout struct {
	Dir      string
	Server   string
	Activity string
}

// Files returns the absolute paths of the layout's log files.
func (l Layout) Files() []string {
	return []string{
		filepath.Join(l.Dir, l.Server),
		filepath.Join(l.Dir, l.Activity),
	}
}

// Ensure creates the log directory and its files when absent and
// returns the names it created. Files are opened append-only: an
// existing log keeps its contents byte for byte.
func Ensure(l Layout) ([]string, error) {
	if err := os.MkdirAll(l.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	var created []string
	for _, path := range l.Files() {
		_, statErr := os.Stat(path)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return created, fmt.Errorf("opening log file %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return created, fmt.Errorf("closing log file %s: %w", path, err)
		}
		if errors.Is(statErr, fs.ErrNotExist) {
			created = append(created, filepath.Base(path))
		}
	}
	return created, nil
}
