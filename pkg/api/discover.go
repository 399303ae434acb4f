package api

import (
	"fmt"
	"os"
	"path/filepath"
)

// rootMarkers identify a project directory during upward discovery.
var rootMarkers = []string{
	DefaultManifest,
	DefaultEnvTemplate,
	"pyproject.toml",
}

// FindRoot walks up from start looking for a directory carrying a
// project marker (a devkit.yaml, an environment template, or a
// pyproject.toml). When no marker is found it returns start itself, so
// commands keep operating on the directory they were pointed at.
func FindRoot(start string) (string, error) {
	absStart, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	dir := absStart
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return absStart, nil
		}
		dir = parent
	}
}
