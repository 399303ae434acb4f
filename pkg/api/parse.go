package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the devkit.yaml in dir, sets Dir, and validates the
// result. A missing manifest is not an error: the defaults apply. A
// present manifest overrides the defaults field by field.
func Load(dir string) (*Manifest, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	m := Default()
	m.Dir = absDir

	filename := filepath.Join(absDir, DefaultManifest)
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", filename, err)
	}

	return m, nil
}

// EnvPath returns the absolute path of the environment file.
func (m *Manifest) EnvPath() string {
	return filepath.Join(m.Dir, m.Env.File)
}

// EnvTemplatePath returns the absolute path of the environment
// template.
func (m *Manifest) EnvTemplatePath() string {
	return filepath.Join(m.Dir, m.Env.Template)
}

// LogDir returns the absolute path of the log directory.
func (m *Manifest) LogDir() string {
	return filepath.Join(m.Dir, m.Logs.Dir)
}

// ServerLogPath returns the absolute path of the server log file.
func (m *Manifest) ServerLogPath() string {
	return filepath.Join(m.LogDir(), m.Logs.Server)
}

// ActivityLogPath returns the absolute path of the activity log file.
func (m *Manifest) ActivityLogPath() string {
	return filepath.Join(m.LogDir(), m.Logs.Activity)
}

// Name returns the project name, falling back to the directory name
// when the manifest does not set one.
func (m *Manifest) Name() string {
	if m.Project != "" {
		return m.Project
	}
	return filepath.Base(m.Dir)
}
