package api

import (
	"fmt"
	"net/url"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks the manifest for configuration errors.
func (m *Manifest) Validate() error {
	if err := m.validateEnv(); err != nil {
		return err
	}
	if err := m.validateLogs(); err != nil {
		return err
	}
	return m.validateTools()
}

func (m *Manifest) validateEnv() error {
	if m.Env.File == "" {
		return fmt.Errorf("env.file is required")
	}
	if m.Env.Template == "" {
		return fmt.Errorf("env.template is required")
	}
	if m.Env.File == m.Env.Template {
		return fmt.Errorf("env.file and env.template must differ")
	}
	return nil
}

func (m *Manifest) validateLogs() error {
	if m.Logs.Dir == "" {
		return fmt.Errorf("logs.dir is required")
	}
	if m.Logs.Server == "" {
		return fmt.Errorf("logs.server is required")
	}
	if m.Logs.Activity == "" {
		return fmt.Errorf("logs.activity is required")
	}
	if m.Logs.Server == m.Logs.Activity {
		return fmt.Errorf("logs.server and logs.activity must differ")
	}
	for _, pattern := range m.Logs.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("logs.patterns: invalid glob %q", pattern)
		}
	}
	return nil
}

func (m *Manifest) validateTools() error {
	if m.Tools.Installer.Command == "" {
		return fmt.Errorf("tools.installer.command is required")
	}
	if len(m.Tools.Installer.Version) == 0 {
		return fmt.Errorf("tools.installer.version is required")
	}
	if m.Tools.Installer.ScriptURL != "" {
		u, err := url.Parse(m.Tools.Installer.ScriptURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("tools.installer.scriptURL %q is not an http(s) URL", m.Tools.Installer.ScriptURL)
		}
	}

	commands := []struct {
		name string
		argv []string
	}{
		{"tools.sync", m.Tools.Sync},
		{"tools.lint", m.Tools.Lint},
		{"tools.format", m.Tools.Format},
		{"tools.imports", m.Tools.Imports},
		{"tools.test", m.Tools.Test},
	}
	for _, cmd := range commands {
		if len(cmd.argv) == 0 {
			return fmt.Errorf("%s is required", cmd.name)
		}
		if cmd.argv[0] == "" {
			return fmt.Errorf("%s: executable must not be empty", cmd.name)
		}
	}
	return nil
}
