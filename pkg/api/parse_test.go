package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_NoManifestUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Dir != dir {
		t.Fatalf("expected Dir=%q, got %q", dir, m.Dir)
	}
	if m.Env.File != DefaultEnvFile {
		t.Errorf("expected env file %q, got %q", DefaultEnvFile, m.Env.File)
	}
	if m.Tools.Installer.Command != "uv" {
		t.Errorf("expected installer command uv, got %q", m.Tools.Installer.Command)
	}
	if len(m.Tools.Test) == 0 || m.Tools.Test[0] != "uv" {
		t.Errorf("unexpected test command: %v", m.Tools.Test)
	}
}

func TestLoad_ManifestOverridesDefaults(t *testing.T) {
	content := `
project: acme-api
env:
  file: .env.local
  template: .env.dist
tools:
  sync: ["poetry", "install"]
`
	dir := t.TempDir()
	f := filepath.Join(dir, DefaultManifest)
	if err := os.WriteFile(f, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Project != "acme-api" {
		t.Errorf("expected project acme-api, got %q", m.Project)
	}
	if m.Env.File != ".env.local" {
		t.Errorf("expected overridden env file, got %q", m.Env.File)
	}
	if len(m.Tools.Sync) != 2 || m.Tools.Sync[0] != "poetry" {
		t.Errorf("expected overridden sync command, got %v", m.Tools.Sync)
	}
	// Fields absent from the manifest keep their defaults.
	if m.Logs.Dir != DefaultLogDir {
		t.Errorf("expected default log dir, got %q", m.Logs.Dir)
	}
	if m.Tools.Installer.Command != "uv" {
		t.Errorf("expected default installer, got %q", m.Tools.Installer.Command)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, DefaultManifest)
	if err := os.WriteFile(f, []byte("{{invalid"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "parsing manifest") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad_ValidationFails(t *testing.T) {
	content := `
logs:
  server: app.log
  activity: app.log
`
	dir := t.TempDir()
	f := filepath.Join(dir, DefaultManifest)
	if err := os.WriteFile(f, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validating manifest") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestManifestPaths(t *testing.T) {
	m := Default()
	m.Dir = "/work/acme"

	if got := m.EnvPath(); got != filepath.Join("/work/acme", ".env") {
		t.Errorf("unexpected env path: %q", got)
	}
	if got := m.EnvTemplatePath(); got != filepath.Join("/work/acme", ".env.example") {
		t.Errorf("unexpected template path: %q", got)
	}
	if got := m.ServerLogPath(); got != filepath.Join("/work/acme", "logs", "server.log") {
		t.Errorf("unexpected server log path: %q", got)
	}
	if got := m.ActivityLogPath(); got != filepath.Join("/work/acme", "logs", "activity.log") {
		t.Errorf("unexpected activity log path: %q", got)
	}
}

func TestManifestName(t *testing.T) {
	m := Default()
	m.Dir = "/work/acme"
	if got := m.Name(); got != "acme" {
		t.Errorf("expected directory fallback, got %q", got)
	}

	m.Project = "acme-api"
	if got := m.Name(); got != "acme-api" {
		t.Errorf("expected project name, got %q", got)
	}
}
