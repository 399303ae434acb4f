package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/systemstart/devkit/pkg/api"
	"github.com/systemstart/devkit/pkg/pipeline"
)

func TestScaffold_WritesStarterFiles(t *testing.T) {
	dir := t.TempDir()
	s := &Scaffold{Dir: dir, Project: "acme-api"}

	report := s.Run(context.Background(), nil)

	if report.Failed() {
		t.Fatalf("unexpected failure: %+v", report.FirstFailure())
	}

	envTemplate, err := os.ReadFile(filepath.Join(dir, api.DefaultEnvTemplate))
	if err != nil {
		t.Fatalf("expected env template: %v", err)
	}
	if !strings.Contains(string(envTemplate), "acme-api") {
		t.Errorf("expected project name in env template, got %q", envTemplate)
	}
	if !strings.Contains(string(envTemplate), "ACME_API_API_KEY=") {
		t.Errorf("expected derived variable prefix, got %q", envTemplate)
	}

	manifest, err := os.ReadFile(filepath.Join(dir, api.DefaultManifest))
	if err != nil {
		t.Fatalf("expected manifest: %v", err)
	}
	if !strings.Contains(string(manifest), "project: acme-api") {
		t.Errorf("expected project in manifest, got %q", manifest)
	}

	// The scaffolded manifest must load and validate.
	m, err := api.Load(dir)
	if err != nil {
		t.Fatalf("scaffolded manifest does not load: %v", err)
	}
	if m.Project != "acme-api" {
		t.Errorf("expected project acme-api, got %q", m.Project)
	}
}

func TestScaffold_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, api.DefaultEnvTemplate)
	if err := os.WriteFile(existing, []byte("KEEP=me\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(dir)
	report := s.Run(context.Background(), nil)

	if report.Failed() {
		t.Fatalf("unexpected failure: %+v", report.FirstFailure())
	}
	if got := report.Results[0].Outcome.Status; got != pipeline.StatusSkipped {
		t.Errorf("expected env template step to skip, got %s", got)
	}
	if got := report.Results[1].Outcome.Status; got != pipeline.StatusSuccess {
		t.Errorf("expected manifest step to write, got %s", got)
	}

	content, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "KEEP=me\n" {
		t.Errorf("existing file was modified: %q", content)
	}
}

func TestNew_DerivesProjectFromDir(t *testing.T) {
	s := New(filepath.Join("some", "where", "acme"))
	if s.Project != "acme" {
		t.Errorf("expected project acme, got %q", s.Project)
	}
}
