package api

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot_MarkerInStartDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultManifest), []byte("project: x\n"), 0600); err != nil {
		t.Fatal(err)
	}

	root, err := FindRoot(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != dir {
		t.Fatalf("expected %q, got %q", dir, root)
	}
}

func TestFindRoot_WalksUpToMarker(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultEnvTemplate), []byte("KEY=value\n"), 0600); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(dir, "src", "server")
	if err := os.MkdirAll(nested, 0750); err != nil {
		t.Fatal(err)
	}

	root, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != dir {
		t.Fatalf("expected %q, got %q", dir, root)
	}
}

func TestFindRoot_NoMarkerFallsBackToStart(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0750); err != nil {
		t.Fatal(err)
	}

	root, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != nested {
		t.Fatalf("expected fallback to %q, got %q", nested, root)
	}
}
