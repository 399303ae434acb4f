package toolchain

import (
	"context"
	"testing"
)

func TestPathProbe_Look(t *testing.T) {
	skipWithoutSh(t)

	var probe PathProbe
	path, ok := probe.Look("sh")
	if !ok {
		t.Fatal("expected sh to be found")
	}
	if path == "" {
		t.Error("expected a resolved path")
	}

	if _, ok := probe.Look("devkit-no-such-tool"); ok {
		t.Error("expected missing tool to not be found")
	}
}

func TestPathProbe_Version(t *testing.T) {
	skipWithoutSh(t)

	var probe PathProbe
	version, err := probe.Version(context.Background(), []string{"sh", "-c", "echo tool 1.2.3; echo noise"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "tool 1.2.3" {
		t.Errorf("expected first line only, got %q", version)
	}
}

func TestPathProbe_VersionFailure(t *testing.T) {
	skipWithoutSh(t)

	var probe PathProbe
	if _, err := probe.Version(context.Background(), []string{"sh", "-c", "exit 1"}); err == nil {
		t.Fatal("expected error for failing version command")
	}

	if _, err := probe.Version(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty version command")
	}
}
