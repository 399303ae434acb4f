// Package toolchain locates and runs the external developer tools the
// pipelines depend on.
package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Probe reports which executables are reachable and what they say
// about themselves. All environment probing goes through this
// interface so pipelines can be tested against a fake.
type Probe interface {
	// Look resolves name on PATH.
	Look(name string) (string, bool)
	// Version runs argv and returns the first line it prints.
	Version(ctx context.Context, argv []string) (string, error)
}

// PathProbe is the real Probe backed by the process environment.
type PathProbe struct{}

func (PathProbe) Look(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

func (PathProbe) Version(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("version command is empty")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("querying %s version: %w", argv[0], err)
	}
	version, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(version), nil
}
