package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes external tool commands in a fixed working
// directory. Commands run without a timeout; a hung tool blocks until
// ctx is cancelled.
type Runner struct {
	// Dir is the working directory for every command.
	Dir string
	// Stdout and Stderr receive streamed output from Run. They default
	// to the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// Env holds extra KEY=VALUE entries appended to the inherited
	// environment.
	Env []string
}

// Run executes argv with output streamed to the runner's writers, so
// the tool's own diagnostics reach the user as they happen.
func (r *Runner) Run(ctx context.Context, argv []string) error {
	cmd, err := r.command(ctx, argv)
	if err != nil {
		return err
	}
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

// RunQuiet executes argv with combined output captured instead of
// streamed. On failure the returned error carries the output, so the
// caller can surface what the tool said.
func (r *Runner) RunQuiet(ctx context.Context, argv []string) ([]byte, error) {
	cmd, err := r.command(ctx, argv)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		out := bytes.TrimSpace(buf.Bytes())
		if len(out) > 0 {
			return buf.Bytes(), fmt.Errorf("%s: %w\n%s", argv[0], err, out)
		}
		return buf.Bytes(), fmt.Errorf("%s: %w", argv[0], err)
	}
	return buf.Bytes(), nil
}

func (r *Runner) command(ctx context.Context, argv []string) (*exec.Cmd, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("command is empty")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd, nil
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

// ExitCode extracts the exit status of a finished child process from
// err. The second return is false when err carries no exit status,
// e.g. when the command never started.
func ExitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
