package quality

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/systemstart/devkit/pkg/api"
	"github.com/systemstart/devkit/pkg/pipeline"
	"github.com/systemstart/devkit/pkg/toolchain"
)

type presentProbe struct{}

func (presentProbe) Look(name string) (string, bool) { return "/usr/bin/" + name, true }

func (presentProbe) Version(ctx context.Context, argv []string) (string, error) {
	return "uv 0.5.1", nil
}

type absentProbe struct{}

func (absentProbe) Look(name string) (string, bool) { return "", false }

func (absentProbe) Version(ctx context.Context, argv []string) (string, error) {
	return "", context.Canceled
}

// testManifest returns a manifest whose external commands all succeed.
func testManifest(t *testing.T) *api.Manifest {
	t.Helper()
	m := api.Default()
	m.Dir = t.TempDir()
	ok := []string{"sh", "-c", "exit 0"}
	m.Tools.Sync = ok
	m.Tools.Lint = ok
	m.Tools.Format = ok
	m.Tools.Imports = ok
	m.Tools.Test = ok
	return m
}

func testChecks(m *api.Manifest) (*Checks, *bytes.Buffer, *bytes.Buffer) {
	var status, stdout bytes.Buffer
	c := &Checks{
		Manifest: m,
		Probe:    presentProbe{},
		Runner: &toolchain.Runner{
			Dir:    m.Dir,
			Stdout: &stdout,
			Stderr: &stdout,
		},
		Status: &status,
	}
	return c, &status, &stdout
}

func TestChecks_AllPass(t *testing.T) {
	c, _, _ := testChecks(testManifest(t))

	report := c.Run(context.Background(), nil)

	if report.Failed() {
		t.Fatalf("unexpected failure: %+v", report.FirstFailure())
	}
	if len(report.Results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(report.Results))
	}
	if got := report.Count(pipeline.StatusSuccess); got != 6 {
		t.Errorf("expected 6 successes, got %d", got)
	}
}

func TestChecks_FailuresAccumulate(t *testing.T) {
	m := testManifest(t)
	m.Tools.Format = []string{"sh", "-c", "echo would reformat main.py >&2; exit 5"}
	c, _, stdout := testChecks(m)

	report := c.Run(context.Background(), nil)

	if !report.Failed() {
		t.Fatal("expected a failed report")
	}
	if len(report.Results) != 6 {
		t.Fatalf("expected all 6 steps to run, got %d results", len(report.Results))
	}
	if got := report.Count(pipeline.StatusFailed); got != 1 {
		t.Errorf("expected exactly 1 failure, got %d", got)
	}
	failure := report.FirstFailure()
	if failure.Step != "format" {
		t.Errorf("expected format to fail, got %q", failure.Step)
	}
	if code, ok := toolchain.ExitCode(failure.Outcome.Err); !ok || code != 5 {
		t.Errorf("expected exit code 5, got %d (ok=%v)", code, ok)
	}
	// The tool's own diagnostics were streamed through unchanged.
	if !strings.Contains(stdout.String(), "would reformat main.py") {
		t.Errorf("expected streamed tool output, got %q", stdout.String())
	}
	// Steps after the failure still ran.
	if got := report.Results[5].Step; got != "tests" {
		t.Errorf("expected tests to run last, got %q", got)
	}
}

func TestChecks_MultipleFailures(t *testing.T) {
	m := testManifest(t)
	m.Tools.Lint = []string{"sh", "-c", "exit 1"}
	m.Tools.Test = []string{"sh", "-c", "exit 2"}
	c, _, _ := testChecks(m)

	report := c.Run(context.Background(), nil)

	if got := report.Count(pipeline.StatusFailed); got != 2 {
		t.Errorf("expected 2 failures, got %d", got)
	}
	if failure := report.FirstFailure(); failure.Step != "lint" {
		t.Errorf("expected lint to fail first, got %q", failure.Step)
	}
}

func TestChecks_MissingPackageManagerAborts(t *testing.T) {
	c, _, _ := testChecks(testManifest(t))
	c.Probe = absentProbe{}

	report := c.Run(context.Background(), nil)

	if !report.Failed() {
		t.Fatal("expected a failed report")
	}
	if len(report.Results) != 1 {
		t.Fatalf("expected the run to end at step 1, got %d results", len(report.Results))
	}
	msg := report.FirstFailure().Outcome.Message()
	if !strings.Contains(msg, "devkit setup") {
		t.Errorf("expected setup guidance in %q", msg)
	}
}

func TestChecks_SyncRetriesVerboselyOnce(t *testing.T) {
	m := testManifest(t)
	// Fails on first invocation, succeeds on the second.
	m.Tools.Sync = []string{"sh", "-c", "if [ -f synced ]; then echo resolved; else touch synced; echo transient >&2; exit 1; fi"}
	c, status, stdout := testChecks(m)

	report := c.Run(context.Background(), nil)

	if report.Failed() {
		t.Fatalf("unexpected failure: %+v", report.FirstFailure())
	}
	if !strings.Contains(status.String(), "retrying verbosely") {
		t.Errorf("expected a retry notice, got %q", status.String())
	}
	// The verbose attempt streamed its output.
	if !strings.Contains(stdout.String(), "resolved") {
		t.Errorf("expected verbose output, got %q", stdout.String())
	}
	// The quiet attempt's noise stayed captured.
	if strings.Contains(stdout.String(), "transient") {
		t.Errorf("expected quiet attempt output to be captured, got %q", stdout.String())
	}
}

func TestChecks_SyncFailingTwiceIsRecorded(t *testing.T) {
	m := testManifest(t)
	m.Tools.Sync = []string{"sh", "-c", "exit 1"}
	c, _, _ := testChecks(m)

	report := c.Run(context.Background(), nil)

	if !report.Failed() {
		t.Fatal("expected a failed report")
	}
	if failure := report.FirstFailure(); failure.Step != "dependency sync" {
		t.Errorf("expected dependency sync to fail, got %q", failure.Step)
	}
	// Sync is not fatal: the remaining checks still ran.
	if len(report.Results) != 6 {
		t.Fatalf("expected all 6 steps to run, got %d results", len(report.Results))
	}
}

func TestChecks_ToolsRunInProjectDir(t *testing.T) {
	m := testManifest(t)
	m.Tools.Lint = []string{"sh", "-c", "test -f pyproject.toml"}
	c, _, _ := testChecks(m)

	if err := os.WriteFile(filepath.Join(m.Dir, "pyproject.toml"), []byte("[project]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	report := c.Run(context.Background(), nil)
	if report.Failed() {
		t.Fatalf("expected lint to see project files: %+v", report.FirstFailure())
	}
}
