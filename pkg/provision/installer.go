package provision

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/schollz/progressbar/v3"
)

// runInstallScript downloads the configured install script to a
// temporary file and executes it through sh.
func (b *Bootstrap) runInstallScript(ctx context.Context) error {
	script, err := b.downloadScript(ctx)
	if err != nil {
		return err
	}
	defer os.Remove(script)

	slog.Debug("running install script", "script", script)
	return b.Runner.Run(ctx, []string{"sh", script})
}

func (b *Bootstrap) downloadScript(ctx context.Context) (string, error) {
	url := b.Manifest.Tools.Installer.ScriptURL
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading install script: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading install script: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "devkit-install-*.sh")
	if err != nil {
		return "", fmt.Errorf("creating script file: %w", err)
	}

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetDescription("downloading installer"),
		progressbar.OptionSetWriter(b.Status),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)

	_, copyErr := io.Copy(io.MultiWriter(tmp, bar), resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("saving install script: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing script file: %w", closeErr)
	}

	if err := os.Chmod(tmp.Name(), 0o700); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("marking script executable: %w", err)
	}
	return tmp.Name(), nil
}
