package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	envNoColor = "NO_COLOR"
	envCI      = "CI"
	envTerm    = "TERM"
)

var colorState struct {
	mu          sync.RWMutex
	initialized bool
	enabled     bool
}

// Configure decides whether styled output uses color and locks the
// lipgloss color profile accordingly. Color is disabled by the
// noColor flag, the NO_COLOR and CI environment variables, TERM=dumb,
// or a non-terminal stderr.
func Configure(noColor bool) {
	enabled := detectColor(noColor)

	colorState.mu.Lock()
	colorState.initialized = true
	colorState.enabled = enabled
	colorState.mu.Unlock()

	if enabled {
		lipgloss.SetColorProfile(termenv.ColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ColorEnabled reports the decision made by Configure, configuring
// with defaults on first use.
func ColorEnabled() bool {
	colorState.mu.RLock()
	if colorState.initialized {
		enabled := colorState.enabled
		colorState.mu.RUnlock()
		return enabled
	}
	colorState.mu.RUnlock()

	Configure(false)

	colorState.mu.RLock()
	enabled := colorState.enabled
	colorState.mu.RUnlock()
	return enabled
}

func detectColor(noColor bool) bool {
	if noColor {
		return false
	}
	if _, set := os.LookupEnv(envNoColor); set {
		return false
	}
	if envTruthy(envCI) {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(envTerm)), "dumb") {
		return false
	}
	return stderrIsTerminal()
}

func stderrIsTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func envTruthy(key string) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch v {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
