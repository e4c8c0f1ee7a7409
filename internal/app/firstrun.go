package app

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	markerFileName = "first_run_completed"
	appName        = "availspect"
)

// GetAppConfigDir returns the path to the application's configuration directory.
func GetAppConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// IsFirstRun reports whether this is the first invocation on this machine,
// creating the marker file as a side effect. Any filesystem trouble is
// treated as "not first run" so the tool never fails over a hint.
func IsFirstRun() bool {
	appConfigDir, err := GetAppConfigDir()
	if err != nil {
		slog.Debug("failed to resolve app config directory", slog.String("error", err.Error()))
		return false
	}

	markerPath := filepath.Join(appConfigDir, markerFileName)
	if _, err := os.Stat(markerPath); err == nil {
		return false
	} else if !os.IsNotExist(err) {
		slog.Debug("failed to stat first run marker", slog.String("error", err.Error()))
		return false
	}

	if err := os.MkdirAll(appConfigDir, 0755); err != nil {
		slog.Debug("failed to create app config directory", slog.String("error", err.Error()))
		return false
	}
	marker, err := os.Create(markerPath)
	if err != nil {
		slog.Debug("failed to create first run marker", slog.String("error", err.Error()))
		return false
	}
	_ = marker.Close()
	return true
}
