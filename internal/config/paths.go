// Package config handles configuration loading and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// StateDirName is the recorder's directory under the state root.
	StateDirName = "whispr"

	// ConfigDirName is the indicator's directory under the user config root.
	ConfigDirName = "whispr"
)

// File names
const (
	RecordingFileName = "overlay.json"
	TrayFileName      = "tray.json"
	SettingsFileName  = "settings.yaml"
	LauncherFileName  = "indicator.json"
)

// StateDir returns the directory the recorder writes its state
// documents into: $XDG_STATE_HOME/whispr, ~/.local/state/whispr, or a
// temp-dir fallback. The chain matches the recorder's own resolution.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, StateDirName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", StateDirName)
	}
	return filepath.Join(os.TempDir(), StateDirName)
}

// RecordingFile returns the path to overlay.json.
func RecordingFile() string {
	return filepath.Join(StateDir(), RecordingFileName)
}

// TrayFile returns the path to tray.json.
func TrayFile() string {
	return filepath.Join(StateDir(), TrayFileName)
}

// ConfigDir returns the indicator's config directory.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, ConfigDirName), nil
}

// SettingsFile returns the path to the indicator settings file.
func SettingsFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// LauncherFile returns the path to the recorder-binary override file.
func LauncherFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LauncherFileName), nil
}

// TempName returns the temp-write name the recorder renames from.
// The recorder replaces the extension (overlay.json -> overlay.tmp).
func TempName(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)] + ".tmp"
}
