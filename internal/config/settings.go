package config

import (
	"log"

	"github.com/whispr-io/whisprtray/internal/models"
)

// LoadSettings loads indicator settings from the config dir.
// Missing file, unresolvable config dir, or a malformed file all
// yield defaults: a broken settings file must not keep the indicator
// from starting.
func LoadSettings() *models.Settings {
	path, err := SettingsFile()
	if err != nil {
		return models.NewSettings()
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return models.NewSettings()
	}
	return settings
}

// SaveSettings saves indicator settings to the config dir.
func SaveSettings(settings *models.Settings) error {
	path, err := SettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// EnsureSettings loads indicator settings, writing the defaults file
// on first run so users have a template to edit. An existing file is
// never rewritten.
func EnsureSettings() *models.Settings {
	settings := LoadSettings()
	if path, err := SettingsFile(); err == nil && !FileExists(path) {
		if err := SaveSettings(settings); err != nil {
			log.Printf("[config] write %s: %v", path, err)
		}
	}
	return settings
}
