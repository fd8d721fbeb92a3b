package storage

import (
	"os"
	"path/filepath"

	"workouttimer/internal/ui/preferences"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkSeconds  int   `yaml:"work_seconds"`
	RestSeconds  int   `yaml:"rest_seconds"`
	SoundEnabled *bool `yaml:"sound_enabled,omitempty"`
	FlashEnabled *bool `yaml:"flash_enabled,omitempty"`
	Autostart    *bool `yaml:"autostart,omitempty"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, errors.Wrap(err, "read settings file")
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, errors.Wrap(err, "parse settings yaml")
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to path, creating its directory.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	fileData := yamlSettings{
		WorkSeconds:  settings.WorkSeconds,
		RestSeconds:  settings.RestSeconds,
		SoundEnabled: &settings.SoundEnabled,
		FlashEnabled: &settings.FlashEnabled,
		Autostart:    &settings.Autostart,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return errors.Wrap(err, "marshal settings yaml")
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return errors.Wrap(err, "write settings file")
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkSeconds > 0 {
		settings.WorkSeconds = fileData.WorkSeconds
	}
	if fileData.RestSeconds > 0 {
		settings.RestSeconds = fileData.RestSeconds
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.FlashEnabled != nil {
		settings.FlashEnabled = *fileData.FlashEnabled
	}
	if fileData.Autostart != nil {
		settings.Autostart = *fileData.Autostart
	}
}
