package preferences

import "workouttimer/internal/core/model"

// Settings defines editable user preferences.
type Settings struct {
	WorkSeconds int
	RestSeconds int

	SoundEnabled bool
	FlashEnabled bool
	Autostart    bool
}

// DefaultSettings returns default settings for the workout timer.
func DefaultSettings() Settings {
	return Settings{
		WorkSeconds:  model.DefaultWorkSeconds,
		RestSeconds:  model.DefaultRestSeconds,
		SoundEnabled: true,
		FlashEnabled: true,
		Autostart:    false,
	}
}

// IntervalConfig converts settings to the engine configuration.
func (settings Settings) IntervalConfig() model.IntervalConfig {
	return model.IntervalConfig{
		WorkSeconds: settings.WorkSeconds,
		RestSeconds: settings.RestSeconds,
	}.Normalize()
}
