package preferences

import (
	"testing"

	"workouttimer/internal/core/model"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.WorkSeconds != 180 || settings.RestSeconds != 60 {
		t.Errorf("durations = %d/%d, want 180/60", settings.WorkSeconds, settings.RestSeconds)
	}
	if !settings.SoundEnabled || !settings.FlashEnabled || settings.Autostart {
		t.Errorf("toggles = %+v", settings)
	}
}

func TestIntervalConfig_Normalizes(t *testing.T) {
	settings := Settings{WorkSeconds: -5, RestSeconds: 20}
	want := model.IntervalConfig{WorkSeconds: 180, RestSeconds: 20}
	if got := settings.IntervalConfig(); got != want {
		t.Errorf("IntervalConfig() = %+v, want %+v", got, want)
	}
}
