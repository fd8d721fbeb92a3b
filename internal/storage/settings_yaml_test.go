package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"workouttimer/internal/ui/preferences"
)

func TestLoadSettings_MissingFile(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if settings != preferences.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(":::invalid:::yaml{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err == nil {
		t.Fatal("LoadSettings(invalid) expected error, got nil")
	}
	if settings != preferences.DefaultSettings() {
		t.Errorf("settings on error = %+v, want defaults", settings)
	}
}

func TestLoadSettings_NormalizesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "work_seconds: -10\nrest_seconds: 45\nflash_enabled: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if settings.WorkSeconds != 180 {
		t.Errorf("WorkSeconds = %d, want default 180", settings.WorkSeconds)
	}
	if settings.RestSeconds != 45 {
		t.Errorf("RestSeconds = %d, want 45", settings.RestSeconds)
	}
	if settings.FlashEnabled {
		t.Error("FlashEnabled = true, want false from file")
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled = false, want default true when absent")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := preferences.Settings{
		WorkSeconds:  45,
		RestSeconds:  15,
		SoundEnabled: false,
		FlashEnabled: true,
		Autostart:    true,
	}

	if err := SaveSettings(path, want); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "work_seconds: 45") {
		t.Errorf("saved yaml missing work_seconds:\n%s", data)
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestSettingsPath(t *testing.T) {
	path, err := SettingsPath("WorkoutTimer")
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if filepath.Base(path) != "settings.yaml" || filepath.Base(filepath.Dir(path)) != "WorkoutTimer" {
		t.Errorf("SettingsPath() = %q", path)
	}
}
