package platform

import "strings"

// Application identity shared by the desktop app, autostart and settings.
const (
	AppName      = "WorkoutTimer"
	AppID        = "com.workouttimer.app"
	bundlePrefix = "com.workouttimer."
)

// slugName turns a display name into a file-name friendly identifier.
func slugName(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = strings.ToLower(AppName)
	}
	return strings.Join(strings.Fields(name), "-")
}
