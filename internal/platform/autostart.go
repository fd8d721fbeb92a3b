package platform

import (
	"os"

	"github.com/pkg/errors"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", errors.Wrap(err, "get config dir")
		}
		return "", errors.Wrap(homeErr, "get config dir")
	}

	return fallbackConfigDir(homeDir), nil
}

// SetAutostart enables or disables launching the current executable at login.
func SetAutostart(service Service, appName string, enabled bool) error {
	if !enabled {
		return service.DisableAutostart(appName)
	}
	execPath, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "resolve executable")
	}
	return service.EnableAutostart(appName, execPath)
}
