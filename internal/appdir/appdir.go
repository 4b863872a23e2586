// Package appdir resolves the per-user directories used for configuration.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// appName is the directory name under the OS config root.
const appName = "mailposture"

// ConfigDir returns the OS-specific config directory for mailposture.
// Linux: $XDG_CONFIG_HOME/mailposture  macOS: ~/Library/Application Support/mailposture
// Windows: %AppData%/mailposture
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// ConfigFile returns the default config file path, creating the parent
// directory if necessary.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return filepath.Join(dir, "config.yaml"), nil
}
