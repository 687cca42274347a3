package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigFolderName is the repository-level folder holding autover state.
	ConfigFolderName = ".autover"
	// ConfigFileName is the repository configuration file inside ConfigFolderName.
	ConfigFileName = "autover.json"
)

// RepositoryConfigPath returns <gitRoot>/.autover/autover.json.
func RepositoryConfigPath(gitRoot string) string {
	return filepath.Join(gitRoot, ConfigFolderName, ConfigFileName)
}

// RepositoryConfigRelPath returns the configuration path relative to the git root.
func RepositoryConfigRelPath() string {
	return filepath.Join(ConfigFolderName, ConfigFileName)
}

// UserSettingsPath returns the path to the user-level settings file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/autover/config.yml
// - macOS: ~/Library/Application Support/autover/config.yml
// - Windows: %APPDATA%\autover\config.yml
func UserSettingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autover", "config.yml"), nil
}
