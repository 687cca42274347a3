// Package config manages autover configuration at two levels.
//
// The repository configuration (.autover/autover.json at the git root) lists
// the versioned projects and changelog preferences; it is loaded from the
// working tree or from a release tag, reconciled with the project files
// actually present, and written back after a release.
//
// Tool settings are loaded with koanf in priority order: environment
// variables (AUTOVER_*) > user settings (~/.config/autover/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/autover/autover/internal/version"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Settings represents the autover tool settings.
type Settings struct {
	Debug   bool `koanf:"debug"`
	NoColor bool `koanf:"no_color"`
	// ChangelogFile is the changelog written at the git root when no path is given.
	ChangelogFile string `koanf:"changelog_file"`
	// DefaultIncrementType seeds projects when no repository configuration exists.
	DefaultIncrementType string `koanf:"default_increment_type"`
}

// SettingsOptions configures how settings are loaded.
type SettingsOptions struct {
	// UserSettingsPath overrides the user settings path (default: UserSettingsPath()).
	UserSettingsPath string
	// SkipUserSettings ignores the user settings file entirely.
	SkipUserSettings bool
}

// LoadSettings loads tool settings from defaults, the user settings file and
// the environment.
func LoadSettings(opts SettingsOptions) (*Settings, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying default %s: %w", key, err)
		}
	}

	if !opts.SkipUserSettings {
		if err := loadUserSettings(k, opts.UserSettingsPath); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("AUTOVER_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment settings: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if s.ChangelogFile == "" {
		s.ChangelogFile = DefaultChangelogFileName
	}
	if _, err := version.ParseIncrementType(s.DefaultIncrementType); err != nil {
		return nil, err
	}
	return &s, nil
}

// loadUserSettings merges the user settings file when it exists.
func loadUserSettings(k *koanf.Koanf, path string) error {
	if path == "" {
		var err error
		path, err = UserSettingsPath()
		if err != nil {
			return nil
		}
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load user settings %s: %w", path, err)
	}
	return nil
}

// IncrementType returns the parsed default increment type.
func (s *Settings) IncrementType() version.IncrementType {
	t, err := version.ParseIncrementType(s.DefaultIncrementType)
	if err != nil {
		return version.Patch
	}
	return t
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to settings keys
// Example: AUTOVER_CHANGELOG_FILE -> changelog_file
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "AUTOVER_"))
}
