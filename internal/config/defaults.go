package config

import "github.com/autover/autover/internal/version"

// DefaultChangelogFileName is written at the git root when no path is given.
const DefaultChangelogFileName = "CHANGELOG.md"

// GetDefaults returns the default tool settings as koanf keys.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"debug":                  false,
		"no_color":               false,
		"changelog_file":         DefaultChangelogFileName,
		"default_increment_type": string(version.Patch),
	}
}

// GetRepositoryDefaults returns the values applied to a repository
// configuration before the persisted document is merged over them.
func GetRepositoryDefaults() map[string]interface{} {
	return map[string]interface{}{
		"UseCommitsForChangelog":            true,
		"DefaultIncrementType":              string(version.Patch),
		"ChangeFilesDetermineIncrementType": false,
	}
}
