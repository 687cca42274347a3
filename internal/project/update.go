package project

import (
	"fmt"
	"os"

	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/version"
	"github.com/spf13/afero"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for project operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// UpdateOptions controls how UpdateVersion computes the new version.
type UpdateOptions struct {
	IncrementType   version.IncrementType
	PrereleaseLabel string
	// OverrideVersion, when set, is written verbatim after validation and
	// takes precedence over IncrementType.
	OverrideVersion string
}

// NextVersion computes the version UpdateVersion would write, without
// touching the file.
func NextVersion(def *Definition, opts UpdateOptions) (version.ThreePartVersion, error) {
	if !def.HasVersionElement() {
		return version.ThreePartVersion{}, apperrors.NoVersionElement(def.Path, VersionElement)
	}

	if opts.OverrideVersion != "" {
		v, ok := version.TryParse(opts.OverrideVersion)
		if !ok {
			return version.ThreePartVersion{}, apperrors.InvalidOverrideVersion(opts.OverrideVersion)
		}
		return v, nil
	}

	return version.GetNextVersion(def.Version, opts.IncrementType, opts.PrereleaseLabel)
}

// UpdateVersion rewrites the project's version element and saves the file.
func UpdateVersion(fs afero.Fs, def *Definition, opts UpdateOptions) (version.ThreePartVersion, error) {
	next, err := NextVersion(def, opts)
	if err != nil {
		return version.ThreePartVersion{}, err
	}

	previous := def.Version
	if err := def.setVersion(next.String()); err != nil {
		return version.ThreePartVersion{}, err
	}

	perm := os.FileMode(0o644)
	if info, err := fs.Stat(def.Path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := afero.WriteFile(fs, def.Path, def.content, perm); err != nil {
		return version.ThreePartVersion{}, fmt.Errorf("writing project file %s: %w", def.Path, err)
	}

	logDebug("[project] %s: %s -> %s", def.Path, previous, next)
	return next, nil
}
