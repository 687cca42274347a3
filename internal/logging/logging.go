// Package logging provides the leveled debug logger behind the per-package
// SetDebugLogger hooks.
package logging

import (
	"io"

	"github.com/autover/autover/internal/changelog"
	"github.com/autover/autover/internal/config"
	"github.com/autover/autover/internal/git"
	"github.com/autover/autover/internal/project"
	"github.com/phuslu/log"
)

// Options configures New.
type Options struct {
	Writer io.Writer
	Debug  bool
	Color  bool
}

// New returns a console logger. Debug messages are emitted only when
// opts.Debug is set.
func New(opts Options) *log.Logger {
	level := log.InfoLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	return &log.Logger{
		Level: level,
		Writer: &log.ConsoleWriter{
			Writer:      opts.Writer,
			ColorOutput: opts.Color,
			QuoteString: true,
		},
	}
}

// DebugFunc adapts l to the printf-style hook each package accepts.
func DebugFunc(l *log.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		l.Debug().Msgf(format, args...)
	}
}

// Install routes debug output of the git, project, config and changelog
// packages to l. A nil logger disables it.
func Install(l *log.Logger) {
	var hook func(format string, args ...any)
	if l != nil && l.Level <= log.DebugLevel {
		hook = DebugFunc(l)
	}
	git.SetDebugLogger(hook)
	project.SetDebugLogger(hook)
	config.SetDebugLogger(hook)
	changelog.SetDebugLogger(hook)
}
