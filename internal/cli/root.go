// Package cli implements the autover command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/autover/autover/internal/config"
	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/git"
	"github.com/autover/autover/internal/logging"
	"github.com/autover/autover/internal/output"
	"github.com/autover/autover/internal/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Command group IDs shown in help output.
const (
	GroupRelease       = "release"
	GroupConfiguration = "configuration"
	GroupInformation   = "information"
)

var rootCmd = &cobra.Command{
	Use:   "autover",
	Short: "Automatic versioning and changelogs for multi-project repositories",
	Long: `autover bumps the <Version> of every project in a git repository,
commits and tags the release, and generates changelogs from conventional
commits or from change entries recorded per project.

Repository settings live in .autover/autover.json at the git root.`,
	Example: `  # Bump every project by its configured increment and tag the release
  autover version

  # Write the changelog for the newest release to CHANGELOG.md
  autover changelog

  # Record a change entry for a project
  autover change --project-name App --message "Added login page"`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

// settings are the tool settings resolved before any command runs.
var settings *config.Settings

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
		&cobra.Group{ID: GroupInformation, Title: "Information Commands:"},
	)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.InvalidUsage(err)
	})
}

// Execute runs the command tree and returns the process exit status.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		apperrors.Fprint(os.Stderr, err)
	}
	return ExitCode(err)
}

// setupGlobals loads tool settings and installs logging and color preferences.
func setupGlobals(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings(config.SettingsOptions{})
	if err != nil {
		return err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		s.Debug = true
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		s.NoColor = true
	}
	if s.NoColor {
		output.DisableColor()
	}

	logging.Install(logging.New(logging.Options{
		Writer: cmd.ErrOrStderr(),
		Debug:  s.Debug,
		Color:  !s.NoColor,
	}))

	settings = s
	return nil
}

// app bundles the collaborators a command works with.
type app struct {
	fs       afero.Fs
	git      *git.Client
	ui       *output.UI
	settings *config.Settings
	now      func() time.Time
}

func newApp(cmd *cobra.Command) *app {
	ui := output.New()
	ui.Out = cmd.OutOrStdout()
	ui.ErrOut = cmd.ErrOrStderr()
	if ui.ErrOut != os.Stderr {
		ui.Interactive = false
	}

	s := settings
	if s == nil {
		s = &config.Settings{
			ChangelogFile:        config.DefaultChangelogFileName,
			DefaultIncrementType: string(version.Patch),
		}
	}

	return &app{
		fs:       afero.NewOsFs(),
		git:      git.NewClient(),
		ui:       ui,
		settings: s,
		now:      time.Now,
	}
}

func (a *app) manager() *config.Manager {
	return config.NewManager(a.fs, a.git)
}

// incrementFlag parses an optional increment type flag; empty means unset.
func incrementFlag(cmd *cobra.Command, name string) (version.IncrementType, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return "", nil
	}
	return version.ParseIncrementType(raw)
}

// seedIncrement is the increment type given to projects when no repository
// configuration lists them.
func (a *app) seedIncrement(flag version.IncrementType) version.IncrementType {
	if flag != "" {
		return flag
	}
	return a.settings.IncrementType()
}

// absPath resolves a user supplied path against the working directory, so
// the file that is written is also the one that is staged.
func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return abs, nil
}
