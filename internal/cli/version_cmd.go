package cli

import (
	"fmt"

	"github.com/autover/autover/internal/changelog"
	"github.com/autover/autover/internal/config"
	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/project"
	"github.com/autover/autover/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Bump project versions, commit and tag the release",
	Long: `Bump the <Version> element of every project, stage the files, commit them
and create a version_<timestamp> tag.

The increment applied to a project is --increment-type when given, otherwise
the project's IncrementType from .autover/autover.json, otherwise the
configuration's DefaultIncrementType. Persisted per-project increment types
are reset to the default after the bump.`,
	Example: `  # Bump every project by its configured increment
  autover version

  # Force a minor release with a prerelease label
  autover version --increment-type Minor --prerelease-label beta

  # Set an exact version and skip tagging
  autover version --next-version 2.0.0 --skip-version-tag`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runVersion,
}

func init() {
	versionCmd.GroupID = GroupRelease
	addVersionFlags(versionCmd)
	rootCmd.AddCommand(versionCmd)
}

func addVersionFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-path", "", "Project file or directory to search (default: current directory)")
	cmd.Flags().StringP("increment-type", "i", "", "Increment type: None, Patch, Minor or Major")
	cmd.Flags().String("prerelease-label", "", "Prerelease label appended to the new version")
	cmd.Flags().String("next-version", "", "Exact version to write instead of incrementing")
	cmd.Flags().Bool("skip-version-tag", false, "Commit without creating a version tag")
}

func runVersion(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	projectPath, _ := cmd.Flags().GetString("project-path")
	label, _ := cmd.Flags().GetString("prerelease-label")
	nextVersion, _ := cmd.Flags().GetString("next-version")
	skipTag, _ := cmd.Flags().GetBool("skip-version-tag")

	increment, err := incrementFlag(cmd, "increment-type")
	if err != nil {
		return err
	}
	if nextVersion != "" {
		if _, ok := version.TryParse(nextVersion); !ok {
			return apperrors.InvalidOverrideVersion(nextVersion)
		}
	}

	mgr := a.manager()
	cfg, err := mgr.Retrieve(projectPath, a.seedIncrement(increment), "")
	if err != nil {
		return err
	}

	// Every next version is computed before any file is written, so a
	// failing project leaves the working tree untouched.
	type bump struct {
		name string
		def  *project.Definition
		opts project.UpdateOptions
	}
	bumps := make([]bump, 0, len(cfg.Projects))
	for _, p := range cfg.Projects {
		def, err := cfg.Definition(p)
		if err != nil {
			return err
		}

		opts := project.UpdateOptions{
			IncrementType:   increment,
			PrereleaseLabel: label,
			OverrideVersion: nextVersion,
		}
		if opts.IncrementType == "" {
			opts.IncrementType = cfg.EffectiveIncrementType(p)
		}
		if opts.PrereleaseLabel == "" {
			opts.PrereleaseLabel = p.PrereleaseLabel
		}

		if _, err := project.NextVersion(def, opts); err != nil {
			return err
		}
		bumps = append(bumps, bump{name: p.Name, def: def, opts: opts})
	}

	for _, b := range bumps {
		previous := b.def.Version
		next, err := project.UpdateVersion(a.fs, b.def, b.opts)
		if err != nil {
			return err
		}
		if err := a.git.Stage(cfg.GitRoot, b.def.Path); err != nil {
			return fmt.Errorf("staging %s: %w", b.def.Path, err)
		}
		a.ui.Success("%s: %s -> %s", b.name, previous, next)
	}

	if cfg.PersistConfiguration {
		if err := mgr.Reset(cfg, config.ResetRequest{IncrementType: true}); err != nil {
			return err
		}
	}

	tag := changelog.VersionTagName(a.now())
	return a.ui.Spin("Committing release", func() error {
		hash, err := a.git.Commit(cfg.GitRoot, releaseCommitMessage(tag, skipTag))
		if err != nil {
			return err
		}
		a.ui.VerboseLog("commit %s", hash)

		if skipTag {
			a.ui.Info("Committed %d project(s) without a version tag", len(cfg.Projects))
			return nil
		}
		if err := a.git.CreateTag(cfg.GitRoot, tag); err != nil {
			return err
		}
		a.ui.Success("Tagged %s", tag)
		return nil
	})
}

// releaseCommitMessage is not a conventional commit message, so release
// commits stay out of generated changelogs.
func releaseCommitMessage(tag string, skipTag bool) string {
	if skipTag {
		return "Updated project versions"
	}
	return "Release " + tag
}
