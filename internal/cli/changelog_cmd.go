package cli

import (
	"fmt"
	"path/filepath"

	"github.com/autover/autover/internal/changelog"
	"github.com/autover/autover/internal/config"
	"github.com/spf13/cobra"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Generate the changelog for the newest release",
	Long: `Generate release notes for the newest version_ tag.

With UseCommitsForChangelog enabled (the default) the notes group the
conventional commits made since the previous version tag by type. Otherwise
they list the change entries recorded with 'autover change', using the
configuration as it was committed at the release tag; the recorded entries
are cleared afterwards.

The result is prepended to the changelog file and staged.`,
	Example: `  # Prepend the newest release to CHANGELOG.md at the git root
  autover changelog

  # Print instead of writing
  autover changelog --output-to-console

  # Write somewhere else
  autover changelog --changelog-path docs/RELEASES.md`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runChangelog,
}

var changelogReleasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "List the releases recorded in a changelog file",
	Example: `  autover changelog releases
  autover changelog releases --changelog-path docs/RELEASES.md`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runChangelogReleases,
}

func init() {
	changelogCmd.GroupID = GroupRelease
	addChangelogFlags(changelogCmd)
	addChangelogReleasesFlags(changelogReleasesCmd)
	changelogCmd.AddCommand(changelogReleasesCmd)
	rootCmd.AddCommand(changelogCmd)
}

func addChangelogFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-path", "", "Project file or directory to search (default: current directory)")
	cmd.Flags().Bool("output-to-console", false, "Print the changelog instead of writing it")
	cmd.Flags().String("changelog-path", "", "Changelog file to prepend to (default: CHANGELOG.md at the git root)")
}

func addChangelogReleasesFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-path", "", "Path inside the repository (default: current directory)")
	cmd.Flags().String("changelog-path", "", "Changelog file to read (default: CHANGELOG.md at the git root)")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	projectPath, _ := cmd.Flags().GetString("project-path")
	toConsole, _ := cmd.Flags().GetBool("output-to-console")
	changelogPath, _ := cmd.Flags().GetString("changelog-path")

	gitRoot, err := a.git.FindRoot(projectPath)
	if err != nil {
		return err
	}

	generator := changelog.NewGenerator(a.git)
	history, err := generator.History(gitRoot)
	if err != nil {
		return err
	}

	mgr := a.manager()
	released, err := mgr.Retrieve(projectPath, a.seedIncrement(""), history.CurrentTag)
	if err != nil {
		return err
	}

	release, err := generator.Build(released, history)
	if err != nil {
		return err
	}
	if release.IsEmpty() {
		a.ui.Warning("Release %s has no changelog entries", history.CurrentTag)
	}
	text, err := changelog.RenderMarkdownString(release)
	if err != nil {
		return err
	}

	if toConsole {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}

	if changelogPath == "" {
		changelogPath = filepath.Join(gitRoot, a.settings.ChangelogFile)
	}
	if changelogPath, err = absPath(changelogPath); err != nil {
		return err
	}
	written, err := changelog.Persist(a.fs, a.git, gitRoot, text, changelogPath)
	if err != nil {
		return err
	}
	a.ui.Success("Wrote release %s with %d entries to %s",
		history.Current.Format(changelog.ReleaseDateLayout), release.Count(), written)

	if released.UseCommitsForChangelog {
		return nil
	}

	live, err := mgr.Retrieve(projectPath, a.seedIncrement(""), "")
	if err != nil {
		return err
	}
	if !live.PersistConfiguration {
		return nil
	}
	if err := mgr.Reset(live, config.ResetRequest{Changelog: true}); err != nil {
		return err
	}
	a.ui.Info("Cleared recorded change entries")
	return nil
}

func runChangelogReleases(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	projectPath, _ := cmd.Flags().GetString("project-path")
	changelogPath, _ := cmd.Flags().GetString("changelog-path")

	if changelogPath == "" {
		gitRoot, err := a.git.FindRoot(projectPath)
		if err != nil {
			return err
		}
		changelogPath = filepath.Join(gitRoot, a.settings.ChangelogFile)
	}
	changelogPath, err := absPath(changelogPath)
	if err != nil {
		return err
	}

	releases, err := changelog.LoadReleases(a.fs, changelogPath)
	if err != nil {
		return err
	}
	if len(releases) == 0 {
		a.ui.Info("No releases found in %s", changelogPath)
		return nil
	}

	table := a.ui.Table([]string{"Release", "Sections", "Entries"})
	for _, r := range releases {
		if err := table.Append([]string{r.Title, fmt.Sprint(r.Sections), fmt.Sprint(r.Entries)}); err != nil {
			return err
		}
	}
	return table.Render()
}
