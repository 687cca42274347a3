package cli

import (
	"github.com/autover/autover/internal/config"
	apperrors "github.com/autover/autover/internal/errors"
	"github.com/spf13/cobra"
)

var changeCmd = &cobra.Command{
	Use:   "change",
	Short: "Record a change entry for a project",
	Long: `Record a free-text change entry for a configured project.

Entries are stored in .autover/autover.json and become the project's section
of the next changelog when UseCommitsForChangelog is disabled. When
ChangeFilesDetermineIncrementType is enabled, --increment-type raises the
project's pending increment (None < Patch < Minor < Major).`,
	Example: `  autover change --project-name App --message "Added login page"
  autover change --project-name Lib --message "Removed legacy API" --increment-type Major`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runChange,
}

func init() {
	changeCmd.GroupID = GroupConfiguration
	addChangeFlags(changeCmd)
	rootCmd.AddCommand(changeCmd)
}

func addChangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-path", "", "Path inside the repository (default: current directory)")
	cmd.Flags().StringP("project-name", "p", "", "Name of the configured project (required)")
	cmd.Flags().StringP("message", "m", "", "Change entry text (required)")
	cmd.Flags().StringP("increment-type", "i", "", "Increment type this change requires: None, Patch, Minor or Major")
}

func runChange(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	projectPath, _ := cmd.Flags().GetString("project-path")
	name, _ := cmd.Flags().GetString("project-name")
	message, _ := cmd.Flags().GetString("message")

	if name == "" {
		return apperrors.MissingArgument("project-name")
	}
	increment, err := incrementFlag(cmd, "increment-type")
	if err != nil {
		return err
	}

	mgr := a.manager()
	cfg, err := mgr.Retrieve(projectPath, a.seedIncrement(""), "")
	if err != nil {
		return err
	}

	p, err := config.AddChange(cfg, name, message, increment)
	if err != nil {
		return err
	}
	if err := mgr.Save(cfg); err != nil {
		return err
	}

	a.ui.Success("Recorded change for %s (%d pending, next increment %s)",
		p.Name, len(p.Changelog), cfg.EffectiveIncrementType(p))
	return nil
}
