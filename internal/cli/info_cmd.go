package cli

import (
	"github.com/autover/autover/internal/config"
	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/output"
	"github.com/autover/autover/internal/project"
	"github.com/autover/autover/internal/version"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show projects with their current and next versions",
	Example: `  autover info
  autover info --increment-type Major
  autover info --output json`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInfo,
}

func init() {
	infoCmd.GroupID = GroupInformation
	addInfoFlags(infoCmd)
	rootCmd.AddCommand(infoCmd)
}

func addInfoFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-path", "", "Project file or directory to search (default: current directory)")
	cmd.Flags().StringP("increment-type", "i", "", "Preview with this increment type instead of the configured one")
	cmd.Flags().String("next-version", "", "Preview with this exact version")
	cmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")
}

// projectInfo is one row of `autover info`.
type projectInfo struct {
	Name            string `json:"name" yaml:"name"`
	Path            string `json:"path" yaml:"path"`
	CurrentVersion  string `json:"currentVersion" yaml:"currentVersion"`
	NextVersion     string `json:"nextVersion" yaml:"nextVersion"`
	IncrementType   string `json:"incrementType" yaml:"incrementType"`
	PrereleaseLabel string `json:"prereleaseLabel,omitempty" yaml:"prereleaseLabel,omitempty"`
	PendingChanges  int    `json:"pendingChanges" yaml:"pendingChanges"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	projectPath, _ := cmd.Flags().GetString("project-path")
	nextVersion, _ := cmd.Flags().GetString("next-version")
	rawFormat, _ := cmd.Flags().GetString("output")

	format, err := output.ParseFormat(rawFormat)
	if err != nil {
		return apperrors.InvalidUsage(err)
	}
	increment, err := incrementFlag(cmd, "increment-type")
	if err != nil {
		return err
	}

	cfg, err := a.manager().Retrieve(projectPath, a.seedIncrement(increment), "")
	if err != nil {
		return err
	}

	rows, err := collectInfo(cfg, increment, nextVersion)
	if err != nil {
		return err
	}

	if format != output.FormatTable {
		return output.WriteStructured(cmd.OutOrStdout(), format, rows)
	}

	table := a.ui.Table([]string{"Project", "Path", "Current", "Next", "Increment"})
	for _, r := range rows {
		if err := table.Append([]string{r.Name, r.Path, r.CurrentVersion, output.Cyan(r.NextVersion), r.IncrementType}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if !cfg.PersistConfiguration {
		a.ui.Info("No configuration at %s; run 'autover configure' to create one", config.RepositoryConfigPath(cfg.GitRoot))
	}
	return nil
}

func collectInfo(cfg *config.UserConfiguration, increment version.IncrementType, nextVersion string) ([]projectInfo, error) {
	rows := make([]projectInfo, 0, len(cfg.Projects))
	for _, p := range cfg.Projects {
		def, err := cfg.Definition(p)
		if err != nil {
			return nil, err
		}

		effective := cfg.EffectiveIncrementType(p)
		if increment != "" {
			effective = increment
		}
		next, err := project.NextVersion(def, project.UpdateOptions{
			IncrementType:   effective,
			PrereleaseLabel: p.PrereleaseLabel,
			OverrideVersion: nextVersion,
		})
		if err != nil {
			return nil, err
		}

		rows = append(rows, projectInfo{
			Name:            p.Name,
			Path:            p.Path,
			CurrentVersion:  def.Version,
			NextVersion:     next.String(),
			IncrementType:   string(effective),
			PrereleaseLabel: p.PrereleaseLabel,
			PendingChanges:  len(p.Changelog),
		})
	}
	return rows, nil
}
