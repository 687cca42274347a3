package cli

import (
	"github.com/autover/autover/internal/config"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write a repository configuration for the discovered projects",
	Long: `Create .autover/autover.json at the git root listing every discovered
project with the chosen increment type. An existing configuration that
already lists projects is left untouched.`,
	Example: `  autover configure
  autover configure --increment-type Minor`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConfigure,
}

func init() {
	configureCmd.GroupID = GroupConfiguration
	addConfigureFlags(configureCmd)
	rootCmd.AddCommand(configureCmd)
}

func addConfigureFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-path", "", "Project file or directory to search (default: current directory)")
	cmd.Flags().StringP("increment-type", "i", "", "Increment type for every project: None, Patch, Minor or Major")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	projectPath, _ := cmd.Flags().GetString("project-path")
	increment, err := incrementFlag(cmd, "increment-type")
	if err != nil {
		return err
	}

	mgr := a.manager()
	cfg, err := mgr.Retrieve(projectPath, a.seedIncrement(increment), "")
	if err != nil {
		return err
	}

	path := config.RepositoryConfigPath(cfg.GitRoot)
	if cfg.PersistConfiguration {
		a.ui.Info("Already configured: %s lists %d project(s)", path, len(cfg.Projects))
		return nil
	}

	if err := mgr.Save(cfg); err != nil {
		return err
	}
	a.ui.Success("Wrote %s", path)
	for _, p := range cfg.Projects {
		a.ui.VerboseLog("%s (%s)", p.Name, p.Path)
	}
	a.ui.Info("Configured %d project(s)", len(cfg.Projects))
	return nil
}
