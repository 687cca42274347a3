package cli

import (
	"fmt"

	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/health"
	"github.com/autover/autover/internal/output"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the repository is ready for autover",
	Long: `Verify the git repository, the configuration, every project file and
the latest version tag. Exits with an error when any check fails.`,
	Example: `  autover doctor
  autover doctor --output json`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runDoctor,
}

func init() {
	doctorCmd.GroupID = GroupInformation
	addDoctorFlags(doctorCmd)
	rootCmd.AddCommand(doctorCmd)
}

func addDoctorFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-path", "", "Project file or directory to search (default: current directory)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	rawFormat, _ := cmd.Flags().GetString("output")
	format, err := output.ParseFormat(rawFormat)
	if err != nil {
		return apperrors.InvalidUsage(err)
	}
	projectPath, _ := cmd.Flags().GetString("project-path")

	a := newApp(cmd)
	report := health.RunHealthChecks(a.fs, a.git, projectPath)

	if format != output.FormatTable {
		if err := output.WriteStructured(cmd.OutOrStdout(), format, report); err != nil {
			return err
		}
	} else {
		pass, fail := a.ui.Marks()
		fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report, pass, fail))
	}

	if report.Passed {
		return nil
	}
	failed := 0
	for _, c := range report.Checks {
		if !c.Passed {
			failed++
		}
	}
	return apperrors.HealthCheckFailed(failed)
}
