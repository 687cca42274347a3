package cli

import (
	"fmt"

	"github.com/autover/autover/internal/build"
	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/output"
	"github.com/spf13/cobra"
)

var buildInfoCmd = &cobra.Command{
	Use:          "build-info",
	Short:        "Display version, commit and build date of autover",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runBuildInfo,
}

func init() {
	buildInfoCmd.GroupID = GroupInformation
	addBuildInfoFlags(buildInfoCmd)
	rootCmd.AddCommand(buildInfoCmd)
}

func addBuildInfoFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")
}

func runBuildInfo(cmd *cobra.Command, args []string) error {
	rawFormat, _ := cmd.Flags().GetString("output")
	format, err := output.ParseFormat(rawFormat)
	if err != nil {
		return apperrors.InvalidUsage(err)
	}

	info := build.Current()
	if format != output.FormatTable {
		return output.WriteStructured(cmd.OutOrStdout(), format, info)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "autover %s\n", info.Version)
	fmt.Fprintf(out, "commit: %s\n", info.Commit)
	fmt.Fprintf(out, "built: %s\n", info.BuildDate)
	fmt.Fprintf(out, "go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "platform: %s\n", info.Platform)
	return nil
}
